package core

import (
	"testing"
	"time"
)

// Scenario shared across aggregation tests: $50 Food expense in January,
// $2000 Salary income in January, $30 Food expense in February.
func scenarioLedger() []Transaction {
	return []Transaction{
		tx("1", Expense, 5000, "Lunch", "Food", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)),
		tx("2", Income, 200000, "Salary", "Salary", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		tx("3", Expense, 3000, "Groceries", "Food", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)),
	}
}

func TestCategoryBreakdown(t *testing.T) {
	got := CategoryBreakdown(scenarioLedger())

	if len(got) != 2 {
		t.Fatalf("expected 2 categories, got %d: %v", len(got), got)
	}
	food := got["Food"]
	if food.Expense.Cents != 8000 || food.Income.Cents != 0 {
		t.Fatalf("Food = %+v, want expense 8000 income 0", food)
	}
	salary := got["Salary"]
	if salary.Expense.Cents != 0 || salary.Income.Cents != 200000 {
		t.Fatalf("Salary = %+v, want expense 0 income 200000", salary)
	}
}

func TestCategoryBreakdownSkipsInvalidAmounts(t *testing.T) {
	records := append(scenarioLedger(),
		tx("bad", Expense, -100, "corrupt", "Food", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)))

	got := CategoryBreakdown(records)
	if got["Food"].Expense.Cents != 8000 {
		t.Fatalf("invalid record leaked into sums: %+v", got["Food"])
	}
	if n := CountInvalid(records); n != 1 {
		t.Fatalf("CountInvalid = %d, want 1", n)
	}
}

func TestPercentageOfExpense(t *testing.T) {
	got := PercentageOfExpense(scenarioLedger())

	if got["Food"] != 100 {
		t.Fatalf("Food = %v, want 100", got["Food"])
	}
	if got["Salary"] != 0 {
		t.Fatalf("Salary = %v, want 0", got["Salary"])
	}

	var sum float64
	for _, p := range got {
		if p != p { // NaN check
			t.Fatalf("percentage is NaN")
		}
		sum += p
	}
	if sum > 100.0001 {
		t.Fatalf("percentages sum to %v, want <= 100", sum)
	}
}

func TestPercentageOfExpenseZeroTotal(t *testing.T) {
	records := []Transaction{
		tx("2", Income, 200000, "Salary", "Salary", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
	}
	got := PercentageOfExpense(records)
	if got["Salary"] != 0 {
		t.Fatalf("zero total expense must yield 0, got %v", got["Salary"])
	}

	if got := PercentageOfExpense(nil); len(got) != 0 {
		t.Fatalf("empty set should yield empty map, got %v", got)
	}
}

func TestTotalsInSameMonth(t *testing.T) {
	ref := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	got := TotalsIn(scenarioLedger(), SameMonth(ref))

	if got.Expense.Cents != 5000 {
		t.Fatalf("expense = %d, want 5000", got.Expense.Cents)
	}
	if got.Income.Cents != 200000 {
		t.Fatalf("income = %d, want 200000", got.Income.Cents)
	}
	if got.Net.Cents != 195000 {
		t.Fatalf("net = %d, want 195000", got.Net.Cents)
	}
}

func TestTotalsInNetInvariant(t *testing.T) {
	cases := [][]Transaction{
		nil,
		scenarioLedger(),
		{tx("1", Expense, 9999, "x", "c", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))},
	}
	for i, records := range cases {
		got := TotalsIn(records, nil)
		if got.Net.Cents != got.Income.Cents-got.Expense.Cents {
			t.Fatalf("case %d: net %d != income %d - expense %d",
				i, got.Net.Cents, got.Income.Cents, got.Expense.Cents)
		}
	}
}
