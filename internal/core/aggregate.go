package core

import "time"

// CategoryTotals is the expense/income pair accumulated for one category.
type CategoryTotals struct {
	Expense Money
	Income  Money
}

// PeriodTotals summarizes a set of records selected by a period predicate.
// Net may be negative.
type PeriodTotals struct {
	Expense Money
	Income  Money
	Net     Money
}

// countable reports whether a record may contribute to sums. A record with
// a non-positive amount is excluded defensively so one bad record cannot
// poison a whole summary; callers surface the skip count via CountInvalid.
func countable(t Transaction) bool {
	return t.Amount.Cents > 0
}

// CountInvalid returns how many records were defensively excluded from
// aggregation.
func CountInvalid(records []Transaction) int {
	n := 0
	for _, t := range records {
		if !countable(t) {
			n++
		}
	}
	return n
}

// CategoryBreakdown sums amounts per category split by kind. Categories
// with no matching transactions are omitted, not zero-filled.
func CategoryBreakdown(records []Transaction) map[string]CategoryTotals {
	out := make(map[string]CategoryTotals)
	for _, t := range records {
		if !countable(t) {
			continue
		}
		ct := out[t.Category]
		switch t.Kind {
		case Expense:
			ct.Expense.Cents += t.Amount.Cents
		case Income:
			ct.Income.Cents += t.Amount.Cents
		default:
			continue
		}
		out[t.Category] = ct
	}
	return out
}

// PercentageOfExpense maps each category to its share of total expense,
// expressed 0-100. When total expense is zero every share is 0; the result
// never contains NaN.
func PercentageOfExpense(records []Transaction) map[string]float64 {
	breakdown := CategoryBreakdown(records)

	var total int64
	for _, ct := range breakdown {
		total += ct.Expense.Cents
	}

	out := make(map[string]float64, len(breakdown))
	for cat, ct := range breakdown {
		if total == 0 {
			out[cat] = 0
			continue
		}
		out[cat] = float64(ct.Expense.Cents) / float64(total) * 100
	}
	return out
}

// TotalsIn sums expense and income over the records selected by in.
// Net is always income minus expense, exactly.
func TotalsIn(records []Transaction, in func(Transaction) bool) PeriodTotals {
	var pt PeriodTotals
	for _, t := range records {
		if !countable(t) || (in != nil && !in(t)) {
			continue
		}
		switch t.Kind {
		case Expense:
			pt.Expense.Cents += t.Amount.Cents
		case Income:
			pt.Income.Cents += t.Amount.Cents
		}
	}
	pt.Net.Cents = pt.Income.Cents - pt.Expense.Cents
	return pt
}

// SameMonth returns a period predicate selecting records that occurred in
// the same calendar month and year as ref.
func SameMonth(ref time.Time) func(Transaction) bool {
	y, m, _ := ref.Date()
	return func(t Transaction) bool {
		ty, tm, _ := t.OccurredAt.Date()
		return ty == y && tm == m
	}
}
