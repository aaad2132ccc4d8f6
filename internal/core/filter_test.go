package core

import (
	"testing"
	"time"
)

func tx(id string, kind Kind, cents int64, title, category string, occurred time.Time) Transaction {
	return Transaction{
		ID:         id,
		Kind:       kind,
		Title:      title,
		Amount:     Money{Cents: cents},
		Category:   category,
		OccurredAt: occurred,
	}
}

func sampleLedger() []Transaction {
	return []Transaction{
		tx("1", Expense, 5000, "Lunch", "Food", time.Date(2024, 1, 5, 13, 30, 0, 0, time.UTC)),
		tx("2", Income, 200000, "Salary", "Salary", time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)),
		tx("3", Expense, 3000, "Groceries", "Food", time.Date(2024, 2, 1, 18, 0, 0, 0, time.UTC)),
	}
}

func TestFilterIdentityDefault(t *testing.T) {
	records := sampleLedger()
	got := Filter(records, Criteria{})
	if len(got) != len(records) {
		t.Fatalf("expected %d records, got %d", len(records), len(got))
	}
	for i := range records {
		if got[i].ID != records[i].ID {
			t.Fatalf("order changed at %d: got %s want %s", i, got[i].ID, records[i].ID)
		}
	}
}

func TestFilterSearchCaseInsensitive(t *testing.T) {
	got := Filter(sampleLedger(), Criteria{Search: "GROC"})
	if len(got) != 1 || got[0].ID != "3" {
		t.Fatalf("expected only record 3, got %v", got)
	}
}

func TestFilterCategories(t *testing.T) {
	records := sampleLedger()

	got := Filter(records, Criteria{Categories: []string{"Food"}})
	if len(got) != 2 {
		t.Fatalf("expected 2 Food records, got %d", len(got))
	}
	for _, r := range got {
		if r.Category != "Food" {
			t.Fatalf("record %s has category %q", r.ID, r.Category)
		}
	}

	// Empty set matches all, deliberately not "match none"
	got = Filter(records, Criteria{Categories: nil})
	if len(got) != 3 {
		t.Fatalf("empty categories should match all, got %d", len(got))
	}
}

func TestFilterKind(t *testing.T) {
	got := Filter(sampleLedger(), Criteria{Kind: Income})
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("expected only the income record, got %v", got)
	}
}

func TestFilterSingleDayRangeInclusive(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	got := Filter(sampleLedger(), Criteria{DateFrom: day, DateTo: day})
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("single-day range should include the whole day, got %v", got)
	}

	// Bounds given mid-day must behave identically
	noon := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	got = Filter(sampleLedger(), Criteria{DateFrom: noon, DateTo: noon})
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("mid-day bounds should be normalized, got %v", got)
	}
}

func TestFilterConditionsCompose(t *testing.T) {
	got := Filter(sampleLedger(), Criteria{
		Search:     "lun",
		Categories: []string{"Food"},
		Kind:       Expense,
		DateFrom:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		DateTo:     time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	})
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("expected only record 1, got %v", got)
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	records := sampleLedger()
	before := make([]Transaction, len(records))
	copy(before, records)

	_ = Filter(records, Criteria{Kind: Expense, Search: "x"})

	for i := range records {
		if records[i] != before[i] {
			t.Fatalf("input mutated at %d", i)
		}
	}
}
