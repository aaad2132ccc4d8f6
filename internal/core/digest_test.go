package core

import (
	"encoding/json"
	"fmt"
	"reflect"
	"testing"
	"time"
)

func TestBuildDigest(t *testing.T) {
	ref := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	d := BuildDigest(sampleLedger(), ref)

	if d.AllTime.Expense != "80.00" || d.AllTime.Income != "2000.00" || d.AllTime.Net != "1920.00" {
		t.Fatalf("all time = %+v", d.AllTime)
	}
	if d.ThisPeriod.Expense != "50.00" || d.ThisPeriod.Income != "2000.00" || d.ThisPeriod.Net != "1950.00" {
		t.Fatalf("this period = %+v", d.ThisPeriod)
	}
	if d.Count != 3 {
		t.Fatalf("count = %d, want 3", d.Count)
	}
	if d.SkippedInvalid != 0 {
		t.Fatalf("skipped = %d, want 0", d.SkippedInvalid)
	}

	wantCategories := []CategoryLine{
		{Name: "Food", Expense: "80.00", Income: "0.00"},
		{Name: "Salary", Expense: "0.00", Income: "2000.00"},
	}
	if !reflect.DeepEqual(d.Categories, wantCategories) {
		t.Fatalf("categories = %+v, want %+v", d.Categories, wantCategories)
	}

	if len(d.Recent) != 3 || d.Recent[0].Title != "Lunch" || d.Recent[2].Title != "Groceries" {
		t.Fatalf("recent = %+v", d.Recent)
	}
}

func TestBuildDigestDeterministic(t *testing.T) {
	ref := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	records := sampleLedger()

	a, err := json.Marshal(BuildDigest(records, ref))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		b, err := json.Marshal(BuildDigest(records, ref))
		if err != nil {
			t.Fatal(err)
		}
		if string(a) != string(b) {
			t.Fatalf("digest not byte-deterministic:\n%s\n%s", a, b)
		}
	}
}

func TestBuildDigestRecentWindow(t *testing.T) {
	var records []Transaction
	for i := 0; i < 8; i++ {
		records = append(records, tx(
			fmt.Sprintf("%d", i), Expense, 100, fmt.Sprintf("entry-%d", i), "Misc",
			time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC)))
	}

	d := BuildDigest(records, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))
	if len(d.Recent) != 5 {
		t.Fatalf("recent window = %d, want 5", len(d.Recent))
	}
	// Last five in insertion order: entry-3 .. entry-7
	for i, r := range d.Recent {
		want := fmt.Sprintf("entry-%d", i+3)
		if r.Title != want {
			t.Fatalf("recent[%d] = %q, want %q", i, r.Title, want)
		}
	}
}

func TestBuildDigestSkippedInvalid(t *testing.T) {
	records := append(sampleLedger(),
		tx("bad", Expense, 0, "corrupt", "Food", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)))

	d := BuildDigest(records, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	if d.SkippedInvalid != 1 {
		t.Fatalf("skipped = %d, want 1", d.SkippedInvalid)
	}
	// The invalid record still counts toward Count, just not the sums
	if d.Count != 4 {
		t.Fatalf("count = %d, want 4", d.Count)
	}
	if d.AllTime.Expense != "80.00" {
		t.Fatalf("invalid record leaked into totals: %+v", d.AllTime)
	}
}

func TestBuildDigestEmpty(t *testing.T) {
	d := BuildDigest(nil, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	if d.AllTime.Expense != "0.00" || d.AllTime.Net != "0.00" {
		t.Fatalf("empty ledger totals = %+v", d.AllTime)
	}
	if d.Count != 0 || len(d.Categories) != 0 || len(d.Recent) != 0 {
		t.Fatalf("empty ledger digest = %+v", d)
	}
}
