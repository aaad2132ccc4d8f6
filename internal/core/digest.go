package core

import (
	"sort"
	"time"
)

// recentWindow is the fixed size of the recent-activity excerpt.
const recentWindow = 5

type (
	// PeriodSummary carries 2-decimal formatted totals for one window.
	PeriodSummary struct {
		Expense string `json:"expense"`
		Income  string `json:"income"`
		Net     string `json:"net"`
	}

	// CategoryLine is one row of the digest's category table.
	CategoryLine struct {
		Name    string `json:"name"`
		Expense string `json:"expense"`
		Income  string `json:"income"`
	}

	// RecentEntry is a transaction reduced to what the assistant needs.
	RecentEntry struct {
		Title    string `json:"title"`
		Amount   string `json:"amount"`
		Kind     Kind   `json:"kind"`
		Category string `json:"category"`
	}

	// Digest is the bounded financial summary handed to the assistant
	// collaborator. Its size does not grow with ledger size beyond the
	// fixed recent window and the category table. It is recomputed fresh
	// on every request and is byte-deterministic for identical inputs.
	Digest struct {
		AllTime        PeriodSummary  `json:"all_time"`
		ThisPeriod     PeriodSummary  `json:"this_period"`
		Categories     []CategoryLine `json:"categories"`
		Count          int            `json:"transaction_count"`
		Recent         []RecentEntry  `json:"recent"`
		SkippedInvalid int            `json:"skipped_invalid,omitempty"`
	}
)

// BuildDigest summarizes records into a Digest. ThisPeriod covers the
// calendar month and year of referenceDate. Recent holds the last
// transactions in insertion order, not date order, matching the ledger's
// natural append order.
func BuildDigest(records []Transaction, referenceDate time.Time) Digest {
	d := Digest{
		AllTime:        summarize(TotalsIn(records, nil)),
		ThisPeriod:     summarize(TotalsIn(records, SameMonth(referenceDate))),
		Count:          len(records),
		SkippedInvalid: CountInvalid(records),
	}

	breakdown := CategoryBreakdown(records)
	names := make([]string, 0, len(breakdown))
	for name := range breakdown {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ct := breakdown[name]
		d.Categories = append(d.Categories, CategoryLine{
			Name:    name,
			Expense: ct.Expense.Format(),
			Income:  ct.Income.Format(),
		})
	}

	start := len(records) - recentWindow
	if start < 0 {
		start = 0
	}
	for _, t := range records[start:] {
		d.Recent = append(d.Recent, RecentEntry{
			Title:    t.Title,
			Amount:   t.Amount.Format(),
			Kind:     t.Kind,
			Category: t.Category,
		})
	}

	return d
}

func summarize(pt PeriodTotals) PeriodSummary {
	return PeriodSummary{
		Expense: pt.Expense.Format(),
		Income:  pt.Income.Format(),
		Net:     pt.Net.Format(),
	}
}
