package core

import (
	"strings"
	"time"
)

// Criteria is a filter configuration. Every field is optional and the
// zero value matches everything; set fields compose with logical AND.
type Criteria struct {
	// Search matches case-insensitively against the title.
	Search string
	// Categories restricts to the given set. Empty means match all,
	// deliberately not "match none".
	Categories []string
	// Kind restricts to expense or income; empty means both.
	Kind Kind
	// DateFrom/DateTo are inclusive day-level bounds on OccurredAt.
	// DateFrom is floored to start of day and DateTo ceilinged to end of
	// day, so a single-day range covers the whole day.
	DateFrom time.Time
	DateTo   time.Time
}

// Filter returns the subset of records matching c, preserving input order.
// It never mutates its inputs and is deterministic for identical inputs.
func Filter(records []Transaction, c Criteria) []Transaction {
	search := strings.ToLower(strings.TrimSpace(c.Search))

	var cats map[string]struct{}
	if len(c.Categories) > 0 {
		cats = make(map[string]struct{}, len(c.Categories))
		for _, cat := range c.Categories {
			cats[cat] = struct{}{}
		}
	}

	var from, to time.Time
	if !c.DateFrom.IsZero() {
		from = startOfDay(c.DateFrom)
	}
	if !c.DateTo.IsZero() {
		to = endOfDay(c.DateTo)
	}

	out := make([]Transaction, 0, len(records))
	for _, t := range records {
		if search != "" && !strings.Contains(strings.ToLower(t.Title), search) {
			continue
		}
		if cats != nil {
			if _, ok := cats[t.Category]; !ok {
				continue
			}
		}
		if c.Kind != "" && t.Kind != c.Kind {
			continue
		}
		if !from.IsZero() && t.OccurredAt.Before(from) {
			continue
		}
		if !to.IsZero() && t.OccurredAt.After(to) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
