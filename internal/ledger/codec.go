package ledger

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"fintrack/internal/core"
)

// record is the persisted wire shape of one transaction. This array-of-
// records layout is the sole external artifact with a fixed shape; field
// names and types must not change.
type record struct {
	ID       string  `json:"id"`
	Type     string  `json:"type"`
	Title    string  `json:"title"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Date     string  `json:"date"`
}

func encode(items []core.Transaction) ([]byte, error) {
	records := make([]record, len(items))
	for i, t := range items {
		records[i] = record{
			ID:       t.ID,
			Type:     string(t.Kind),
			Title:    t.Title,
			Amount:   t.Amount.Float(),
			Category: t.Category,
			Date:     t.OccurredAt.Format(time.RFC3339Nano),
		}
	}
	return json.Marshal(records)
}

func decode(data []byte) ([]core.Transaction, error) {
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode ledger: %w", err)
	}
	items := make([]core.Transaction, len(records))
	for i, r := range records {
		occurred, err := time.Parse(time.RFC3339Nano, r.Date)
		if err != nil {
			// Date-only values are accepted for compatibility with
			// hand-edited state.
			occurred, err = time.Parse("2006-01-02", r.Date)
			if err != nil {
				return nil, fmt.Errorf("decode ledger record %d: bad date %q: %w", i, r.Date, err)
			}
		}
		items[i] = core.Transaction{
			ID:         r.ID,
			Kind:       core.Kind(r.Type),
			Title:      r.Title,
			Amount:     core.Money{Cents: int64(math.Round(r.Amount * 100))},
			Category:   r.Category,
			OccurredAt: occurred,
		}
	}
	return items, nil
}
