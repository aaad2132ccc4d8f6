package amqp

import (
	"encoding/json"
	"time"
)

// LedgerChangeMessage notifies the export worker that the ledger mutated.
// It carries only the operation and record id; the worker re-reads the
// full snapshot from the backing store rather than trusting the message.
type LedgerChangeMessage struct {
	Op        string    `json:"op"`
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewLedgerChangeMessage(op, id string) *LedgerChangeMessage {
	return &LedgerChangeMessage{
		Op:        op,
		ID:        id,
		Timestamp: time.Now(),
	}
}

func (m *LedgerChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func LedgerChangeMessageFromJSON(data []byte) (*LedgerChangeMessage, error) {
	var msg LedgerChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
