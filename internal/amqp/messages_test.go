package amqp

import (
	"testing"
)

func TestLedgerChangeMessageRoundtrip(t *testing.T) {
	msg := NewLedgerChangeMessage("add", "abc-123")

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatal(err)
	}

	got, err := LedgerChangeMessageFromJSON(data)
	if err != nil {
		t.Fatal(err)
	}
	if got.Op != "add" || got.ID != "abc-123" {
		t.Fatalf("got %+v", got)
	}
	if !got.Timestamp.Equal(msg.Timestamp) {
		t.Fatalf("timestamp = %v, want %v", got.Timestamp, msg.Timestamp)
	}
}

func TestLedgerChangeMessageFromJSONInvalid(t *testing.T) {
	if _, err := LedgerChangeMessageFromJSON([]byte("{not json")); err == nil {
		t.Fatal("expected error")
	}
}
