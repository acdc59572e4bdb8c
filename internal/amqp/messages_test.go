package amqp

import (
	"testing"
	"time"

	"gagyebu/internal/core"
)

func TestNewLedgerEvent(t *testing.T) {
	tx := core.Transaction{ID: "abc", Date: "2023. 08. 17", Amount: 7000, Type: core.TypeExpense}
	ev := NewLedgerEvent(ActionCreated, tx)

	if ev.Action != ActionCreated || ev.ID != "abc" || ev.Amount != 7000 {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if ev.Timestamp.IsZero() {
		t.Fatal("timestamp should be set")
	}
	if time.Since(ev.Timestamp) > time.Second {
		t.Fatal("timestamp should be recent")
	}
}

func TestLedgerEventJSONRoundTrip(t *testing.T) {
	ev := &LedgerEvent{
		Action:    ActionDeleted,
		ID:        "abc",
		Timestamp: time.Date(2023, 8, 17, 12, 0, 0, 0, time.UTC),
	}
	raw, err := ev.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	parsed, err := LedgerEventFromJSON(raw)
	if err != nil {
		t.Fatalf("LedgerEventFromJSON: %v", err)
	}
	if parsed.Action != ev.Action || parsed.ID != ev.ID || !parsed.Timestamp.Equal(ev.Timestamp) {
		t.Fatalf("round trip mismatch: %+v vs %+v", parsed, ev)
	}
}

func TestLedgerEventFromInvalidJSON(t *testing.T) {
	if _, err := LedgerEventFromJSON([]byte(`{"amount":"NaN"}`)); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}
