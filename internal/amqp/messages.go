package amqp

import (
	"encoding/json"
	"time"

	"gagyebu/internal/core"
)

// Ledger event actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// LedgerEvent describes one committed mutation of the transaction table.
// Deleted events carry only the id.
type LedgerEvent struct {
	Action    string      `json:"action"`
	ID        string      `json:"id"`
	Date      string      `json:"date,omitempty"`
	Amount    int64       `json:"amount,omitempty"`
	Type      core.TxType `json:"type,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewLedgerEvent builds an event for the given action and record.
func NewLedgerEvent(action string, tx core.Transaction) *LedgerEvent {
	return &LedgerEvent{
		Action:    action,
		ID:        tx.ID,
		Date:      tx.Date,
		Amount:    tx.Amount,
		Type:      tx.Type,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the event to JSON bytes.
func (ev *LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(ev)
}

// LedgerEventFromJSON parses an event from JSON bytes.
func LedgerEventFromJSON(data []byte) (*LedgerEvent, error) {
	var ev LedgerEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
