package amqp

import (
	"encoding/json"
	"time"

	"pocketledger/internal/ledger"
)

// LedgerChangeMessage announces a committed ledger mutation. It carries ids
// only; consumers re-read the ledger if they need contents.
type LedgerChangeMessage struct {
	Op        string    `json:"op"`
	Key       string    `json:"key"`
	IDs       []string  `json:"ids"`
	Count     int       `json:"count"`
	Timestamp time.Time `json:"timestamp"`
}

// NewLedgerChangeMessage builds the message for a change
func NewLedgerChangeMessage(c ledger.Change) *LedgerChangeMessage {
	ts := c.At
	if ts.IsZero() {
		ts = time.Now()
	}
	ids := c.IDs
	if ids == nil {
		ids = []string{}
	}
	return &LedgerChangeMessage{
		Op:        c.Op,
		Key:       c.Key,
		IDs:       ids,
		Count:     c.Count,
		Timestamp: ts.UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *LedgerChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerChangeMessageFromJSON creates a message from JSON bytes
func LedgerChangeMessageFromJSON(data []byte) (*LedgerChangeMessage, error) {
	var msg LedgerChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
