package amqp

import (
	"encoding/json"
	"time"
)

// LedgerImportedMessage announces that an import appended transactions
// to the ledger. It stays lightweight: consumers re-read the ledger
// from the backend rather than trusting message payloads.
type LedgerImportedMessage struct {
	Accounts  []string  `json:"accounts"`
	Count     int       `json:"count"`
	Timestamp time.Time `json:"timestamp"`
}

// NewLedgerImportedMessage creates an import notification for the
// accounts touched by a batch of count transactions.
func NewLedgerImportedMessage(accounts []string, count int) *LedgerImportedMessage {
	return &LedgerImportedMessage{
		Accounts:  accounts,
		Count:     count,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *LedgerImportedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerImportedMessageFromJSON creates a message from JSON bytes
func LedgerImportedMessageFromJSON(data []byte) (*LedgerImportedMessage, error) {
	var msg LedgerImportedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
