package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Record kinds carried in change messages.
const (
	KindTask    = "task"
	KindExpense = "expense"
)

// RecordChangeMessage announces that a record was created, updated or deleted.
// It carries only identifiers; subscribers never get record contents.
type RecordChangeMessage struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	RecordID  string    `json:"record_id"`
	Operation string    `json:"operation"`
	Timestamp time.Time `json:"timestamp"`
}

// NewRecordChangeMessage creates a change message with a fresh message id
func NewRecordChangeMessage(kind, recordID, operation string) *RecordChangeMessage {
	return &RecordChangeMessage{
		ID:        uuid.NewString(),
		Kind:      kind,
		RecordID:  recordID,
		Operation: operation,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *RecordChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}
