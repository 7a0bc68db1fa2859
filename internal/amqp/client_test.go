package amqp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestClient_PublishRecordChange_NotConnected(t *testing.T) {
	client := &Client{
		exchangeName: "test_exchange",
		queueName:    "test_queue",
	}

	t.Run("publish fails without a channel", func(t *testing.T) {
		err := client.PublishRecordChange(context.Background(), NewRecordChangeMessage(KindTask, "1", "create"))
		if !errors.Is(err, ErrNotConnected) {
			t.Errorf("PublishRecordChange should return ErrNotConnected, got: %v", err)
		}
	})

	t.Run("publish respects context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := client.PublishRecordChange(ctx, NewRecordChangeMessage(KindTask, "1", "create"))
		if err != context.Canceled {
			t.Errorf("PublishRecordChange should return context.Canceled when context is cancelled, got: %v", err)
		}
	})
}

func TestClient_CloseWithoutConnection(t *testing.T) {
	client := &Client{}
	if err := client.Close(); err != nil {
		t.Errorf("Close() on an unconnected client returned %v", err)
	}
}

func TestNewRecordChangeMessage(t *testing.T) {
	msg := NewRecordChangeMessage(KindExpense, "2025-01-01_3", "update")

	if msg.Kind != KindExpense {
		t.Errorf("Kind = %v, want %v", msg.Kind, KindExpense)
	}
	if msg.RecordID != "2025-01-01_3" {
		t.Errorf("RecordID = %v, want 2025-01-01_3", msg.RecordID)
	}
	if msg.Operation != "update" {
		t.Errorf("Operation = %v, want update", msg.Operation)
	}
	if len(msg.ID) != 36 {
		t.Errorf("ID should be a UUID string, got %q", msg.ID)
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Error("Timestamp should be recent")
	}

	other := NewRecordChangeMessage(KindExpense, "2025-01-01_3", "update")
	if other.ID == msg.ID {
		t.Error("message ids should differ")
	}
}

func TestRecordChangeMessage_JSON(t *testing.T) {
	timestamp := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	msg := &RecordChangeMessage{
		ID:        "5f0c7a9e-6a3e-4d4b-9b7a-0d4c1f3f8e11",
		Kind:      KindTask,
		RecordID:  "7",
		Operation: "delete",
		Timestamp: timestamp,
	}

	jsonBytes, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	var parsed RecordChangeMessage
	if err := json.Unmarshal(jsonBytes, &parsed); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if parsed.ID != msg.ID || parsed.Kind != msg.Kind || parsed.RecordID != msg.RecordID || parsed.Operation != msg.Operation {
		t.Errorf("parsed = %+v, want %+v", parsed, msg)
	}
	if !parsed.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("Parsed Timestamp = %v, want %v", parsed.Timestamp, msg.Timestamp)
	}
}
