package queue_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/brightloop/attune/internal/domain"
	"github.com/brightloop/attune/internal/queue"
)

func sampleRecord() *domain.ActivityRecord {
	return &domain.ActivityRecord{
		ID:               uuid.New(),
		UserID:           "user-1",
		Subject:          "Math",
		Topic:            "Fractions",
		Difficulty:       domain.DifficultyMedium,
		Performance:      82.5,
		TimeSpent:        600,
		Attempts:         1,
		CorrectAnswers:   8,
		TotalQuestions:   10,
		LearningVelocity: 1.0,
		RetentionRate:    100,
		CreatedAt:        time.Now().UTC(),
	}
}

func TestNewActivityEvent(t *testing.T) {
	record := sampleRecord()

	event := queue.NewActivityEvent(record)

	if event.ID == uuid.Nil {
		t.Error("event ID should be generated")
	}
	if event.PublishedAt.IsZero() {
		t.Error("PublishedAt should be set")
	}
	if event.Record.ID != record.ID {
		t.Errorf("Record.ID = %v; want %v", event.Record.ID, record.ID)
	}
	if event.Record.UserID != record.UserID {
		t.Errorf("Record.UserID = %q; want %q", event.Record.UserID, record.UserID)
	}
}

func TestNewActivityEvent_CopiesRecord(t *testing.T) {
	record := sampleRecord()
	event := queue.NewActivityEvent(record)

	record.Performance = 0

	if event.Record.Performance != 82.5 {
		t.Errorf("event should hold a copy of the record, got performance %v", event.Record.Performance)
	}
}

func TestActivityEvent_Serialization(t *testing.T) {
	event := queue.NewActivityEvent(sampleRecord())

	body, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}

	var decoded queue.ActivityEvent
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal event: %v", err)
	}

	if decoded.ID != event.ID {
		t.Errorf("ID = %v; want %v", decoded.ID, event.ID)
	}
	if decoded.Record.Subject != "Math" {
		t.Errorf("Record.Subject = %q; want %q", decoded.Record.Subject, "Math")
	}
	if decoded.Record.Difficulty != domain.DifficultyMedium {
		t.Errorf("Record.Difficulty = %q; want %q", decoded.Record.Difficulty, domain.DifficultyMedium)
	}
}

func TestDefaultConsumerConfig(t *testing.T) {
	cfg := queue.DefaultConsumerConfig()

	if cfg.Workers <= 0 {
		t.Error("Workers should be positive")
	}
	if cfg.Prefetch <= 0 {
		t.Error("Prefetch should be positive")
	}
	if cfg.Timeout <= 0 {
		t.Error("Timeout should be positive")
	}
}
