package queue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/brightloop/attune/internal/analytics"
	"github.com/brightloop/attune/internal/domain"
)

// Publisher publishes activity events to the queue
type Publisher struct {
	conn *Connection
}

// Ensure Publisher satisfies the analytics event boundary
var _ analytics.EventPublisher = (*Publisher)(nil)

// NewPublisher creates a new activity event publisher
func NewPublisher(conn *Connection) *Publisher {
	return &Publisher{conn: conn}
}

// PublishActivity publishes a tracked activity record to the activity
// queue. Callers treat failures as non-fatal; tracking never depends on
// the queue being up.
func (p *Publisher) PublishActivity(ctx context.Context, record *domain.ActivityRecord) error {
	event := NewActivityEvent(record)

	if err := p.conn.PublishJSON(ctx, ActivityQueueName, event); err != nil {
		return fmt.Errorf("failed to publish activity event: %w", err)
	}

	slog.Info("published activity event",
		"event_id", event.ID,
		"record_id", record.ID,
		"user_id", record.UserID,
		"subject", record.Subject,
		"topic", record.Topic,
	)

	return nil
}
