package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/brightloop/attune/internal/analytics"
	"github.com/brightloop/attune/internal/domain"
)

// ActivityStore implements append-only activity persistence backed by
// SQLite.
type ActivityStore struct {
	db *DB
}

// NewActivityStore creates a new SQLite-backed activity store.
func NewActivityStore(db *DB) *ActivityStore {
	return &ActivityStore{db: db}
}

// Append inserts a record. Records are never updated or deleted.
func (s *ActivityStore) Append(ctx context.Context, record *domain.ActivityRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO activity_records (id, user_id, subject, topic, difficulty,
			performance, time_spent, attempts, correct_answers, total_questions,
			learning_velocity, retention_rate, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID.String(), record.UserID, record.Subject, record.Topic,
		string(record.Difficulty), record.Performance, record.TimeSpent,
		record.Attempts, record.CorrectAnswers, record.TotalQuestions,
		record.LearningVelocity, record.RetentionRate, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert activity record: %w", err)
	}
	return nil
}

// Recent returns records matching the query ordered most-recent-first.
// The ordering is part of the store contract: trend computations in the
// analytics service split the slice by position.
func (s *ActivityStore) Recent(ctx context.Context, q analytics.ActivityQuery) ([]domain.ActivityRecord, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT id, user_id, subject, topic, difficulty,
			performance, time_spent, attempts, correct_answers, total_questions,
			learning_velocity, retention_rate, created_at
		FROM activity_records
		WHERE user_id = ?`)
	args := []any{q.UserID}

	if q.Subject != "" {
		sb.WriteString(" AND subject = ?")
		args = append(args, q.Subject)
	}
	if q.Topic != "" {
		sb.WriteString(" AND topic = ?")
		args = append(args, q.Topic)
	}
	sb.WriteString(" ORDER BY created_at DESC, rowid DESC")
	if q.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, q.Limit)
	}

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query activity records: %w", err)
	}
	defer rows.Close()

	var records []domain.ActivityRecord
	for rows.Next() {
		var r domain.ActivityRecord
		var id, difficulty string
		if err := rows.Scan(&id, &r.UserID, &r.Subject, &r.Topic, &difficulty,
			&r.Performance, &r.TimeSpent, &r.Attempts, &r.CorrectAnswers,
			&r.TotalQuestions, &r.LearningVelocity, &r.RetentionRate,
			&r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan activity record: %w", err)
		}
		if parsed, err := uuid.Parse(id); err == nil {
			r.ID = parsed
		}
		r.Difficulty = domain.Difficulty(difficulty)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity records: %w", err)
	}
	return records, nil
}
