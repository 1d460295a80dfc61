package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brightloop/attune/internal/analytics"
	"github.com/brightloop/attune/internal/domain"
)

// ActivityRepository implements analytics.ActivityStore using PostgreSQL
type ActivityRepository struct {
	pool *pgxpool.Pool
}

// Ensure ActivityRepository implements the store interface
var _ analytics.ActivityStore = (*ActivityRepository)(nil)

// NewActivityRepository creates a new PostgreSQL activity repository
func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{pool: pool}
}

// Append inserts a record. The table is append-only.
func (r *ActivityRepository) Append(ctx context.Context, record *domain.ActivityRecord) error {
	query := `
		INSERT INTO activity_records (id, user_id, subject, topic, difficulty,
			performance, time_spent, attempts, correct_answers, total_questions,
			learning_velocity, retention_rate, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.pool.Exec(ctx, query,
		record.ID, record.UserID, record.Subject, record.Topic,
		string(record.Difficulty), record.Performance, record.TimeSpent,
		record.Attempts, record.CorrectAnswers, record.TotalQuestions,
		record.LearningVelocity, record.RetentionRate, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert activity record: %w", err)
	}
	return nil
}

// Recent returns records matching the query ordered most-recent-first,
// the ordering the analytics trend computations rely on.
func (r *ActivityRepository) Recent(ctx context.Context, q analytics.ActivityQuery) ([]domain.ActivityRecord, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT id, user_id, subject, topic, difficulty,
			performance, time_spent, attempts, correct_answers, total_questions,
			learning_velocity, retention_rate, created_at
		FROM activity_records
		WHERE user_id = $1`)
	args := []any{q.UserID}

	if q.Subject != "" {
		args = append(args, q.Subject)
		fmt.Fprintf(&sb, " AND subject = $%d", len(args))
	}
	if q.Topic != "" {
		args = append(args, q.Topic)
		fmt.Fprintf(&sb, " AND topic = $%d", len(args))
	}
	sb.WriteString(" ORDER BY created_at DESC, id DESC")
	if q.Limit > 0 {
		args = append(args, q.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query activity records: %w", err)
	}
	defer rows.Close()

	var records []domain.ActivityRecord
	for rows.Next() {
		var rec domain.ActivityRecord
		var difficulty string
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Subject, &rec.Topic,
			&difficulty, &rec.Performance, &rec.TimeSpent, &rec.Attempts,
			&rec.CorrectAnswers, &rec.TotalQuestions, &rec.LearningVelocity,
			&rec.RetentionRate, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan activity record: %w", err)
		}
		rec.Difficulty = domain.Difficulty(difficulty)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity records: %w", err)
	}
	return records, nil
}
