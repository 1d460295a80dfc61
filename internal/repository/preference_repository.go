package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sqlc-dev/pqtype"

	"github.com/brightloop/attune/internal/analytics"
	"github.com/brightloop/attune/internal/domain"
)

// PreferenceRepository implements analytics.PreferenceStore using PostgreSQL
type PreferenceRepository struct {
	pool *pgxpool.Pool
}

// Ensure PreferenceRepository implements the store interface
var _ analytics.PreferenceStore = (*PreferenceRepository)(nil)

// NewPreferenceRepository creates a new PostgreSQL preference repository
func NewPreferenceRepository(pool *pgxpool.Pool) *PreferenceRepository {
	return &PreferenceRepository{pool: pool}
}

// Get returns the stored preferences for a user, or
// domain.ErrPreferencesNotFound when the user has never onboarded.
func (r *PreferenceRepository) Get(ctx context.Context, userID string) (*domain.Preferences, error) {
	query := `
		SELECT user_id, preferred_difficulty, learning_style,
			study_time_preference, session_duration,
			subjects, weak_areas, strong_areas, updated_at
		FROM preferences
		WHERE user_id = $1
	`
	var prefs domain.Preferences
	var difficulty string
	var subjects, weakAreas, strongAreas pqtype.NullRawMessage
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&prefs.UserID, &difficulty, &prefs.LearningStyle,
		&prefs.StudyTimePreference, &prefs.SessionDuration,
		&subjects, &weakAreas, &strongAreas, &prefs.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPreferencesNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query preferences: %w", err)
	}
	prefs.PreferredDifficulty = domain.Difficulty(difficulty)
	prefs.Subjects = decodeSet(subjects)
	prefs.WeakAreas = decodeSet(weakAreas)
	prefs.StrongAreas = decodeSet(strongAreas)
	return &prefs, nil
}

// Put stores the full preferences object, replacing any existing row.
// Last write wins.
func (r *PreferenceRepository) Put(ctx context.Context, prefs *domain.Preferences) error {
	query := `
		INSERT INTO preferences (user_id, preferred_difficulty, learning_style,
			study_time_preference, session_duration,
			subjects, weak_areas, strong_areas, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE SET
			preferred_difficulty = EXCLUDED.preferred_difficulty,
			learning_style = EXCLUDED.learning_style,
			study_time_preference = EXCLUDED.study_time_preference,
			session_duration = EXCLUDED.session_duration,
			subjects = EXCLUDED.subjects,
			weak_areas = EXCLUDED.weak_areas,
			strong_areas = EXCLUDED.strong_areas,
			updated_at = EXCLUDED.updated_at
	`
	subjects, err := encodeSet(prefs.Subjects)
	if err != nil {
		return fmt.Errorf("encode subjects: %w", err)
	}
	weakAreas, err := encodeSet(prefs.WeakAreas)
	if err != nil {
		return fmt.Errorf("encode weak areas: %w", err)
	}
	strongAreas, err := encodeSet(prefs.StrongAreas)
	if err != nil {
		return fmt.Errorf("encode strong areas: %w", err)
	}

	_, err = r.pool.Exec(ctx, query,
		prefs.UserID, string(prefs.PreferredDifficulty), prefs.LearningStyle,
		prefs.StudyTimePreference, prefs.SessionDuration,
		subjects, weakAreas, strongAreas, prefs.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert preferences: %w", err)
	}
	return nil
}

// decodeSet unmarshals a nullable jsonb array column. NULL and malformed
// values decode to the empty set.
func decodeSet(raw pqtype.NullRawMessage) []string {
	if !raw.Valid {
		return []string{}
	}
	var set []string
	if err := json.Unmarshal(raw.RawMessage, &set); err != nil || set == nil {
		return []string{}
	}
	return set
}

func encodeSet(set []string) (pqtype.NullRawMessage, error) {
	if set == nil {
		set = []string{}
	}
	data, err := json.Marshal(set)
	if err != nil {
		return pqtype.NullRawMessage{}, err
	}
	return pqtype.NullRawMessage{RawMessage: data, Valid: true}, nil
}
