package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/brightloop/attune/internal/domain"
)

// PreferenceStore implements preferences persistence backed by SQLite.
// The topic and subject sets are stored as JSON arrays.
type PreferenceStore struct {
	db *DB
}

// NewPreferenceStore creates a new SQLite-backed preference store.
func NewPreferenceStore(db *DB) *PreferenceStore {
	return &PreferenceStore{db: db}
}

// Get retrieves preferences for a user.
func (s *PreferenceStore) Get(ctx context.Context, userID string) (*domain.Preferences, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT user_id, preferred_difficulty, learning_style, study_time_preference,
			session_duration, subjects, weak_areas, strong_areas, updated_at
		FROM preferences WHERE user_id = ?`, userID)

	var p domain.Preferences
	var difficulty string
	var subjects, weak, strong []byte
	err := row.Scan(&p.UserID, &difficulty, &p.LearningStyle, &p.StudyTimePreference,
		&p.SessionDuration, &subjects, &weak, &strong, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPreferencesNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query preferences: %w", err)
	}

	p.PreferredDifficulty = domain.Difficulty(difficulty)
	p.Subjects = decodeStringSet(subjects)
	p.WeakAreas = decodeStringSet(weak)
	p.StrongAreas = decodeStringSet(strong)
	return &p, nil
}

// Put persists the full preferences object (insert or update).
func (s *PreferenceStore) Put(ctx context.Context, prefs *domain.Preferences) error {
	subjects, err := json.Marshal(stringSet(prefs.Subjects))
	if err != nil {
		return fmt.Errorf("marshal subjects: %w", err)
	}
	weak, err := json.Marshal(stringSet(prefs.WeakAreas))
	if err != nil {
		return fmt.Errorf("marshal weak_areas: %w", err)
	}
	strong, err := json.Marshal(stringSet(prefs.StrongAreas))
	if err != nil {
		return fmt.Errorf("marshal strong_areas: %w", err)
	}

	now := time.Now()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO preferences (user_id, preferred_difficulty, learning_style,
			study_time_preference, session_duration, subjects, weak_areas,
			strong_areas, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			preferred_difficulty=excluded.preferred_difficulty,
			learning_style=excluded.learning_style,
			study_time_preference=excluded.study_time_preference,
			session_duration=excluded.session_duration,
			subjects=excluded.subjects,
			weak_areas=excluded.weak_areas,
			strong_areas=excluded.strong_areas,
			updated_at=excluded.updated_at`,
		prefs.UserID, string(prefs.PreferredDifficulty), prefs.LearningStyle,
		prefs.StudyTimePreference, prefs.SessionDuration,
		string(subjects), string(weak), string(strong), now,
	)
	if err != nil {
		return fmt.Errorf("upsert preferences: %w", err)
	}
	prefs.UpdatedAt = now
	return nil
}

// stringSet normalizes a nil slice to an empty JSON array on write.
func stringSet(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// decodeStringSet maps malformed or missing stored sets to empty,
// keeping shape errors out of the business logic.
func decodeStringSet(data []byte) []string {
	if len(data) == 0 {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		return []string{}
	}
	return out
}
