package analytics

import (
	"context"

	"github.com/brightloop/attune/internal/domain"
)

// ActivityQuery selects recent activity records for a user. Subject and
// Topic narrow the selection when non-empty.
type ActivityQuery struct {
	UserID  string
	Subject string
	Topic   string
	Limit   int
}

// ActivityStore is the append-only persistence boundary for activity
// records. Recent MUST return records ordered most-recent-first; the
// trend computations depend on that ordering.
type ActivityStore interface {
	Append(ctx context.Context, record *domain.ActivityRecord) error
	Recent(ctx context.Context, q ActivityQuery) ([]domain.ActivityRecord, error)
}

// PreferenceStore persists the per-user preferences projection.
// Get returns domain.ErrPreferencesNotFound when the user has none.
type PreferenceStore interface {
	Get(ctx context.Context, userID string) (*domain.Preferences, error)
	Put(ctx context.Context, prefs *domain.Preferences) error
}

// EventPublisher receives a notification for every tracked activity.
// Publish failures never fail the tracking request.
type EventPublisher interface {
	PublishActivity(ctx context.Context, record *domain.ActivityRecord) error
}

// Recommender defines the analytics operations consumed by the HTTP and
// MCP surfaces.
type Recommender interface {
	// TrackActivity validates and persists a record, then maintains the
	// user's preferences from it
	TrackActivity(ctx context.Context, record *domain.ActivityRecord) (*domain.ActivityRecord, error)

	// RecommendDifficulty suggests the next difficulty tier for a
	// subject/topic pair
	RecommendDifficulty(ctx context.Context, userID, subject, topic string) domain.Difficulty

	// Recommendations returns a ranked list of suggestions for a user
	Recommendations(ctx context.Context, userID string) []domain.Recommendation

	// RetentionRate estimates how well a topic is being retained
	RetentionRate(ctx context.Context, userID, subject, topic string) float64

	// Preferences returns the user's preferences projection
	Preferences(ctx context.Context, userID string) (*domain.Preferences, error)

	// SavePreferences stores the full preferences projection
	SavePreferences(ctx context.Context, prefs *domain.Preferences) error
}

// Ensure Service implements Recommender
var _ Recommender = (*Service)(nil)
