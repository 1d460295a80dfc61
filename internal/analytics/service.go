package analytics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/brightloop/attune/internal/domain"
)

// Aggregation windows and thresholds. The difficulty policy is a simple
// three-way hysteresis biased toward stability: escalation requires both
// high performance and a non-negative trend, de-escalation only one bad
// signal.
const (
	difficultyWindow     = 10
	recommendationWindow = 50
	retentionWindow      = 20
	retentionSample      = 5

	weakAreaThreshold   = 70.0
	strongAreaThreshold = 85.0

	escalateAvg    = 85.0
	deescalateAvg  = 60.0
	deescalateDrop = -10.0

	maxRecommendations = 5
)

// Service computes adaptive-learning analytics over recent activity
// history. Stores are injected; the service holds no mutable state of
// its own, so one instance serves concurrent requests.
//
// The preference update in TrackActivity is a read-modify-write with no
// concurrency control: concurrent tracks for the same user are
// last-write-wins on the full preferences object.
type Service struct {
	activities ActivityStore
	prefs      PreferenceStore
	events     EventPublisher
	logger     *slog.Logger
}

// Config holds dependencies for the analytics service
type Config struct {
	Activities  ActivityStore
	Preferences PreferenceStore

	// Events is optional; when nil no activity events are published
	Events EventPublisher

	// Logger defaults to slog.Default()
	Logger *slog.Logger
}

// NewService creates an analytics service with injected stores
func NewService(cfg Config) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		activities: cfg.Activities,
		prefs:      cfg.Preferences,
		events:     cfg.Events,
		logger:     logger,
	}
}

// TrackActivity validates the record, stamps it, appends it to the
// activity store and maintains the user's preferences from it. Store
// errors propagate: there is no safe default for "activity was
// recorded".
func (s *Service) TrackActivity(ctx context.Context, record *domain.ActivityRecord) (*domain.ActivityRecord, error) {
	if err := record.Validate(); err != nil {
		return nil, err
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	record.CreatedAt = time.Now()
	record.LearningVelocity = record.Velocity()
	record.RetentionRate = s.RetentionRate(ctx, record.UserID, record.Subject, record.Topic)

	if err := s.activities.Append(ctx, record); err != nil {
		return nil, fmt.Errorf("append activity: %w", err)
	}

	if err := s.updatePreferences(ctx, record); err != nil {
		return nil, fmt.Errorf("update preferences: %w", err)
	}

	if s.events != nil {
		if err := s.events.PublishActivity(ctx, record); err != nil {
			s.logger.Warn("publish activity event failed",
				"user_id", record.UserID,
				"subject", record.Subject,
				"error", err,
			)
		}
	}

	return record, nil
}

// RecommendDifficulty suggests the next difficulty tier for a
// subject/topic pair from the last few records. With no history (or a
// failing store) it degrades to the cold-start default of medium.
func (s *Service) RecommendDifficulty(ctx context.Context, userID, subject, topic string) domain.Difficulty {
	records, err := s.activities.Recent(ctx, ActivityQuery{
		UserID:  userID,
		Subject: subject,
		Topic:   topic,
		Limit:   difficultyWindow,
	})
	if err != nil {
		s.logger.Warn("difficulty lookup failed, using default",
			"user_id", userID,
			"subject", subject,
			"topic", topic,
			"error", err,
		)
		return domain.DifficultyMedium
	}
	if len(records) == 0 {
		return domain.DifficultyMedium
	}

	return decideDifficulty(meanPerformance(records), performanceTrend(records))
}

// RetentionRate estimates retention for a topic as the ratio of recent
// to older mean performance over the last records, clamped to [0,100].
// Fewer than two records (or a failing store) assumes full retention.
func (s *Service) RetentionRate(ctx context.Context, userID, subject, topic string) float64 {
	records, err := s.activities.Recent(ctx, ActivityQuery{
		UserID:  userID,
		Subject: subject,
		Topic:   topic,
		Limit:   retentionWindow,
	})
	if err != nil {
		s.logger.Warn("retention lookup failed, assuming full retention",
			"user_id", userID,
			"subject", subject,
			"topic", topic,
			"error", err,
		)
		return 100
	}
	if len(records) < 2 {
		return 100
	}

	n := min(retentionSample, len(records))
	recent := meanPerformance(records[:n])
	older := meanPerformance(records[len(records)-n:])
	if older == 0 {
		return 100
	}

	rate := recent / older * 100
	if rate > 100 {
		return 100
	}
	if rate < 0 {
		return 0
	}
	return rate
}

// Preferences returns the stored preferences for a user.
func (s *Service) Preferences(ctx context.Context, userID string) (*domain.Preferences, error) {
	return s.prefs.Get(ctx, userID)
}

// SavePreferences stores the full preferences projection. This is the
// onboarding path; tracking never creates preferences on its own.
func (s *Service) SavePreferences(ctx context.Context, prefs *domain.Preferences) error {
	if prefs.UserID == "" {
		return domain.ErrMissingUserID
	}
	prefs.UpdatedAt = time.Now()
	return s.prefs.Put(ctx, prefs)
}

// updatePreferences applies a single new record to the user's weak and
// strong areas. Users without preferences are left alone: the projection
// is only created through explicit onboarding.
func (s *Service) updatePreferences(ctx context.Context, record *domain.ActivityRecord) error {
	prefs, err := s.prefs.Get(ctx, record.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrPreferencesNotFound) {
			return nil
		}
		return err
	}

	// Performance in [70,85] triggers neither branch: the topic stays
	// wherever it already was.
	switch {
	case record.Performance < weakAreaThreshold:
		prefs.MarkWeakArea(record.Topic)
	case record.Performance > strongAreaThreshold:
		prefs.MarkStrongArea(record.Topic)
	}

	return s.prefs.Put(ctx, prefs)
}

// decideDifficulty applies the three-way hysteresis policy.
func decideDifficulty(avg, trend float64) domain.Difficulty {
	switch {
	case avg >= escalateAvg && trend >= 0:
		return domain.DifficultyHard
	case avg <= deescalateAvg || trend < deescalateDrop:
		return domain.DifficultyEasy
	default:
		return domain.DifficultyMedium
	}
}

// performanceTrend compares the mean of the more recent half of the
// records with the mean of the older half. Records are ordered
// most-recent-first, so the recent half is the front of the slice.
func performanceTrend(records []domain.ActivityRecord) float64 {
	half := len(records) / 2
	if half == 0 {
		return 0
	}
	return meanPerformance(records[:half]) - meanPerformance(records[half:])
}

func meanPerformance(records []domain.ActivityRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	var sum float64
	for _, r := range records {
		sum += r.Performance
	}
	return sum / float64(len(records))
}
