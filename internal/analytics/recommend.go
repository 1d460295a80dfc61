package analytics

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/brightloop/attune/internal/domain"
)

// Recommendations derives a prioritized list of suggestions for a user
// from their preferences and recent activity. Group order is fixed:
// weak areas first, then difficulty adjustments, then schedule. The list
// is truncated to five entries without re-ranking, so ordering is by
// construction order, not importance.
func (s *Service) Recommendations(ctx context.Context, userID string) []domain.Recommendation {
	prefs, err := s.prefs.Get(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrPreferencesNotFound) {
		s.logger.Warn("preferences lookup failed, using default recommendations",
			"user_id", userID,
			"error", err,
		)
		return defaultRecommendations()
	}

	records, rerr := s.activities.Recent(ctx, ActivityQuery{
		UserID: userID,
		Limit:  recommendationWindow,
	})
	if rerr != nil {
		s.logger.Warn("activity lookup failed, using default recommendations",
			"user_id", userID,
			"error", rerr,
		)
		return defaultRecommendations()
	}

	// No signal, no personalization.
	if prefs == nil || len(records) == 0 {
		return defaultRecommendations()
	}

	recs := s.weakAreaRecommendations(records)
	recs = append(recs, s.difficultyRecommendations(records)...)
	recs = append(recs, scheduleRecommendations(prefs, records)...)

	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}

// topicGroup aggregates records sharing a (subject, topic) key
type topicGroup struct {
	subject string
	topic   string
	mean    float64
}

// weakAreaRecommendations flags every (subject, topic) group whose mean
// performance falls below the weak threshold, worst first.
func (s *Service) weakAreaRecommendations(records []domain.ActivityRecord) []domain.Recommendation {
	type agg struct {
		subject string
		topic   string
		sum     float64
		count   int
	}
	groups := make(map[string]*agg)
	var order []string
	for _, r := range records {
		key := r.Subject + "\x00" + r.Topic
		g, ok := groups[key]
		if !ok {
			g = &agg{subject: r.Subject, topic: r.Topic}
			groups[key] = g
			order = append(order, key)
		}
		g.sum += r.Performance
		g.count++
	}

	var weak []topicGroup
	for _, key := range order {
		g := groups[key]
		mean := g.sum / float64(g.count)
		if mean < weakAreaThreshold {
			weak = append(weak, topicGroup{subject: g.subject, topic: g.topic, mean: mean})
		}
	}
	sort.SliceStable(weak, func(i, j int) bool {
		return weak[i].mean < weak[j].mean
	})

	recs := make([]domain.Recommendation, 0, len(weak))
	for _, w := range weak {
		recs = append(recs, domain.Recommendation{
			Type:       domain.RecommendationTopic,
			Subject:    w.subject,
			Topic:      w.topic,
			Reason:     fmt.Sprintf("Recent average in %s / %s is %.0f%%; extra practice should help", w.subject, w.topic, w.mean),
			Confidence: 85,
			Priority:   domain.PriorityHigh,
		})
	}
	return recs
}

// difficultyRecommendations re-derives the difficulty policy per subject
// over the records in the recommendation window.
func (s *Service) difficultyRecommendations(records []domain.ActivityRecord) []domain.Recommendation {
	bySubject := make(map[string][]domain.ActivityRecord)
	var order []string
	for _, r := range records {
		if _, ok := bySubject[r.Subject]; !ok {
			order = append(order, r.Subject)
		}
		bySubject[r.Subject] = append(bySubject[r.Subject], r)
	}

	recs := make([]domain.Recommendation, 0, len(order))
	for _, subject := range order {
		group := bySubject[subject]
		avg := meanPerformance(group)
		difficulty := decideDifficulty(avg, performanceTrend(group))
		recs = append(recs, domain.Recommendation{
			Type:                  domain.RecommendationDifficulty,
			Subject:               subject,
			RecommendedDifficulty: difficulty,
			Reason:                fmt.Sprintf("Average performance in %s is %.0f%%; %s difficulty fits best right now", subject, avg, difficulty),
			Confidence:            75,
			Priority:              domain.PriorityMedium,
		})
	}
	return recs
}

// scheduleRecommendations suggests longer sessions when the average
// session falls well short of the user's target.
func scheduleRecommendations(prefs *domain.Preferences, records []domain.ActivityRecord) []domain.Recommendation {
	var totalSeconds int
	for _, r := range records {
		totalSeconds += r.TimeSpent
	}
	avgMinutes := float64(totalSeconds) / float64(len(records)) / 60.0
	target := float64(prefs.TargetSessionMinutes())

	if avgMinutes >= 0.7*target {
		return nil
	}

	return []domain.Recommendation{{
		Type:       domain.RecommendationStudySchedule,
		Subject:    "All",
		Reason:     fmt.Sprintf("Sessions average %.0f minutes against a %.0f minute target; longer sessions improve retention", avgMinutes, target),
		Confidence: 70,
		Priority:   domain.PriorityLow,
	}}
}

// defaultRecommendations is the fixed cold-start list returned when
// there is no signal to personalize on. Confidence stays low on purpose.
func defaultRecommendations() []domain.Recommendation {
	return []domain.Recommendation{
		{
			Type:       domain.RecommendationTopic,
			Subject:    "General",
			Reason:     "Not enough recent activity to personalize; a short practice quiz will calibrate your level",
			Confidence: 50,
			Priority:   domain.PriorityMedium,
		},
		{
			Type:                  domain.RecommendationDifficulty,
			Subject:               "General",
			RecommendedDifficulty: domain.DifficultyMedium,
			Reason:                "Starting at medium difficulty until there is enough history to adapt",
			Confidence:            60,
			Priority:              domain.PriorityLow,
		},
	}
}
