package domain

import (
	"slices"
	"time"
)

// DefaultSessionMinutes is the assumed target session length when a user
// has not set one.
const DefaultSessionMinutes = 30

// Preferences is the mutable per-user learning projection. It is created
// only through explicit onboarding; analytics code treats its absence as
// a new-user default and never creates it implicitly.
type Preferences struct {
	UserID              string     `json:"user_id"`
	PreferredDifficulty Difficulty `json:"preferred_difficulty"`
	LearningStyle       string     `json:"learning_style"`        // e.g. visual, auditory, kinesthetic
	StudyTimePreference string     `json:"study_time_preference"` // e.g. morning, evening
	SessionDuration     int        `json:"session_duration"`      // minutes
	Subjects            []string   `json:"subjects"`
	WeakAreas           []string   `json:"weak_areas"`
	StrongAreas         []string   `json:"strong_areas"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// NewPreferences creates preferences with defaults for a user
func NewPreferences(userID string) *Preferences {
	return &Preferences{
		UserID:              userID,
		PreferredDifficulty: DifficultyMedium,
		SessionDuration:     DefaultSessionMinutes,
		UpdatedAt:           time.Now(),
	}
}

// TargetSessionMinutes returns the preferred session length, falling back
// to the default when unset.
func (p *Preferences) TargetSessionMinutes() int {
	if p.SessionDuration <= 0 {
		return DefaultSessionMinutes
	}
	return p.SessionDuration
}

// MarkWeakArea adds a topic to the weak areas and removes it from the
// strong areas if present. Set semantics: adding a topic already present
// is a no-op. Returns true if either set changed.
func (p *Preferences) MarkWeakArea(topic string) bool {
	changed := false
	if !slices.Contains(p.WeakAreas, topic) {
		p.WeakAreas = append(p.WeakAreas, topic)
		changed = true
	}
	if i := slices.Index(p.StrongAreas, topic); i >= 0 {
		p.StrongAreas = slices.Delete(p.StrongAreas, i, i+1)
		changed = true
	}
	if changed {
		p.UpdatedAt = time.Now()
	}
	return changed
}

// MarkStrongArea adds a topic to the strong areas and removes it from the
// weak areas if present. Weak and strong areas are mutually exclusive.
// Returns true if either set changed.
func (p *Preferences) MarkStrongArea(topic string) bool {
	changed := false
	if !slices.Contains(p.StrongAreas, topic) {
		p.StrongAreas = append(p.StrongAreas, topic)
		changed = true
	}
	if i := slices.Index(p.WeakAreas, topic); i >= 0 {
		p.WeakAreas = slices.Delete(p.WeakAreas, i, i+1)
		changed = true
	}
	if changed {
		p.UpdatedAt = time.Now()
	}
	return changed
}

// AddSubject records a subject the user studies. Set semantics.
func (p *Preferences) AddSubject(subject string) bool {
	if slices.Contains(p.Subjects, subject) {
		return false
	}
	p.Subjects = append(p.Subjects, subject)
	p.UpdatedAt = time.Now()
	return true
}
