package domain

import (
	"time"

	"github.com/google/uuid"
)

// Difficulty represents a question difficulty tier
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is a known difficulty tier
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// ParseDifficulty converts a string to a Difficulty
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(s)
	if !d.Valid() {
		return "", ErrInvalidDifficulty
	}
	return d, nil
}

// ActivityRecord is one scored attempt at a topic, the atomic unit of
// analytics input. Records are append-only: once stored they are only
// retrieved and aggregated, never mutated.
type ActivityRecord struct {
	ID               uuid.UUID  `json:"id"`
	UserID           string     `json:"user_id"`
	Subject          string     `json:"subject"`
	Topic            string     `json:"topic"`
	Difficulty       Difficulty `json:"difficulty"`
	Performance      float64    `json:"performance"`        // 0-100
	TimeSpent        int        `json:"time_spent"`         // seconds
	Attempts         int        `json:"attempts"`
	CorrectAnswers   int        `json:"correct_answers"`
	TotalQuestions   int        `json:"total_questions"`
	LearningVelocity float64    `json:"learning_velocity"`  // questions per minute
	RetentionRate    float64    `json:"retention_rate"`     // 0-100
	CreatedAt        time.Time  `json:"created_at"`
}

// Validate checks the record's required fields and value ranges.
// Out-of-range values are rejected rather than clamped.
func (r *ActivityRecord) Validate() error {
	if r.UserID == "" {
		return ErrMissingUserID
	}
	if r.Subject == "" {
		return ErrMissingSubject
	}
	if r.Topic == "" {
		return ErrMissingTopic
	}
	if !r.Difficulty.Valid() {
		return ErrInvalidDifficulty
	}
	if r.Performance < 0 || r.Performance > 100 {
		return ErrPerformanceOutOfRange
	}
	if r.TimeSpent < 0 {
		return ErrNegativeTimeSpent
	}
	if r.Attempts < 1 {
		return ErrInvalidAttempts
	}
	if r.CorrectAnswers < 0 || r.TotalQuestions < 0 {
		return ErrNegativeQuestionCount
	}
	if r.CorrectAnswers > r.TotalQuestions {
		return ErrAnswersExceedQuestions
	}
	return nil
}

// Velocity returns the record's throughput in questions per minute.
func (r *ActivityRecord) Velocity() float64 {
	return LearningVelocity(r.TimeSpent, r.TotalQuestions)
}

// LearningVelocity computes questions answered per minute. A zero time
// spent yields zero to avoid division by zero.
func LearningVelocity(timeSpentSeconds, questionsAnswered int) float64 {
	if timeSpentSeconds == 0 {
		return 0
	}
	return float64(questionsAnswered) / (float64(timeSpentSeconds) / 60.0)
}
