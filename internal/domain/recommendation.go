package domain

// RecommendationType classifies a recommendation
type RecommendationType string

const (
	RecommendationDifficulty    RecommendationType = "difficulty_adjustment"
	RecommendationTopic         RecommendationType = "topic_suggestion"
	RecommendationStudySchedule RecommendationType = "study_schedule"
	RecommendationContentType   RecommendationType = "content_type"
)

// Priority indicates how urgent a recommendation is
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Recommendation is a computed suggestion for a user. Recommendations are
// ephemeral: derived on demand from recent history and never persisted.
type Recommendation struct {
	Type                  RecommendationType `json:"type"`
	Subject               string             `json:"subject"`
	Topic                 string             `json:"topic,omitempty"`
	RecommendedDifficulty Difficulty         `json:"recommended_difficulty,omitempty"`
	Reason                string             `json:"reason"`
	Confidence            int                `json:"confidence"` // 0-100
	Priority              Priority           `json:"priority"`
}
