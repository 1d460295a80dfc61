package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/brightloop/attune/internal/analytics"
	"github.com/brightloop/attune/internal/domain"
)

// AnalyticsHandler handles activity tracking and recommendation endpoints
type AnalyticsHandler struct {
	service analytics.Recommender
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(service analytics.Recommender) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// TrackActivityRequest is the request body for tracking an activity
type TrackActivityRequest struct {
	UserID         string  `json:"user_id"`
	Subject        string  `json:"subject"`
	Topic          string  `json:"topic"`
	Difficulty     string  `json:"difficulty"`
	Performance    float64 `json:"performance"`
	TimeSpent      int     `json:"time_spent"`
	Attempts       int     `json:"attempts"`
	CorrectAnswers int     `json:"correct_answers"`
	TotalQuestions int     `json:"total_questions"`
}

// TrackActivityResponse pairs the stored record with fresh recommendations
type TrackActivityResponse struct {
	Analytics       *domain.ActivityRecord  `json:"analytics"`
	Recommendations []domain.Recommendation `json:"recommendations"`
}

// TrackActivity handles POST /api/v1/recommendations
func (h *AnalyticsHandler) TrackActivity(w http.ResponseWriter, r *http.Request) {
	var req TrackActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, r, "invalid request body")
		return
	}

	record := &domain.ActivityRecord{
		UserID:         req.UserID,
		Subject:        req.Subject,
		Topic:          req.Topic,
		Difficulty:     domain.Difficulty(req.Difficulty),
		Performance:    req.Performance,
		TimeSpent:      req.TimeSpent,
		Attempts:       req.Attempts,
		CorrectAnswers: req.CorrectAnswers,
		TotalQuestions: req.TotalQuestions,
	}

	stored, err := h.service.TrackActivity(r.Context(), record)
	if err != nil {
		if domain.IsValidationError(err) {
			ValidationFailed(w, r, err)
			return
		}
		InternalError(w, r, "failed to track activity", err)
		return
	}

	WriteJSON(w, http.StatusCreated, TrackActivityResponse{
		Analytics:       stored,
		Recommendations: h.service.Recommendations(r.Context(), stored.UserID),
	})
}

// GetRecommendations handles GET /api/v1/recommendations
func (h *AnalyticsHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		BadRequest(w, r, "user_id is required")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"recommendations": h.service.Recommendations(r.Context(), userID),
	})
}

// GetDifficulty handles GET /api/v1/difficulty
func (h *AnalyticsHandler) GetDifficulty(w http.ResponseWriter, r *http.Request) {
	userID, subject, topic, ok := topicQuery(w, r)
	if !ok {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"recommended_difficulty": h.service.RecommendDifficulty(r.Context(), userID, subject, topic),
	})
}

// GetRetention handles GET /api/v1/retention
func (h *AnalyticsHandler) GetRetention(w http.ResponseWriter, r *http.Request) {
	userID, subject, topic, ok := topicQuery(w, r)
	if !ok {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"retention_rate": h.service.RetentionRate(r.Context(), userID, subject, topic),
	})
}

// topicQuery extracts the user/subject/topic triple common to the
// read-only analytics endpoints.
func topicQuery(w http.ResponseWriter, r *http.Request) (userID, subject, topic string, ok bool) {
	q := r.URL.Query()
	userID = q.Get("user_id")
	subject = q.Get("subject")
	topic = q.Get("topic")

	if userID == "" || subject == "" || topic == "" {
		BadRequest(w, r, "user_id, subject and topic are required")
		return "", "", "", false
	}
	return userID, subject, topic, true
}
