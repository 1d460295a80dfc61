package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"

	"github.com/brightloop/attune/internal/analytics"
	"github.com/brightloop/attune/internal/domain"
)

// PreferencesHandler handles the preferences onboarding endpoints
type PreferencesHandler struct {
	service analytics.Recommender
}

// NewPreferencesHandler creates a new preferences handler
func NewPreferencesHandler(service analytics.Recommender) *PreferencesHandler {
	return &PreferencesHandler{service: service}
}

// Get handles GET /api/v1/preferences
func (h *PreferencesHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		BadRequest(w, r, "user_id is required")
		return
	}

	prefs, err := h.service.Preferences(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrPreferencesNotFound) {
			NotFound(w, r, "preferences")
			return
		}
		InternalError(w, r, "failed to load preferences", err)
		return
	}

	WriteJSON(w, http.StatusOK, prefs)
}

// PutPreferencesRequest is the request body for saving preferences
type PutPreferencesRequest struct {
	UserID              string   `json:"user_id"`
	PreferredDifficulty string   `json:"preferred_difficulty"`
	LearningStyle       string   `json:"learning_style"`
	StudyTimePreference string   `json:"study_time_preference"`
	SessionDuration     int      `json:"session_duration"`
	Subjects            []string `json:"subjects"`
	WeakAreas           []string `json:"weak_areas"`
	StrongAreas         []string `json:"strong_areas"`
}

// Put handles PUT /api/v1/preferences. Last write wins; the full object
// replaces any stored one.
func (h *PreferencesHandler) Put(w http.ResponseWriter, r *http.Request) {
	var req PutPreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, r, "invalid request body")
		return
	}

	if req.UserID == "" {
		BadRequest(w, r, "user_id is required")
		return
	}

	// Weak and strong areas are mutually exclusive
	for _, topic := range req.WeakAreas {
		if slices.Contains(req.StrongAreas, topic) {
			WriteError(w, r, http.StatusBadRequest,
				ErrBadRequestWith("topic cannot be both weak and strong").WithDetails(topic))
			return
		}
	}

	difficulty := domain.DifficultyMedium
	if req.PreferredDifficulty != "" {
		parsed, err := domain.ParseDifficulty(req.PreferredDifficulty)
		if err != nil {
			BadRequest(w, r, "invalid preferred_difficulty")
			return
		}
		difficulty = parsed
	}

	prefs := domain.NewPreferences(req.UserID)
	prefs.PreferredDifficulty = difficulty
	prefs.LearningStyle = req.LearningStyle
	prefs.StudyTimePreference = req.StudyTimePreference
	if req.SessionDuration > 0 {
		prefs.SessionDuration = req.SessionDuration
	}
	prefs.Subjects = req.Subjects
	prefs.WeakAreas = req.WeakAreas
	prefs.StrongAreas = req.StrongAreas

	if err := h.service.SavePreferences(r.Context(), prefs); err != nil {
		InternalError(w, r, "failed to save preferences", err)
		return
	}

	WriteJSON(w, http.StatusOK, prefs)
}
