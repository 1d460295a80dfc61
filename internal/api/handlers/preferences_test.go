package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/brightloop/attune/internal/api/handlers"
	"github.com/brightloop/attune/internal/domain"
)

func TestPreferencesGet(t *testing.T) {
	t.Run("missing user_id returns 400", func(t *testing.T) {
		h := handlers.NewPreferencesHandler(newFakeRecommender())

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/v1/preferences", nil)

		h.Get(w, r)

		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d; want 400", w.Code)
		}
	})

	t.Run("unknown user returns 404", func(t *testing.T) {
		h := handlers.NewPreferencesHandler(newFakeRecommender())

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/v1/preferences?user_id=ghost", nil)

		h.Get(w, r)

		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d; want 404", w.Code)
		}
	})

	t.Run("store failure returns 500", func(t *testing.T) {
		svc := newFakeRecommender()
		svc.prefsErr = errors.New("connection refused")
		h := handlers.NewPreferencesHandler(svc)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/v1/preferences?user_id=user-1", nil)

		h.Get(w, r)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("status = %d; want 500", w.Code)
		}
	})

	t.Run("returns stored preferences", func(t *testing.T) {
		svc := newFakeRecommender()
		prefs := domain.NewPreferences("user-1")
		prefs.Subjects = []string{"Math"}
		svc.prefs["user-1"] = prefs
		h := handlers.NewPreferencesHandler(svc)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/v1/preferences?user_id=user-1", nil)

		h.Get(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d; want 200", w.Code)
		}

		var got domain.Preferences
		if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if got.UserID != "user-1" {
			t.Errorf("UserID = %q; want user-1", got.UserID)
		}
		if len(got.Subjects) != 1 || got.Subjects[0] != "Math" {
			t.Errorf("Subjects = %v; want [Math]", got.Subjects)
		}
	})
}

func TestPreferencesPut(t *testing.T) {
	t.Run("saves full object", func(t *testing.T) {
		svc := newFakeRecommender()
		h := handlers.NewPreferencesHandler(svc)

		body := `{
			"user_id": "user-1",
			"preferred_difficulty": "hard",
			"learning_style": "visual",
			"session_duration": 45,
			"subjects": ["Math", "Physics"],
			"weak_areas": ["Fractions"],
			"strong_areas": ["Algebra"]
		}`
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPut, "/api/v1/preferences", strings.NewReader(body))

		h.Put(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d; want 200, body %s", w.Code, w.Body.String())
		}
		if len(svc.savedPrefs) != 1 {
			t.Fatalf("saved count = %d; want 1", len(svc.savedPrefs))
		}
		saved := svc.savedPrefs[0]
		if saved.PreferredDifficulty != domain.DifficultyHard {
			t.Errorf("PreferredDifficulty = %q; want hard", saved.PreferredDifficulty)
		}
		if saved.SessionDuration != 45 {
			t.Errorf("SessionDuration = %d; want 45", saved.SessionDuration)
		}
		if len(saved.Subjects) != 2 {
			t.Errorf("Subjects = %v; want two entries", saved.Subjects)
		}
	})

	t.Run("missing user_id returns 400", func(t *testing.T) {
		h := handlers.NewPreferencesHandler(newFakeRecommender())

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPut, "/api/v1/preferences", strings.NewReader(`{"learning_style":"visual"}`))

		h.Put(w, r)

		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d; want 400", w.Code)
		}
	})

	t.Run("invalid difficulty returns 400", func(t *testing.T) {
		h := handlers.NewPreferencesHandler(newFakeRecommender())

		body := `{"user_id": "user-1", "preferred_difficulty": "impossible"}`
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPut, "/api/v1/preferences", strings.NewReader(body))

		h.Put(w, r)

		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d; want 400", w.Code)
		}
	})

	t.Run("overlapping weak and strong areas returns 400", func(t *testing.T) {
		svc := newFakeRecommender()
		h := handlers.NewPreferencesHandler(svc)

		body := `{"user_id": "user-1", "weak_areas": ["Fractions"], "strong_areas": ["Fractions"]}`
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPut, "/api/v1/preferences", strings.NewReader(body))

		h.Put(w, r)

		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d; want 400", w.Code)
		}
		if len(svc.savedPrefs) != 0 {
			t.Error("overlapping sets should not be saved")
		}
	})

	t.Run("defaults applied for omitted fields", func(t *testing.T) {
		svc := newFakeRecommender()
		h := handlers.NewPreferencesHandler(svc)

		body := `{"user_id": "user-1"}`
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPut, "/api/v1/preferences", strings.NewReader(body))

		h.Put(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d; want 200", w.Code)
		}
		saved := svc.savedPrefs[0]
		if saved.PreferredDifficulty != domain.DifficultyMedium {
			t.Errorf("PreferredDifficulty = %q; want medium", saved.PreferredDifficulty)
		}
		if saved.SessionDuration != domain.DefaultSessionMinutes {
			t.Errorf("SessionDuration = %d; want %d", saved.SessionDuration, domain.DefaultSessionMinutes)
		}
	})
}
