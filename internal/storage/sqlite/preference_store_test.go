package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/brightloop/attune/internal/domain"
)

func TestPreferenceStore(t *testing.T) {
	db := openTestDB(t)
	store := NewPreferenceStore(db)
	ctx := context.Background()

	t.Run("missing user", func(t *testing.T) {
		if _, err := store.Get(ctx, "nobody"); !errors.Is(err, domain.ErrPreferencesNotFound) {
			t.Errorf("Get() error = %v, want ErrPreferencesNotFound", err)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		prefs := domain.NewPreferences("user-1")
		prefs.LearningStyle = "visual"
		prefs.StudyTimePreference = "evening"
		prefs.SessionDuration = 45
		prefs.AddSubject("Math")
		prefs.MarkWeakArea("Fractions")
		prefs.MarkStrongArea("Algebra")

		if err := store.Put(ctx, prefs); err != nil {
			t.Fatalf("Put() error = %v", err)
		}

		got, err := store.Get(ctx, "user-1")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.PreferredDifficulty != domain.DifficultyMedium {
			t.Errorf("PreferredDifficulty = %q, want medium", got.PreferredDifficulty)
		}
		if got.LearningStyle != "visual" || got.StudyTimePreference != "evening" {
			t.Errorf("style/time = %q/%q", got.LearningStyle, got.StudyTimePreference)
		}
		if got.SessionDuration != 45 {
			t.Errorf("SessionDuration = %d, want 45", got.SessionDuration)
		}
		if len(got.Subjects) != 1 || got.Subjects[0] != "Math" {
			t.Errorf("Subjects = %v, want [Math]", got.Subjects)
		}
		if len(got.WeakAreas) != 1 || got.WeakAreas[0] != "Fractions" {
			t.Errorf("WeakAreas = %v, want [Fractions]", got.WeakAreas)
		}
		if len(got.StrongAreas) != 1 || got.StrongAreas[0] != "Algebra" {
			t.Errorf("StrongAreas = %v, want [Algebra]", got.StrongAreas)
		}
	})

	t.Run("put replaces the full object", func(t *testing.T) {
		prefs := domain.NewPreferences("user-2")
		prefs.MarkWeakArea("Physics")
		if err := store.Put(ctx, prefs); err != nil {
			t.Fatalf("Put() error = %v", err)
		}

		prefs.MarkStrongArea("Physics")
		if err := store.Put(ctx, prefs); err != nil {
			t.Fatalf("second Put() error = %v", err)
		}

		got, err := store.Get(ctx, "user-2")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if len(got.WeakAreas) != 0 {
			t.Errorf("WeakAreas = %v, want empty after promotion", got.WeakAreas)
		}
		if len(got.StrongAreas) != 1 || got.StrongAreas[0] != "Physics" {
			t.Errorf("StrongAreas = %v, want [Physics]", got.StrongAreas)
		}
	})

	t.Run("empty sets stay empty", func(t *testing.T) {
		prefs := domain.NewPreferences("user-3")
		if err := store.Put(ctx, prefs); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		got, err := store.Get(ctx, "user-3")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if len(got.WeakAreas) != 0 || len(got.StrongAreas) != 0 || len(got.Subjects) != 0 {
			t.Errorf("sets not empty: %+v", got)
		}
	})
}
