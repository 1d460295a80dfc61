package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/brightloop/attune/internal/analytics"
	"github.com/brightloop/attune/internal/domain"
)

func TestStore_Activity(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	for i, perf := range []float64{50, 60, 70} {
		err := store.Append(ctx, &domain.ActivityRecord{
			ID:          uuid.New(),
			UserID:      "user-1",
			Subject:     "Math",
			Topic:       "Fractions",
			Performance: perf,
			Attempts:    i + 1,
		})
		if err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	records, err := store.Recent(ctx, analytics.ActivityQuery{UserID: "user-1", Limit: 2})
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[0].Performance != 70 {
		t.Errorf("records[0].Performance = %f, want newest first", records[0].Performance)
	}
}

func TestStore_Preferences(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	if _, err := store.Get(ctx, "user-1"); !errors.Is(err, domain.ErrPreferencesNotFound) {
		t.Errorf("Get() error = %v, want ErrPreferencesNotFound", err)
	}

	prefs := domain.NewPreferences("user-1")
	prefs.MarkWeakArea("Fractions")
	if err := store.Put(ctx, prefs); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := store.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	// Mutating the returned copy must not leak into the store.
	got.MarkWeakArea("Decimals")

	again, err := store.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(again.WeakAreas) != 1 {
		t.Errorf("WeakAreas = %v, want the stored copy untouched", again.WeakAreas)
	}
}
