package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/brightloop/attune/internal/analytics"
	"github.com/brightloop/attune/internal/domain"
)

// Store provides thread-safe in-memory activity and preference storage.
// It backs ephemeral runs and tests; nothing survives a restart.
type Store struct {
	mu      sync.RWMutex
	records []domain.ActivityRecord // most-recent-first
	prefs   map[string]domain.Preferences
}

// Ensure Store implements the analytics storage interfaces.
var (
	_ analytics.ActivityStore   = (*Store)(nil)
	_ analytics.PreferenceStore = (*Store)(nil)
)

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{prefs: make(map[string]domain.Preferences)}
}

// Append stores a copy of the record at the front of the history.
func (s *Store) Append(ctx context.Context, record *domain.ActivityRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = slices.Insert(s.records, 0, *record)
	return nil
}

// Recent returns records matching the query, most-recent-first.
func (s *Store) Recent(ctx context.Context, q analytics.ActivityQuery) ([]domain.ActivityRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.ActivityRecord
	for _, r := range s.records {
		if r.UserID != q.UserID {
			continue
		}
		if q.Subject != "" && r.Subject != q.Subject {
			continue
		}
		if q.Topic != "" && r.Topic != q.Topic {
			continue
		}
		out = append(out, r)
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

// Get retrieves preferences for a user.
func (s *Store) Get(ctx context.Context, userID string) (*domain.Preferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.prefs[userID]
	if !ok {
		return nil, domain.ErrPreferencesNotFound
	}
	cp := p
	cp.Subjects = slices.Clone(p.Subjects)
	cp.WeakAreas = slices.Clone(p.WeakAreas)
	cp.StrongAreas = slices.Clone(p.StrongAreas)
	return &cp, nil
}

// Put persists the full preferences object.
func (s *Store) Put(ctx context.Context, prefs *domain.Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *prefs
	cp.Subjects = slices.Clone(prefs.Subjects)
	cp.WeakAreas = slices.Clone(prefs.WeakAreas)
	cp.StrongAreas = slices.Clone(prefs.StrongAreas)
	s.prefs[prefs.UserID] = cp
	return nil
}
