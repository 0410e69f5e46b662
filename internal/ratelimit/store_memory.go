package ratelimit

import (
	"context"
	"sync"
	"time"
)

// InMemoryStore implements Store with a mutex-guarded map of window records.
// State is process-local with no cross-instance coordination; acceptable for
// a single-instance deployment.
type InMemoryStore struct {
	mu      sync.Mutex
	records map[string]*windowRecord

	// now is swappable in tests to step through window boundaries.
	now func() time.Time
}

type windowRecord struct {
	count   int
	resetAt time.Time
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		records: make(map[string]*windowRecord),
		now:     time.Now,
	}
}

func (s *InMemoryStore) Incr(_ context.Context, key string, window time.Duration) (int, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	rec := s.records[key]
	if rec == nil || !now.Before(rec.resetAt) {
		rec = &windowRecord{resetAt: now.Add(window)}
		s.records[key] = rec
	}
	rec.count++
	return rec.count, rec.resetAt, nil
}
