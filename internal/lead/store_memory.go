package lead

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"propworth/internal/platform/config"
	"propworth/pkg/platform/sentinel"
)

// InMemoryStore keeps leads in a mutex-guarded map. It favors clarity over
// performance and backs development and tests; production uses PostgresStore.
type InMemoryStore struct {
	mu      sync.RWMutex
	leads   map[string]Lead
	consent config.ConsentConfig

	// now is swappable in tests to pin consent timestamps.
	now func() time.Time
}

func NewInMemoryStore(consent config.ConsentConfig) *InMemoryStore {
	return &InMemoryStore{
		leads:   make(map[string]Lead),
		consent: consent,
		now:     time.Now,
	}
}

func (s *InMemoryStore) CreateLead(_ context.Context, sub ValidatedSubmission, prov Provenance, assignedAgentID string) (Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := buildLead(uuid.NewString(), s.now(), sub, prov, assignedAgentID, s.consent)
	s.leads[l.ID] = l
	return l, nil
}

func (s *InMemoryStore) GetLead(_ context.Context, id string) (Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if l, ok := s.leads[id]; ok {
		return l, nil
	}
	return Lead{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) ListLeads(_ context.Context, filter ListFilter) ([]Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Lead, 0, len(s.leads))
	for _, l := range s.leads {
		if filter.matches(l) {
			out = append(out, l)
		}
	}
	// Newest first; ID breaks ties so ordering is deterministic.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *InMemoryStore) UpdateLeadStatus(_ context.Context, id string, status Status) bool {
	if !status.IsValid() {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.leads[id]
	if !ok {
		return false
	}
	l.Status = status
	s.leads[id] = l
	return true
}
