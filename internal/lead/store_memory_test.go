package lead

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"propworth/internal/platform/config"
	"propworth/pkg/platform/sentinel"
)

var testConsent = config.ConsentConfig{
	Version: "v1.2",
	Purpose: "Sharing your details with a matched agent.",
}

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
	clock time.Time
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemoryStore(testConsent)
	s.clock = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	s.store.now = func() time.Time { return s.clock }
	s.ctx = context.Background()
}

func (s *InMemoryStoreSuite) validated() ValidatedSubmission {
	return ValidatedSubmission{
		Name:             "Jane Doe",
		Phone:            "0821234567",
		BuyerType:        BuyerFirstTime,
		BudgetRange:      Budget15To3M,
		PreferredSuburbs: []string{"bryanston"},
		Timeline:         Timeline3To6,
		PreApproved:      PreApprovedNo,
		ConsentGiven:     true,
	}
}

func (s *InMemoryStoreSuite) TestCreateLeadStampsConsentAndIdentity() {
	l, err := s.store.CreateLead(s.ctx, s.validated(), Provenance{SourceURL: "https://propworth.example/bryanston"}, "a1")
	s.Require().NoError(err)

	s.NotEmpty(l.ID)
	s.Equal(StatusNew, l.Status)
	s.Equal("a1", l.AssignedAgentID)
	s.Equal(s.clock, l.CreatedAt)
	s.Equal(s.clock, l.Consent.Timestamp)
	s.Equal(testConsent.Version, l.Consent.TextVersion)
	s.Equal(testConsent.Purpose, l.Consent.Purpose)

	stored, err := s.store.GetLead(s.ctx, l.ID)
	s.Require().NoError(err)
	s.Equal(l, stored)
}

func (s *InMemoryStoreSuite) TestCreateLeadIdentitiesAreUnique() {
	a, err := s.store.CreateLead(s.ctx, s.validated(), Provenance{}, "")
	s.Require().NoError(err)
	b, err := s.store.CreateLead(s.ctx, s.validated(), Provenance{}, "")
	s.Require().NoError(err)
	s.NotEqual(a.ID, b.ID)
}

func (s *InMemoryStoreSuite) TestGetLeadNotFound() {
	_, err := s.store.GetLead(s.ctx, "nope")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestListLeadsNewestFirstWithFilters() {
	first, err := s.store.CreateLead(s.ctx, s.validated(), Provenance{}, "a1")
	s.Require().NoError(err)

	s.clock = s.clock.Add(time.Minute)
	second, err := s.store.CreateLead(s.ctx, s.validated(), Provenance{}, "a2")
	s.Require().NoError(err)

	all, err := s.store.ListLeads(s.ctx, ListFilter{})
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal(second.ID, all[0].ID)
	s.Equal(first.ID, all[1].ID)

	s.Require().True(s.store.UpdateLeadStatus(s.ctx, first.ID, StatusContacted))

	contacted, err := s.store.ListLeads(s.ctx, ListFilter{Status: StatusContacted})
	s.Require().NoError(err)
	s.Require().Len(contacted, 1)
	s.Equal(first.ID, contacted[0].ID)

	byAgent, err := s.store.ListLeads(s.ctx, ListFilter{AssignedAgentID: "a2"})
	s.Require().NoError(err)
	s.Require().Len(byAgent, 1)
	s.Equal(second.ID, byAgent[0].ID)

	recent, err := s.store.ListLeads(s.ctx, ListFilter{CreatedAfter: s.clock.Add(-time.Second)})
	s.Require().NoError(err)
	s.Require().Len(recent, 1)
	s.Equal(second.ID, recent[0].ID)
}

func (s *InMemoryStoreSuite) TestUpdateLeadStatus() {
	l, err := s.store.CreateLead(s.ctx, s.validated(), Provenance{}, "")
	s.Require().NoError(err)

	s.True(s.store.UpdateLeadStatus(s.ctx, l.ID, StatusContacted))
	s.True(s.store.UpdateLeadStatus(s.ctx, l.ID, StatusClosed))

	// Transitions are deliberately unenforced: moving backwards succeeds.
	s.True(s.store.UpdateLeadStatus(s.ctx, l.ID, StatusNew))

	s.False(s.store.UpdateLeadStatus(s.ctx, "missing", StatusContacted))
	s.False(s.store.UpdateLeadStatus(s.ctx, l.ID, Status("archived")))
}
