package lead

import (
	"context"
	"time"

	"propworth/internal/platform/config"
)

// ListFilter narrows ListLeads results. Zero values mean "no constraint".
type ListFilter struct {
	Status          Status
	AssignedAgentID string
	CreatedAfter    time.Time
	CreatedBefore   time.Time
}

// Store persists leads. Stores are interface-driven so the service stays
// testable and in-memory and postgres implementations are interchangeable.
//
// CreateLead must be atomic: either the full record is visible to readers or
// none of it. A CreateLead failure is the one fatal error in the pipeline —
// a lost lead is a direct business loss — so implementations return hard
// errors rather than degrading.
//
// UpdateLeadStatus intentionally does not enforce forward-only transitions;
// any known status is accepted. It reports failure as false, never an error,
// because callers treat "lead missing" and "write failed" identically.
type Store interface {
	CreateLead(ctx context.Context, sub ValidatedSubmission, prov Provenance, assignedAgentID string) (Lead, error)
	GetLead(ctx context.Context, id string) (Lead, error)
	ListLeads(ctx context.Context, filter ListFilter) ([]Lead, error)
	UpdateLeadStatus(ctx context.Context, id string, status Status) bool
}

// buildLead assembles the canonical record shared by all store
// implementations: fresh identity, consent stamped at call time, status new.
func buildLead(id string, now time.Time, sub ValidatedSubmission, prov Provenance, assignedAgentID string, consent config.ConsentConfig) Lead {
	return Lead{
		ID:               id,
		Name:             sub.Name,
		Phone:            sub.Phone,
		Email:            sub.Email,
		BuyerType:        sub.BuyerType,
		BudgetRange:      sub.BudgetRange,
		PreferredSuburbs: sub.PreferredSuburbs,
		Timeline:         sub.Timeline,
		PreApproved:      sub.PreApproved,
		Consent: ConsentMeta{
			Timestamp:   now,
			TextVersion: consent.Version,
			Purpose:     consent.Purpose,
		},
		Provenance:      prov,
		Status:          StatusNew,
		AssignedAgentID: assignedAgentID,
		CreatedAt:       now,
	}
}

func (f ListFilter) matches(l Lead) bool {
	if f.Status != "" && l.Status != f.Status {
		return false
	}
	if f.AssignedAgentID != "" && l.AssignedAgentID != f.AssignedAgentID {
		return false
	}
	if !f.CreatedAfter.IsZero() && l.CreatedAt.Before(f.CreatedAfter) {
		return false
	}
	if !f.CreatedBefore.IsZero() && l.CreatedAt.After(f.CreatedBefore) {
		return false
	}
	return true
}
