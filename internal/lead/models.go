// Package lead implements the lead intake pipeline: validation, consent
// stamping, agent assignment, persistence and agent notification.
package lead

import (
	"time"

	"github.com/mssola/useragent"
)

// BuyerType categorizes what stage of the property market the lead is in.
type BuyerType string

const (
	BuyerFirstTime BuyerType = "first-time"
	BuyerUpgrading BuyerType = "upgrading"
	BuyerInvesting BuyerType = "investing"
)

func (b BuyerType) IsValid() bool {
	switch b {
	case BuyerFirstTime, BuyerUpgrading, BuyerInvesting:
		return true
	}
	return false
}

// BudgetRange is the lead's declared purchase budget band.
type BudgetRange string

const (
	BudgetUnder1M BudgetRange = "under-1m"
	Budget1To15M  BudgetRange = "1-1.5m"
	Budget15To3M  BudgetRange = "1.5-3m"
	Budget3To5M   BudgetRange = "3-5m"
	BudgetOver5M  BudgetRange = "over-5m"
)

func (b BudgetRange) IsValid() bool {
	switch b {
	case BudgetUnder1M, Budget1To15M, Budget15To3M, Budget3To5M, BudgetOver5M:
		return true
	}
	return false
}

// Timeline is the lead's declared purchase horizon in months.
type Timeline string

const (
	TimelineASAP  Timeline = "asap"
	Timeline1To3  Timeline = "1-3"
	Timeline3To6  Timeline = "3-6"
	Timeline6Plus Timeline = "6-plus"
)

func (t Timeline) IsValid() bool {
	switch t {
	case TimelineASAP, Timeline1To3, Timeline3To6, Timeline6Plus:
		return true
	}
	return false
}

// PreApproved indicates whether the lead already holds bond pre-approval.
type PreApproved string

const (
	PreApprovedYes PreApproved = "yes"
	PreApprovedNo  PreApproved = "no"
)

func (p PreApproved) IsValid() bool {
	return p == PreApprovedYes || p == PreApprovedNo
}

// Status is the lead lifecycle state. The intended flow is
// new → contacted → closed, but transitions are not enforced at the store
// layer; callers may move a lead to any known status.
type Status string

const (
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusClosed    Status = "closed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusClosed:
		return true
	}
	return false
}

// Submission is the raw inbound payload. Website is the honeypot: a hidden
// form field real users never fill in.
type Submission struct {
	Name             string   `json:"name"`
	Phone            string   `json:"phone"`
	Email            string   `json:"email,omitempty"`
	BuyerType        string   `json:"buyerType"`
	BudgetRange      string   `json:"budgetRange"`
	PreferredSuburbs []string `json:"preferredSuburbs"`
	Timeline         string   `json:"timeline"`
	PreApproved      string   `json:"preApproved"`
	ConsentGiven     bool     `json:"consentGiven"`
	Website          string   `json:"website"`
	SourceURL        string   `json:"sourceUrl,omitempty"`
}

// ValidatedSubmission is a Submission that passed structural validation, with
// enums typed and suburbs normalized (lowercased, trimmed, deduplicated).
type ValidatedSubmission struct {
	Name             string
	Phone            string
	Email            string
	BuyerType        BuyerType
	BudgetRange      BudgetRange
	PreferredSuburbs []string
	Timeline         Timeline
	PreApproved      PreApproved
	ConsentGiven     bool
}

// ConsentMeta is stamped once at lead creation and never mutated. Version and
// Purpose come from static configuration; a lead keeps the values in force at
// its creation time even after the disclosed language changes.
type ConsentMeta struct {
	Timestamp   time.Time `json:"consentTimestamp"`
	TextVersion string    `json:"consentTextVersion"`
	Purpose     string    `json:"consentPurpose"`
}

// Provenance records where a submission came from.
type Provenance struct {
	SourceURL string `json:"sourceUrl,omitempty"`
	UserAgent string `json:"userAgent,omitempty"`
	Browser   string `json:"browser,omitempty"`
	OS        string `json:"os,omitempty"`
	ClientIP  string `json:"clientIp,omitempty"`
}

// NewProvenance normalizes the raw user agent into browser and OS fields so
// lead reports don't have to parse UA strings downstream.
func NewProvenance(sourceURL, rawUserAgent, clientIP string) Provenance {
	p := Provenance{
		SourceURL: sourceURL,
		UserAgent: rawUserAgent,
		ClientIP:  clientIP,
	}
	if rawUserAgent != "" {
		ua := useragent.New(rawUserAgent)
		name, version := ua.Browser()
		if name != "" {
			p.Browser = name
			if version != "" {
				p.Browser = name + " " + version
			}
		}
		p.OS = ua.OS()
	}
	return p
}

// Lead is the persisted record. Identity is generated once at creation and
// never reused; only Status changes after creation.
type Lead struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Phone            string      `json:"phone"`
	Email            string      `json:"email,omitempty"`
	BuyerType        BuyerType   `json:"buyerType"`
	BudgetRange      BudgetRange `json:"budgetRange"`
	PreferredSuburbs []string    `json:"preferredSuburbs"`
	Timeline         Timeline    `json:"timeline"`
	PreApproved      PreApproved `json:"preApproved"`
	Consent          ConsentMeta `json:"consent"`
	Provenance       Provenance  `json:"provenance"`
	Status           Status      `json:"status"`
	AssignedAgentID  string      `json:"assignedAgentId,omitempty"`
	CreatedAt        time.Time   `json:"createdAt"`
}
