package lead

import (
	"regexp"
	"strings"

	pstrings "propworth/pkg/platform/strings"
)

// FieldErrors maps field name to every message recorded against it. All
// failing fields are reported, not just the first encountered.
type FieldErrors map[string][]string

func (fe FieldErrors) add(field, message string) {
	fe[field] = append(fe[field], message)
}

var (
	// South African numbers: local 0XXXXXXXXX or international +27XXXXXXXXX.
	phonePattern = regexp.MustCompile(`^(\+27|0)[1-9][0-9]{8}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

const maxNameLength = 200

// Validator performs structural validation of submissions. The honeypot and
// consent checks are deliberately separate operations: the honeypot outcome
// must stay invisible to the caller, and missing consent is a legal
// precondition reported distinctly from malformed fields.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// HoneypotTripped reports whether the hidden anti-automation field was
// populated, which only automated submitters do.
func (v *Validator) HoneypotTripped(sub Submission) bool {
	return strings.TrimSpace(sub.Website) != ""
}

// Validate checks every field and returns either a typed, normalized
// submission or the complete map of field failures.
func (v *Validator) Validate(sub Submission) (ValidatedSubmission, FieldErrors) {
	errs := FieldErrors{}

	name := strings.TrimSpace(sub.Name)
	if name == "" {
		errs.add("name", "name is required")
	} else if len(name) > maxNameLength {
		errs.add("name", "name is too long")
	}

	phone := strings.ReplaceAll(strings.TrimSpace(sub.Phone), " ", "")
	if phone == "" {
		errs.add("phone", "phone is required")
	} else if !phonePattern.MatchString(phone) {
		errs.add("phone", "phone must be a valid South African number")
	}

	email := strings.TrimSpace(sub.Email)
	if email != "" && !emailPattern.MatchString(email) {
		errs.add("email", "email address is not valid")
	}

	buyerType := BuyerType(sub.BuyerType)
	if sub.BuyerType == "" {
		errs.add("buyerType", "buyerType is required")
	} else if !buyerType.IsValid() {
		errs.add("buyerType", "buyerType must be one of: first-time, upgrading, investing")
	}

	budget := BudgetRange(sub.BudgetRange)
	if sub.BudgetRange == "" {
		errs.add("budgetRange", "budgetRange is required")
	} else if !budget.IsValid() {
		errs.add("budgetRange", "budgetRange must be one of: under-1m, 1-1.5m, 1.5-3m, 3-5m, over-5m")
	}

	suburbs := pstrings.DedupeAndTrimLower(sub.PreferredSuburbs)
	if len(suburbs) == 0 {
		errs.add("preferredSuburbs", "at least one preferred suburb is required")
	}

	timeline := Timeline(sub.Timeline)
	if sub.Timeline == "" {
		errs.add("timeline", "timeline is required")
	} else if !timeline.IsValid() {
		errs.add("timeline", "timeline must be one of: asap, 1-3, 3-6, 6-plus")
	}

	preApproved := PreApproved(sub.PreApproved)
	if sub.PreApproved == "" {
		errs.add("preApproved", "preApproved is required")
	} else if !preApproved.IsValid() {
		errs.add("preApproved", "preApproved must be yes or no")
	}

	if len(errs) > 0 {
		return ValidatedSubmission{}, errs
	}

	return ValidatedSubmission{
		Name:             name,
		Phone:            phone,
		Email:            email,
		BuyerType:        buyerType,
		BudgetRange:      budget,
		PreferredSuburbs: suburbs,
		Timeline:         timeline,
		PreApproved:      preApproved,
		ConsentGiven:     sub.ConsentGiven,
	}, nil
}
