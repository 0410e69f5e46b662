// Package domainerrors defines the coded error taxonomy shared by services
// and the HTTP layer. Services attach a Code describing the class of failure;
// the transport layer maps codes to HTTP statuses and decides how much detail
// may leave the process.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error.
type Code string

const (
	// CodeBadRequest: request could not be parsed at all.
	CodeBadRequest Code = "bad_request"
	// CodeValidation: structurally invalid input; field detail is safe to return.
	CodeValidation Code = "validation_failed"
	// CodeMissingConsent: legal precondition, distinct from data-quality failures.
	CodeMissingConsent Code = "missing_consent"
	// CodeRateLimited: caller exceeded its submission budget.
	CodeRateLimited Code = "rate_limited"
	// CodeNotFound: referenced entity does not exist.
	CodeNotFound Code = "not_found"
	// CodeInternal: dependency or invariant failure; detail never leaves the process.
	CodeInternal Code = "internal_error"
)

// Error is a coded domain error. Message is operator-facing unless the code
// is one the transport layer marks as safe.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a coded error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap annotates err with a code and message, preserving the cause chain.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for
// unclassified errors so nothing leaks by accident.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a code to its HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest, CodeValidation, CodeMissingConsent:
		return http.StatusBadRequest
	case CodeRateLimited:
		return http.StatusTooManyRequests
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
