// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors. Storage and service code wraps these sentinels
// so callers can classify failures with errors.Is.
var (
	// ErrNotFound covers both a missing row and a row owned by a different
	// user; the two are indistinguishable to callers so that probing for
	// other users' budgets reveals nothing.
	ErrNotFound = errors.New("not found")

	// ErrBadRequest marks caller mistakes: invalid date windows, thresholds
	// outside 0-100, ownership mismatches on alert mutations.
	ErrBadRequest = errors.New("bad request")

	// ErrUpstream marks a failed call to the transaction ledger or another
	// remote collaborator.
	ErrUpstream = errors.New("upstream service unavailable")

	// ErrDuplicateEntry signals a storage uniqueness violation.
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// NotFoundf wraps ErrNotFound with a formatted message.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

// BadRequestf wraps ErrBadRequest with a formatted message.
func BadRequestf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrBadRequest)...)
}

// Upstreamf wraps ErrUpstream with a formatted message.
func Upstreamf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrUpstream)...)
}

// ValidationError reports per-field input problems. It unwraps to
// ErrBadRequest so transport code can classify it without a type switch.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

func (e *ValidationError) Unwrap() error {
	return ErrBadRequest
}

// NewValidationError creates a validation error with a single field entry.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}
