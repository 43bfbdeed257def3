package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrProfileNotFound signals a missing profile.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrInvalidInput signals a validation failure before any write.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthorized signals a caller without a valid credential.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrWriteFailure signals a failed profile or review write.
	ErrWriteFailure = errors.New("write failed")

	// ErrLocalSearch signals that the local directory store was unreachable.
	// The search pipeline degrades it to zero local results and continues.
	ErrLocalSearch = errors.New("local directory search failed")
	// ErrExternalSearch signals that the external lookup provider failed.
	// Non-fatal: local results already obtained are unaffected.
	ErrExternalSearch = errors.New("could not search externally")

	// ErrRateLimited signals a provider rate limit hit.
	ErrRateLimited = errors.New("rate limited")
	// ErrParseQuotaExceeded signals an exhausted LLM parse token budget.
	ErrParseQuotaExceeded = errors.New("parse quota exceeded")
	// ErrParseProviderError signals an LLM parse provider failure.
	ErrParseProviderError = errors.New("parse provider error")
)

// ValidationError wraps ErrInvalidInput with the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidInput.Error(), e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidation creates a field validation error.
func NewValidation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
