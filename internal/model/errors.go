package model

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound is returned by stores when a document does not exist.
	ErrNotFound = errors.New("not found")
	// ErrStoreConflict is returned when a period key is already occupied by different content.
	ErrStoreConflict = errors.New("store conflict")

	ErrInvalidCode        = errors.New("invalid poster code")
	ErrAlreadyRegistered  = errors.New("poster already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrQuotaExceeded      = errors.New("quota exceeded")
	ErrGeneration         = errors.New("generation failed")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInvalidReadingType = errors.New("invalid reading type")
)

// ValidationError is returned by the validation gate.
type ValidationError struct {
	Kind   error
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Detail)
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// QuotaExceededError carries the time the caller should wait before retrying.
type QuotaExceededError struct {
	ReadingType ReadingType
	RetryAfter  time.Duration
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("quota exceeded for %s, retry after %s", e.ReadingType, e.RetryAfter.Round(time.Second))
}

func (e *QuotaExceededError) Unwrap() error {
	return ErrQuotaExceeded
}

// GenerationReason classifies generator failures.
type GenerationReason string

const (
	GenerationReasonTimeout       GenerationReason = "timeout"
	GenerationReasonProvider      GenerationReason = "provider"
	GenerationReasonRejected      GenerationReason = "rejected"
	GenerationReasonInvalidOutput GenerationReason = "invalid_output"
)

// GenerationError wraps a generator failure.
type GenerationError struct {
	Reason GenerationReason
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("generation failed: %s", e.Reason)
	}
	return fmt.Sprintf("generation failed: %s: %v", e.Reason, e.Err)
}

func (e *GenerationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrGeneration}
	}
	return []error{ErrGeneration, e.Err}
}

// Retryable reports whether another attempt may succeed.
func (e *GenerationError) Retryable() bool {
	return e.Reason == GenerationReasonTimeout || e.Reason == GenerationReasonProvider
}
