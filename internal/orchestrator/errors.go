package orchestrator

import (
	"errors"
	"fmt"
)

// Sentinel conditions consumed by the degradation path. Neither is ever
// surfaced to the caller of PerformTask.
var (
	// ErrNoProviderAvailable signals that zero providers are configured for
	// the task's capability
	ErrNoProviderAvailable = errors.New("no provider available for capability")

	// ErrAllProvidersFailed signals that every attempted provider failed
	ErrAllProvidersFailed = errors.New("all providers failed")
)

// ValidationError represents a programmer error in the submitted request:
// an invalid task type or a missing required field. These are the only
// conditions PerformTask surfaces as errors.
type ValidationError struct {
	Field string `json:"field"`
	Msg   string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid task request: field '%s': %s", e.Field, e.Msg)
}

// NewValidationError creates a new validation error
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Msg: msg}
}

// IsValidationError checks whether an error is a request validation error
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
