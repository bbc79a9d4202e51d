package domain

import "errors"

// Sentinel errors shared by services, repositories and controllers.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrValidation   = errors.New("validation failed")

	// ErrUnschedulable means an event's date cannot be placed on a calendar.
	ErrUnschedulable = errors.New("Event date is not calendar compatible")
)

// ValidationError carries a client-facing validation message. It matches ErrValidation
// with errors.Is.
type ValidationError struct {
	Message string
}

// NewValidationError returns a *ValidationError with the given message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
