package posts

import (
	"errors"
	"fmt"
)

// Sentinel errors for common post operations
var (
	// ErrNotFound is returned when a post does not exist in the remote store
	ErrNotFound = errors.New("post not found")
)

// ValidationError represents a validation error with field context.
// Always detected before any network call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%s): %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}

// TransportError wraps a network or store failure. Op names the failed
// operation ("load", "create", ...) for diagnostics; the underlying
// cause stays reachable through Unwrap.
type TransportError struct {
	Err error
	Op  string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError wraps err as a transport failure of op
func NewTransportError(op string, err error) error {
	return &TransportError{Op: op, Err: err}
}

// IsTransportError checks if error is a transport error
func IsTransportError(err error) bool {
	var tErr *TransportError
	return errors.As(err, &tErr)
}

// ConflictError is returned when the store rejects a write due to a
// constraint violation. Surfaced distinctly so callers can retry with
// different data instead of treating it as a transient failure.
type ConflictError struct {
	Err        error
	Constraint string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict on %s: %v", e.Constraint, e.Err)
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}

// NewConflictError creates a conflict error for the named constraint
func NewConflictError(constraint string, err error) error {
	return &ConflictError{Constraint: constraint, Err: err}
}

// IsConflict checks if error is a constraint conflict
func IsConflict(err error) bool {
	var cErr *ConflictError
	return errors.As(err, &cErr)
}
