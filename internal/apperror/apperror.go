// Package apperror defines the error kinds returned by the learning core.
// Every kind is safe to surface to the end user as a rejected request.
package apperror

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed or missing input for a named field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NotFoundError reports a referenced entity that does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

// AuthorizationError reports an entity that exists but belongs to another user.
type AuthorizationError struct {
	Entity string
	ID     string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%s %q is not owned by the current user", e.Entity, e.ID)
}

// InvalidTransitionError reports an illegal goal status change.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition goal from %s to %s", e.From, e.To)
}

// PersistenceError wraps an opaque storage failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func NotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

func Unauthorized(entity, id string) error {
	return &AuthorizationError{Entity: entity, ID: id}
}

func InvalidTransition(from, to string) error {
	return &InvalidTransitionError{From: from, To: to}
}

// Persistence wraps err unless it is nil or already one of the kinds above.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsKnown(err) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}

// IsKnown reports whether err is already classified.
func IsKnown(err error) bool {
	var (
		ve *ValidationError
		ne *NotFoundError
		ae *AuthorizationError
		te *InvalidTransitionError
		pe *PersistenceError
	)
	return errors.As(err, &ve) || errors.As(err, &ne) || errors.As(err, &ae) ||
		errors.As(err, &te) || errors.As(err, &pe)
}
