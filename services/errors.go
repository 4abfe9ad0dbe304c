package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a slug or id does not resolve to a visible entity.
var ErrNotFound = errors.New("not found")

var (
	ErrCategoryMismatch = errors.New("category belongs to a different restaurant")
	ErrEmailTaken       = errors.New("email already registered")
	ErrSlugExhausted    = errors.New("could not reserve a unique slug")
)

// ValidationError reports a missing or malformed form field. It is always
// returned before anything is written.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IntegrityError reports a write rejected by a relational constraint.
type IntegrityError struct {
	Op  string
	Err error
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *IntegrityError) Unwrap() error { return e.Err }

// AuthorizationError means the caller's scope does not cover the target.
type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string {
	return "not authorized: " + e.Reason
}

// ErrRestaurantInactive refuses dashboard writes to a deactivated restaurant.
var ErrRestaurantInactive = &AuthorizationError{Reason: "restaurant is deactivated"}

// classify maps storage errors onto the service error taxonomy. Errors that
// are already classified pass through untouched.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var ve *ValidationError
	var ie *IntegrityError
	var ae *AuthorizationError
	switch {
	case errors.As(err, &ve), errors.As(err, &ie), errors.As(err, &ae), errors.Is(err, ErrNotFound):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated):
		return &IntegrityError{Op: op, Err: err}
	}
	return fmt.Errorf("%s: %w", op, err)
}
