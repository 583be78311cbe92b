package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound reports a missing Car/Rental/Penalty/Maintenance id.
var ErrNotFound = errors.New("not found")

// ValidationError reports malformed or logically inconsistent input,
// attributed to the offending field. No mutation occurs when it is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// StateError reports a violated precondition on an entity status, e.g.
// approving a rental that is not pending. No mutation occurs.
type StateError struct {
	Reason string
}

func (e *StateError) Error() string {
	return e.Reason
}

func NewStateError(format string, args ...any) error {
	return &StateError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsState reports whether err is a StateError.
func IsState(err error) bool {
	var se *StateError
	return errors.As(err, &se)
}
