package entry

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalid is matched by every ValidationError.
	ErrInvalid = errors.New("entry: invalid")
	// ErrNotFound is returned when an id does not name a stored entry.
	ErrNotFound = errors.New("entry: not found")
)

// ValidationError reports input that must not be persisted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("entry: invalid %s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrInvalid) true for any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
