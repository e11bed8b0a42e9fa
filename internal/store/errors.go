package store

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned when no record with the requested id exists.
var ErrNotFound = errors.New("record not found")

// ErrTimeout is returned when a store call exceeded its deadline. It is kept
// distinct from UnavailableError so that callers can report it as such.
var ErrTimeout = errors.New("store timeout")

// UnavailableError wraps a connectivity or query failure of the backing
// store. The underlying cause is for the log only and must not be leaked to
// API clients.
type UnavailableError struct {
	Op  string
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("store unavailable: %s: %v", e.Op, e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// wrap maps a raw backend error onto the store error taxonomy.
func wrap(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout
	case errors.Is(err, ErrNotFound):
		return ErrNotFound
	default:
		return &UnavailableError{Op: op, Err: err}
	}
}
