package state

import (
	"errors"
	"fmt"
)

var (
	// ErrStateNotFound is returned when a state or one of its ancestors
	// has not been added.
	ErrStateNotFound = errors.New("state: not found")

	// ErrInvalidState is returned by AddState for unusable definitions.
	ErrInvalidState = errors.New("state: invalid definition")

	// ErrMissingParam is returned when a route parameter has no value.
	ErrMissingParam = errors.New("state: missing route parameter")

	// ErrHookPanic is returned when a hook or renderer panics.
	ErrHookPanic = errors.New("state: hook panicked")
)

// TransitionError reports the state and step at which a transition failed.
type TransitionError struct {
	State string
	Op    string
	Err   error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("state: %s %q: %v", e.Op, e.State, e.Err)
}

func (e *TransitionError) Unwrap() error { return e.Err }
