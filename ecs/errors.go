package ecs

import "errors"

var (
	// ErrArityMismatch is returned when a callback cannot accept the number of
	// values its query projects.
	ErrArityMismatch = errors.New("callback arity does not match query")

	// ErrArgumentType is returned when a projected value cannot be assigned to
	// the corresponding callback parameter.
	ErrArgumentType = errors.New("projected value not assignable to callback parameter")

	// ErrInvalidInterval is returned by Loop.Run for a non-positive interval.
	ErrInvalidInterval = errors.New("loop interval must be positive")
)
