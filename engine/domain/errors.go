package domain

import (
	"errors"
	"fmt"
)

// Sentinels for rejected paging arguments.
var (
	ErrInvalidLimit  = errors.New("invalid limit")
	ErrInvalidOffset = errors.New("invalid offset")
)

// ValidationError names the GraphQL argument that failed a paging check.
// errors.Is matches it against the sentinel in Err.
type ValidationError struct {
	Arg   string
	Value int
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s must not be negative, got %d", e.Err, e.Arg, e.Value)
}

func (e *ValidationError) Unwrap() error { return e.Err }
