package graph

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrMissingTeam  = errors.New("missing team name")
	ErrSameTeam     = errors.New("home and away team are the same")
	ErrNodeNotFound = errors.New("node not found")
)

// BuildError provides structured error information for graph construction.
type BuildError struct {
	Op    string // Operation that failed (e.g., "AddResult")
	Home  string // Home team as given
	Away  string // Away team as given
	Cause error  // Underlying error
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	if e.Home != "" || e.Away != "" {
		return fmt.Sprintf("%s %q vs %q: %v", e.Op, e.Home, e.Away, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *BuildError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *BuildError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

func buildError(op, home, away string, cause error) error {
	return &BuildError{Op: op, Home: home, Away: away, Cause: cause}
}
