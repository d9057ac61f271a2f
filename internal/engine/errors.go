package engine

import (
	"errors"
	"fmt"
)

// ErrMalformedCondition marks a catalog entry that violates its invariants
var ErrMalformedCondition = errors.New("malformed condition definition")

// ErrUnknownCondition marks a condition key the catalog does not define
var ErrUnknownCondition = errors.New("unknown condition")

// ProcessingError is an unexpected internal fault at the engine boundary.
// The engine still returns a well-formed, degraded result alongside it.
type ProcessingError struct {
	Stage string // normalize, score, rank, explain
	Err   error
}

// Error implements the error interface
func (e *ProcessingError) Error() string {
	return fmt.Sprintf("engine %s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying cause
func (e *ProcessingError) Unwrap() error {
	return e.Err
}
