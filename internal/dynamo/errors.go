package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for integration.
var (
	// ErrInvalidState indicates a state vector containing NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrUnstable indicates the integration became numerically unstable.
	ErrUnstable = errors.New("dynamo: integration unstable (state diverged)")

	// ErrParameterBounds indicates a parameter value outside its valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrStepTooSmall indicates the adaptive step fell below the minimum.
	ErrStepTooSmall = errors.New("dynamo: adaptive step below minimum")

	// ErrAccuracy indicates a trial step exceeded the error tolerance and
	// must be retried with the suggested smaller step.
	ErrAccuracy = errors.New("dynamo: local error above tolerance")
)

// SolveError wraps an error with the integration context it occurred in.
type SolveError struct {
	Step    int
	A       float64
	State   State
	Wrapped error
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("step %d (a=%.6g): %v", e.Step, e.A, e.Wrapped)
}

func (e *SolveError) Unwrap() error {
	return e.Wrapped
}
