package rd

import (
	"errors"
	"fmt"
)

var (
	// ErrUnstable indicates a species field picked up NaN or Inf values,
	// usually because the time step is too large for the reaction rates.
	ErrUnstable = errors.New("rd: simulation unstable (non-finite field values)")

	// ErrInvalidSystem indicates a system definition the stepper cannot run:
	// no species, negative diffusivity, or mismatched initial conditions.
	ErrInvalidSystem = errors.New("rd: invalid system definition")

	// ErrInvalidConfig indicates a non-positive end time, snapshot interval
	// or safety factor.
	ErrInvalidConfig = errors.New("rd: invalid run configuration")
)

// StepError decorates a run failure with the simulated time at which it was
// detected.
type StepError struct {
	Time    float64
	Step    int
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("t=%g (step %d): %v", e.Time, e.Step, e.Wrapped)
}

func (e *StepError) Unwrap() error { return e.Wrapped }
