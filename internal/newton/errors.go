package newton

import (
	"errors"
	"fmt"
)

var (
	// ErrNotReady is returned when a Config cannot start an iteration.
	ErrNotReady = errors.New("newton: solver not ready")

	// ErrLinearSolve marks a failed linear solve inside an iteration.
	ErrLinearSolve = errors.New("newton: linear system solve failed")
)

// StepError reports the step at which the linear solve failed. It matches
// both ErrLinearSolve and the underlying linsolve error.
type StepError struct {
	Step int
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("newton: step %d: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() []error {
	return []error{ErrLinearSolve, e.Err}
}

func notReady(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrNotReady}, args...)...)
}
