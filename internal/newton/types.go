package newton

import (
	"time"

	"github.com/san-kum/nrsolve/internal/linalg"
)

// Model is the nonlinear system under solution. Both methods must be
// deterministic for a given x. The solver takes ownership of the returned
// Jacobian and may overwrite it.
type Model interface {
	VectorSize() int
	Residual(x linalg.Vector) linalg.Vector
	Jacobian(x linalg.Vector) linalg.Matrix
}

// Config controls one Solve call. A zero field is unset.
type Config struct {
	Epsilon      float64
	MaxSteps     int
	InitialGuess float64
}

// Ready reports whether c can start an iteration.
func (c Config) Ready() error {
	if c.Epsilon < 0 {
		return notReady("epsilon must not be negative, got %g", c.Epsilon)
	}
	if c.MaxSteps < 0 {
		return notReady("max steps must not be negative, got %d", c.MaxSteps)
	}
	if c.Epsilon == 0 && c.MaxSteps == 0 {
		return notReady("neither epsilon nor max steps is set")
	}
	if c.InitialGuess == 0 {
		return notReady("initial guess is not set")
	}
	return nil
}

func (c Config) Policy() Policy {
	return Policy{Epsilon: c.Epsilon, MaxSteps: c.MaxSteps}
}

type Status int

const (
	StatusConverged Status = iota
	StatusBudgetExhausted
)

func (s Status) String() string {
	switch s {
	case StatusConverged:
		return "converged"
	case StatusBudgetExhausted:
		return "budget exhausted"
	}
	return "unknown"
}

type Result struct {
	X      linalg.Vector
	Steps  int
	Status Status
	// History holds max |Δ| for every completed step.
	History []float64
	// Iterates is filled only when the solver was built WithIterates.
	Iterates []linalg.Vector
	Elapsed  time.Duration
}

// FailureStep is the step value passed to observers when a linear solve
// fails.
const FailureStep = -1

const (
	MsgIterating     = "iterating"
	MsgLinearFailure = "linear system solve failed"
)

// Observer receives a notification at the start of every step, and once
// with FailureStep when the linear solve fails.
type Observer interface {
	OnProgress(step int, msg string)
}

type ObserverFunc func(step int, msg string)

func (f ObserverFunc) OnProgress(step int, msg string) { f(step, msg) }

// StepObserver is an optional extension of Observer called after each
// completed step. x must not be retained past the call.
type StepObserver interface {
	OnStep(step int, x linalg.Vector, maxDelta float64)
}
