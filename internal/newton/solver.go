package newton

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/san-kum/nrsolve/internal/linalg"
	"github.com/san-kum/nrsolve/internal/linsolve"
)

type Solver struct {
	linear    linsolve.Solver
	observers []Observer
	logger    *log.Logger
	iterates  bool
}

type Option func(*Solver)

// WithLinearSolver selects the strategy used for J·Δ = −F. The default is
// Doolittle.
func WithLinearSolver(ls linsolve.Solver) Option {
	return func(s *Solver) {
		if ls != nil {
			s.linear = ls
		}
	}
}

func WithObserver(o Observer) Option {
	return func(s *Solver) {
		if o != nil {
			s.observers = append(s.observers, o)
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(s *Solver) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithIterates records a copy of every iterate in Result.Iterates.
func WithIterates() Option {
	return func(s *Solver) { s.iterates = true }
}

func New(opts ...Option) *Solver {
	s := &Solver{
		linear: linsolve.NewDoolittle(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Solver) Linear() linsolve.Solver { return s.linear }

// Solve iterates from a vector filled with cfg.InitialGuess until the
// policy derived from cfg stops. On cancellation it returns the partial
// result together with ctx.Err(). A failed linear solve returns a
// *StepError and no result.
func (s *Solver) Solve(ctx context.Context, m Model, cfg Config) (*Result, error) {
	if err := cfg.Ready(); err != nil {
		return nil, err
	}
	n := m.VectorSize()
	if n < 1 {
		return nil, notReady("model has %d unknowns", n)
	}

	policy := cfg.Policy()
	logger := s.logger.With("linear", s.linear.Name())
	start := time.Now()

	res := &Result{History: make([]float64, 0, 16)}
	x0 := linalg.Filled(n, cfg.InitialGuess)
	if s.iterates {
		res.Iterates = append(res.Iterates, x0.Clone())
	}

	for step := 1; ; step++ {
		if err := ctx.Err(); err != nil {
			res.X = x0
			res.Elapsed = time.Since(start)
			logger.Warn("solve canceled", "step", res.Steps, "err", err)
			return res, err
		}

		s.notify(step, MsgIterating)

		delta, err := s.linearStep(m, x0)
		if err == nil && !delta.IsValid() {
			// an unpivoted solve can pass its pre-check and still divide by a
			// collapsed pivot
			err = fmt.Errorf("%w: non-finite newton step", linsolve.ErrSingular)
		}
		if err != nil {
			s.notify(FailureStep, MsgLinearFailure)
			logger.Error("linear solve failed", "step", step, "err", err)
			return nil, &StepError{Step: step, Err: err}
		}

		x1 := x0.Add(delta)
		maxDelta := delta.MaxAbs()
		res.Steps = step
		res.History = append(res.History, maxDelta)
		if s.iterates {
			res.Iterates = append(res.Iterates, x1.Clone())
		}
		logger.Debug("step", "step", step, "max_delta", maxDelta)
		for _, o := range s.observers {
			if so, ok := o.(StepObserver); ok {
				so.OnStep(step, x1, maxDelta)
			}
		}

		switch policy.Decide(x0, x1, step) {
		case StopConverged:
			res.Status = StatusConverged
		case StopBudget:
			res.Status = StatusBudgetExhausted
		default:
			x0 = x1
			continue
		}

		res.X = x1
		res.Elapsed = time.Since(start)
		logger.Info("solve finished", "status", res.Status, "steps", step, "max_delta", maxDelta)
		return res, nil
	}
}

// linearStep solves J(x)·Δ = −F(x).
func (s *Solver) linearStep(m Model, x linalg.Vector) (linalg.Vector, error) {
	rhs := m.Residual(x).Negated()
	if len(rhs) != len(x) {
		return nil, fmt.Errorf("%w: residual has %d components, model declares %d",
			linsolve.ErrDimensionMismatch, len(rhs), len(x))
	}
	return s.linear.Solve(m.Jacobian(x), rhs)
}

func (s *Solver) notify(step int, msg string) {
	for _, o := range s.observers {
		o.OnProgress(step, msg)
	}
}
