package newton_test

import (
	"math"
	"sync"

	"github.com/san-kum/nrsolve/internal/linalg"
)

// square is F(x) = x² − a.
type square struct{ a float64 }

func (s square) VectorSize() int { return 1 }

func (s square) Residual(x linalg.Vector) linalg.Vector {
	return linalg.Vector{x[0]*x[0] - s.a}
}

func (s square) Jacobian(x linalg.Vector) linalg.Matrix {
	return linalg.FromRows([]float64{2 * x[0]})
}

// noRoot is F(x) = e^x. Every Newton step moves x by exactly −1.
type noRoot struct{}

func (noRoot) VectorSize() int { return 1 }

func (noRoot) Residual(x linalg.Vector) linalg.Vector {
	return linalg.Vector{math.Exp(x[0])}
}

func (noRoot) Jacobian(x linalg.Vector) linalg.Matrix {
	return linalg.FromRows([]float64{math.Exp(x[0])})
}

// flat has a Jacobian whose first column is zero everywhere.
type flat struct{}

func (flat) VectorSize() int { return 2 }

func (flat) Residual(x linalg.Vector) linalg.Vector {
	return linalg.Vector{x[1] - 1, 2*x[1] - 2}
}

func (flat) Jacobian(linalg.Vector) linalg.Matrix {
	return linalg.FromRows(
		[]float64{0, 1},
		[]float64{0, 2},
	)
}

// circleLine intersects x² + y² = 2 with y = x.
type circleLine struct{}

func (circleLine) VectorSize() int { return 2 }

func (circleLine) Residual(x linalg.Vector) linalg.Vector {
	return linalg.Vector{x[0]*x[0] + x[1]*x[1] - 2, x[1] - x[0]}
}

func (circleLine) Jacobian(x linalg.Vector) linalg.Matrix {
	return linalg.FromRows(
		[]float64{2 * x[0], 2 * x[1]},
		[]float64{-1, 1},
	)
}

type progress struct {
	step int
	msg  string
}

type recorder struct {
	mu     sync.Mutex
	events []progress
	steps  []int
}

func (r *recorder) OnProgress(step int, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, progress{step, msg})
}

func (r *recorder) OnStep(step int, _ linalg.Vector, _ float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = append(r.steps, step)
}
