// Package bench runs every linear strategy on the same nonlinear problem
// and compares the outcomes against a gonum LU reference.
package bench

import (
	"context"
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/nrsolve/internal/linalg"
	"github.com/san-kum/nrsolve/internal/linsolve"
	"github.com/san-kum/nrsolve/internal/newton"
)

type Entry struct {
	Method linsolve.Method
	Name   string
	Result *newton.Result
	Err    error
	// Residual is |F(x)|₂ at the returned iterate, NaN without one.
	Residual float64
	// Deviation is max |Δ − Δ_ref| for the first Newton step, where Δ_ref
	// comes from gonum's LU. NaN when either solve fails.
	Deviation float64
}

// Compare solves m once per linear method, concurrently. The model must
// tolerate concurrent calls. A failing method is reported in its Entry and
// does not stop the others.
func Compare(ctx context.Context, m newton.Model, cfg newton.Config, opts ...linsolve.Option) ([]Entry, error) {
	if err := cfg.Ready(); err != nil {
		return nil, err
	}

	x0 := linalg.Filled(m.VectorSize(), cfg.InitialGuess)
	ref, refErr := ReferenceStep(m, x0)

	methods := linsolve.Methods()
	entries := make([]Entry, len(methods))

	var wg sync.WaitGroup
	for i, method := range methods {
		wg.Add(1)
		go func(idx int, method linsolve.Method) {
			defer wg.Done()
			entries[idx] = run(ctx, m, cfg, method, opts, x0, ref, refErr)
		}(i, method)
	}
	wg.Wait()

	return entries, ctx.Err()
}

func run(ctx context.Context, m newton.Model, cfg newton.Config, method linsolve.Method,
	opts []linsolve.Option, x0, ref linalg.Vector, refErr error) Entry {
	e := Entry{Method: method, Residual: math.NaN(), Deviation: math.NaN()}

	ls, err := linsolve.New(method, opts...)
	if err != nil {
		e.Err = err
		return e
	}
	e.Name = ls.Name()

	if refErr == nil {
		if dx, err := ls.Solve(m.Jacobian(x0), m.Residual(x0).Negated()); err == nil {
			e.Deviation = dx.Sub(ref).MaxAbs()
			if !dx.IsValid() {
				e.Deviation = math.Inf(1)
			}
		}
	}

	e.Result, e.Err = newton.New(newton.WithLinearSolver(ls)).Solve(ctx, m, cfg)
	if e.Result != nil && e.Result.X.IsValid() {
		e.Residual = m.Residual(e.Result.X).Norm()
	}
	return e
}

// ReferenceStep solves J(x)·Δ = −F(x) with gonum's partially pivoted LU.
func ReferenceStep(m newton.Model, x linalg.Vector) (linalg.Vector, error) {
	jac := m.Jacobian(x)
	rhs := m.Residual(x).Negated()
	n := len(rhs)

	rows, cols, ok := jac.Dims()
	if !ok || rows != n || cols != n || n == 0 {
		return nil, fmt.Errorf("%w: jacobian %dx%d, residual %d", linsolve.ErrDimensionMismatch, rows, cols, n)
	}

	var lu mat.LU
	lu.Factorize(mat.NewDense(n, n, jac.Flatten()))

	var dx mat.VecDense
	if err := lu.SolveVecTo(&dx, false, mat.NewVecDense(n, rhs)); err != nil {
		return nil, fmt.Errorf("%w: %v", linsolve.ErrSingular, err)
	}
	return linalg.Vector(mat.Col(nil, 0, &dx)), nil
}
