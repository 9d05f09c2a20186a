package newton

import (
	"math"

	"github.com/san-kum/nrsolve/internal/linalg"
)

const DefaultDifferenceStep = 1e-7

type ResidualFunc func(x linalg.Vector) linalg.Vector

// FiniteDifference turns a residual-only system into a Model by
// approximating the Jacobian with forward differences. Column j uses the
// step H·max(1, |x_j|).
type FiniteDifference struct {
	N int
	F ResidualFunc
	H float64
}

func NewFiniteDifference(n int, f ResidualFunc) *FiniteDifference {
	return &FiniteDifference{N: n, F: f, H: DefaultDifferenceStep}
}

func (d *FiniteDifference) VectorSize() int { return d.N }

func (d *FiniteDifference) Residual(x linalg.Vector) linalg.Vector { return d.F(x) }

func (d *FiniteDifference) Jacobian(x linalg.Vector) linalg.Matrix {
	h := d.H
	if h <= 0 {
		h = DefaultDifferenceStep
	}

	f0 := d.F(x)
	jac := linalg.NewMatrix(len(f0), len(x))
	xp := x.Clone()
	for c := range x {
		dx := h * math.Max(1, math.Abs(x[c]))
		xp[c] = x[c] + dx
		fp := d.F(xp)
		for r := range f0 {
			jac[r][c] = (fp[r] - f0[r]) / dx
		}
		xp[c] = x[c]
	}
	return jac
}
