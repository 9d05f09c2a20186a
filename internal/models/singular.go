package models

import (
	"github.com/san-kum/nrsolve/internal/linalg"
)

// Singular is F = [x1 − x2, x1 − x2]. Its Jacobian has rank one everywhere
// while both diagonal entries are non-zero, so it passes Doolittle's
// diagonal check and fails Crout's pivot check.
type Singular struct{}

func NewSingular() *Singular { return &Singular{} }

func (s *Singular) VectorSize() int { return 2 }

func (s *Singular) Residual(x linalg.Vector) linalg.Vector {
	d := x[0] - x[1]
	return linalg.Vector{d, d}
}

func (s *Singular) Jacobian(linalg.Vector) linalg.Matrix {
	return linalg.FromRows(
		[]float64{1, -1},
		[]float64{1, -1},
	)
}
