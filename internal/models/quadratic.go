package models

import (
	"github.com/san-kum/nrsolve/internal/linalg"
)

const DefaultQuadraticA = 4.0

// Quadratic is F(x) = x² − A with the root √A.
type Quadratic struct {
	A float64
}

func NewQuadratic() *Quadratic {
	return &Quadratic{A: DefaultQuadraticA}
}

func (q *Quadratic) VectorSize() int { return 1 }

func (q *Quadratic) Residual(x linalg.Vector) linalg.Vector {
	return linalg.Vector{x[0]*x[0] - q.A}
}

func (q *Quadratic) Jacobian(x linalg.Vector) linalg.Matrix {
	return linalg.FromRows([]float64{2 * x[0]})
}
