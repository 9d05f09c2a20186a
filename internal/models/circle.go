package models

import (
	"github.com/san-kum/nrsolve/internal/linalg"
)

const DefaultCircleRadius = 2.0

// Circle intersects x² + y² = R² with the line y = x. From a positive guess
// it converges to (R/√2, R/√2).
type Circle struct {
	R float64
}

func NewCircle() *Circle {
	return &Circle{R: DefaultCircleRadius}
}

func (c *Circle) VectorSize() int { return 2 }

func (c *Circle) Residual(x linalg.Vector) linalg.Vector {
	return linalg.Vector{
		x[0]*x[0] + x[1]*x[1] - c.R*c.R,
		x[1] - x[0],
	}
}

func (c *Circle) Jacobian(x linalg.Vector) linalg.Matrix {
	return linalg.FromRows(
		[]float64{2 * x[0], 2 * x[1]},
		[]float64{-1, 1},
	)
}
