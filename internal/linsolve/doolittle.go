package linsolve

import (
	"fmt"
	"math"

	"github.com/san-kum/nrsolve/internal/linalg"
)

const DefaultDoolittleEpsilon = 1e-12

// DoolittleLU is an unpivoted LU solver. Solve factorizes the coefficient
// matrix in place, so the caller hands over ownership of a.
//
// The singularity check inspects only the original diagonal before
// factorization. A pivot that shrinks to zero during elimination is not
// caught and surfaces as Inf or NaN in the solution.
type DoolittleLU struct {
	eps float64
}

func NewDoolittle() *DoolittleLU {
	return &DoolittleLU{eps: DefaultDoolittleEpsilon}
}

func (d *DoolittleLU) Name() string { return "LU decomposition: Doolittle" }

func (d *DoolittleLU) Description() string {
	return "unpivoted LU; fastest, but fails on a zero on the main diagonal"
}

func (d *DoolittleLU) Epsilon() float64 { return d.eps }

func (d *DoolittleLU) Solve(a linalg.Matrix, b linalg.Vector) (linalg.Vector, error) {
	n, err := checkSystem(a, b)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		if math.Abs(a[i][i]) <= d.eps {
			return nil, fmt.Errorf("%w: diagonal entry %d is %g", ErrSingular, i, a[i][i])
		}
	}

	decompose(a)

	x := make(linalg.Vector, n)
	for i := 0; i < n; i++ {
		sum := 0.0
		for k := 0; k < i; k++ {
			sum += a[i][k] * x[k]
		}
		x[i] = b[i] - sum
	}
	for i := n - 1; i >= 0; i-- {
		sum := 0.0
		for k := i + 1; k < n; k++ {
			sum += a[i][k] * x[k]
		}
		x[i] = (x[i] - sum) / a[i][i]
	}
	return x, nil
}

// decompose overwrites lu with U on and above the diagonal and L below it.
// L's unit diagonal is implicit.
func decompose(lu linalg.Matrix) {
	n := len(lu)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sum := 0.0
			for k := 0; k < i; k++ {
				sum += lu[i][k] * lu[k][j]
			}
			lu[i][j] -= sum
		}
		for j := i + 1; j < n; j++ {
			sum := 0.0
			for k := 0; k < i; k++ {
				sum += lu[j][k] * lu[k][i]
			}
			lu[j][i] = (lu[j][i] - sum) / lu[i][i]
		}
	}
}
