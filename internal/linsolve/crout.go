package linsolve

import (
	"fmt"
	"math"

	"github.com/san-kum/nrsolve/internal/linalg"
)

const DefaultCroutEpsilon = 1e-15

// CroutLU solves by Gaussian elimination with partial pivoting on an
// augmented copy [A | b]. Rows are reordered through a permutation vector
// rather than moved, and the caller's matrix is left untouched.
type CroutLU struct {
	eps float64
}

func NewCrout() *CroutLU {
	return &CroutLU{eps: DefaultCroutEpsilon}
}

func (c *CroutLU) Name() string { return "LU decomposition: Crout" }

func (c *CroutLU) Description() string {
	return "partial pivoting; slower, immune to zeros on the main diagonal"
}

func (c *CroutLU) Epsilon() float64 { return c.eps }

func (c *CroutLU) Solve(a linalg.Matrix, b linalg.Vector) (linalg.Vector, error) {
	if _, err := checkSystem(a, b); err != nil {
		return nil, err
	}

	ab := augment(a, b)
	perm, err := c.eliminate(ab)
	if err != nil {
		return nil, err
	}
	return c.substitute(ab, perm)
}

// augment copies a and b into an n×(n+1) working matrix.
func augment(a linalg.Matrix, b linalg.Vector) linalg.Matrix {
	n := len(a)
	ab := linalg.NewMatrix(n, n+1)
	for i := 0; i < n; i++ {
		copy(ab[i], a[i])
		ab[i][n] = b[i]
	}
	return ab
}

// eliminate reduces ab to upper-triangular form under the returned
// permutation. perm[i] is the physical row acting as logical row i;
// perm[n] addresses the augmented column and stays fixed.
func (c *CroutLU) eliminate(ab linalg.Matrix) ([]int, error) {
	n := len(ab)
	perm := make([]int, n+1)
	for i := range perm {
		perm[i] = i
	}
	rhs := perm[n]

	for i := 0; i < n-1; i++ {
		k := i
		for r := i + 1; r < n; r++ {
			// strict comparison keeps the first maximal row on ties
			if math.Abs(ab[perm[r]][i]) > math.Abs(ab[perm[k]][i]) {
				k = r
			}
		}
		perm[i], perm[k] = perm[k], perm[i]

		pivotRow := ab[perm[i]]
		pivot := pivotRow[i]
		if math.Abs(pivot) < c.eps {
			return nil, fmt.Errorf("%w: pivot %g in column %d", ErrSingular, pivot, i)
		}

		for j := i + 1; j < n; j++ {
			row := ab[perm[j]]
			m := -row[i] / pivot
			row[i] = 0
			for col := i + 1; col < n; col++ {
				row[col] += m * pivotRow[col]
			}
			row[rhs] += m * pivotRow[rhs]
		}
	}
	return perm, nil
}

func (c *CroutLU) substitute(ab linalg.Matrix, perm []int) (linalg.Vector, error) {
	n := len(ab)
	rhs := perm[n]
	x := make(linalg.Vector, n)
	for i := n - 1; i >= 0; i-- {
		row := ab[perm[i]]
		if math.Abs(row[i]) < c.eps {
			return nil, fmt.Errorf("%w: pivot %g in row %d", ErrSingular, row[i], i)
		}
		s := row[rhs]
		for j := i + 1; j < n; j++ {
			s -= row[j] * x[j]
		}
		x[i] = s / row[i]
	}
	return x, nil
}
