package report

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/nrsolve/internal/linalg"
)

var ErrNotSquare = errors.New("report: matrix is not square")

// ConditionNumber is the 2-norm condition number of a. A singular matrix
// gives +Inf.
func ConditionNumber(a linalg.Matrix) (float64, error) {
	rows, cols, ok := a.Dims()
	if !ok || rows != cols || rows == 0 {
		return 0, fmt.Errorf("%w: %dx%d", ErrNotSquare, rows, cols)
	}
	if !a.IsValid() {
		return 0, fmt.Errorf("report: matrix has non-finite entries")
	}
	return mat.Cond(mat.NewDense(rows, cols, a.Flatten()), 2), nil
}
