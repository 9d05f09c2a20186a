package linalg

import "math"

// Matrix is a dense row-major matrix. Rows are expected to share one length;
// Dims reports a ragged matrix as not rectangular.
type Matrix [][]float64

// NewMatrix allocates a zeroed rows×cols matrix backed by one slice.
func NewMatrix(rows, cols int) Matrix {
	backing := make([]float64, rows*cols)
	m := make(Matrix, rows)
	for i := range m {
		m[i] = backing[i*cols : (i+1)*cols : (i+1)*cols]
	}
	return m
}

// FromRows copies rows into a new matrix.
func FromRows(rows ...[]float64) Matrix {
	m := make(Matrix, len(rows))
	for i, r := range rows {
		m[i] = append([]float64(nil), r...)
	}
	return m
}

func Identity(n int) Matrix {
	m := NewMatrix(n, n)
	for i := 0; i < n; i++ {
		m[i][i] = 1
	}
	return m
}

// Dims returns the row and column counts. ok is false when rows differ in
// length.
func (m Matrix) Dims() (rows, cols int, ok bool) {
	rows = len(m)
	if rows == 0 {
		return 0, 0, true
	}
	cols = len(m[0])
	for _, r := range m[1:] {
		if len(r) != cols {
			return rows, cols, false
		}
	}
	return rows, cols, true
}

func (m Matrix) IsSquare() bool {
	rows, cols, ok := m.Dims()
	return ok && rows == cols
}

func (m Matrix) Clone() Matrix {
	return FromRows(m...)
}

// MulVec returns m·x. The caller guarantees len(x) matches the column count.
func (m Matrix) MulVec(x Vector) Vector {
	out := make(Vector, len(m))
	for i, row := range m {
		sum := 0.0
		for j, a := range row {
			sum += a * x[j]
		}
		out[i] = sum
	}
	return out
}

// Residual returns m·x - b.
func (m Matrix) Residual(x, b Vector) Vector {
	return m.MulVec(x).Sub(b)
}

// Flatten returns the matrix entries in row-major order.
func (m Matrix) Flatten() []float64 {
	rows, cols, _ := m.Dims()
	out := make([]float64, 0, rows*cols)
	for _, r := range m {
		out = append(out, r...)
	}
	return out
}

func (m Matrix) IsValid() bool {
	for _, r := range m {
		for _, v := range r {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}
