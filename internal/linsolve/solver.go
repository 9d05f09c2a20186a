package linsolve

import (
	"fmt"
	"strings"

	"github.com/san-kum/nrsolve/internal/linalg"
)

// Solver solves a square dense system A·x = b.
type Solver interface {
	Solve(a linalg.Matrix, b linalg.Vector) (linalg.Vector, error)
	Name() string
	Description() string
}

// Method names one of the built-in strategies. The zero value is Doolittle.
type Method int

const (
	Doolittle Method = iota
	PartialPivotCrout
)

var methodNames = map[Method]string{
	Doolittle:         "doolittle",
	PartialPivotCrout: "crout",
}

func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("method(%d)", int(m))
}

// Methods lists every built-in strategy in selection order.
func Methods() []Method {
	return []Method{Doolittle, PartialPivotCrout}
}

// ParseMethod accepts the String form of a Method, case-insensitively.
func ParseMethod(name string) (Method, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "", "doolittle", "lu":
		return Doolittle, nil
	case "crout", "pivot", "partial-pivot":
		return PartialPivotCrout, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
}

type options struct {
	eps    float64
	epsSet bool
}

type Option func(*options)

// WithEpsilon sets the pivot magnitude threshold below which a system is
// treated as singular. Non-positive values keep the strategy default.
func WithEpsilon(eps float64) Option {
	return func(o *options) {
		if eps > 0 {
			o.eps = eps
			o.epsSet = true
		}
	}
}

// New builds the solver for method.
func New(method Method, opts ...Option) (Solver, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	switch method {
	case Doolittle:
		d := NewDoolittle()
		if o.epsSet {
			d.eps = o.eps
		}
		return d, nil
	case PartialPivotCrout:
		c := NewCrout()
		if o.epsSet {
			c.eps = o.eps
		}
		return c, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownMethod, int(method))
}

// checkSystem validates shapes before any solver touches its inputs.
func checkSystem(a linalg.Matrix, b linalg.Vector) (int, error) {
	rows, cols, ok := a.Dims()
	if !ok {
		return 0, fmt.Errorf("%w: ragged coefficient matrix", ErrDimensionMismatch)
	}
	if rows != cols {
		return 0, fmt.Errorf("%w: non-square matrix %dx%d", ErrDimensionMismatch, rows, cols)
	}
	if len(b) != rows {
		return 0, fmt.Errorf("%w: rhs length %d, matrix order %d", ErrDimensionMismatch, len(b), rows)
	}
	return rows, nil
}
