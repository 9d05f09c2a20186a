// Package report summarizes a finished solve: solution sanity checks,
// Jacobian conditioning, and a styled terminal rendering.
package report

import (
	"fmt"
	"math"

	"github.com/san-kum/nrsolve/internal/linalg"
)

const (
	MsgZero     = "solution vector contains zero values"
	MsgNaN      = "solution vector contains NaN elements"
	MsgInf      = "solution vector contains infinities"
	MsgNegative = "solution vector contains negative values"
)

// Inspection counts the components of a solution that make it unusable as
// a physical state. Each component lands in at most one bucket, checked in
// the order NaN, Inf, zero, negative.
type Inspection struct {
	Zero     int
	NaN      int
	Inf      int
	Negative int
}

func Inspect(x linalg.Vector) Inspection {
	var in Inspection
	for _, v := range x {
		switch {
		case math.IsNaN(v):
			in.NaN++
		case math.IsInf(v, 0):
			in.Inf++
		case v == 0:
			in.Zero++
		case v < 0:
			in.Negative++
		}
	}
	return in
}

func (in Inspection) OK() bool { return in == Inspection{} }

// Finite reports whether the solution has no NaN or Inf components.
func (in Inspection) Finite() bool { return in.NaN == 0 && in.Inf == 0 }

// Problems lists one message per non-empty bucket.
func (in Inspection) Problems() []string {
	var out []string
	if in.Zero > 0 {
		out = append(out, fmt.Sprintf("%s (%d)", MsgZero, in.Zero))
	}
	if in.NaN > 0 {
		out = append(out, fmt.Sprintf("%s (%d)", MsgNaN, in.NaN))
	}
	if in.Inf > 0 {
		out = append(out, fmt.Sprintf("%s (%d)", MsgInf, in.Inf))
	}
	if in.Negative > 0 {
		out = append(out, fmt.Sprintf("%s (%d)", MsgNegative, in.Negative))
	}
	return out
}
