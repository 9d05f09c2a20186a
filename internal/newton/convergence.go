package newton

import (
	"math"

	"github.com/san-kum/nrsolve/internal/linalg"
)

type Decision int

const (
	Continue Decision = iota
	StopConverged
	StopBudget
)

// Policy decides after each step whether the iteration goes on.
type Policy struct {
	Epsilon  float64
	MaxSteps int
}

// Decide checks componentwise convergence before the step budget, so a step
// that both converges and exhausts the budget counts as converged.
func (p Policy) Decide(x0, x1 linalg.Vector, step int) Decision {
	if p.Epsilon > 0 && Exceeding(x0, x1, p.Epsilon) == 0 {
		return StopConverged
	}
	if p.MaxSteps > 0 && step >= p.MaxSteps {
		return StopBudget
	}
	return Continue
}

// Exceeding counts the components whose absolute change is above eps.
func Exceeding(x0, x1 linalg.Vector, eps float64) int {
	count := 0
	for i := range x1 {
		if math.Abs(x1[i]-x0[i]) > eps {
			count++
		}
	}
	return count
}
