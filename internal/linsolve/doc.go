// Package linsolve provides direct solvers for dense linear systems A·x = b.
//
// Two LU strategies implement the [Solver] interface:
//
//   - [DoolittleLU]: unpivoted LU, factorized in place. Fast, but fails on a
//     zero anywhere on the original diagonal.
//   - [CroutLU]: partial pivoting through a permutation vector over an
//     augmented working copy. Slower, tolerates zero diagonal entries.
//
// # Ownership
//
// Doolittle consumes its coefficient matrix once the diagonal pre-check
// passes: on return the caller's matrix holds the packed L and U factors.
// A shape or pre-check failure leaves it untouched. Crout never writes to
// the caller's matrix.
//
// # Errors
//
// Every solve failure matches [ErrDimensionMismatch] or [ErrSingular] through
// errors.Is. A failed solve returns a nil vector.
//
//	s, _ := linsolve.New(linsolve.PartialPivotCrout)
//	x, err := s.Solve(a, b)
//	if errors.Is(err, linsolve.ErrSingular) {
//	    // switch strategy or perturb the system
//	}
package linsolve
