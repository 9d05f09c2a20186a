// Package newton solves nonlinear systems F(x) = 0 by Newton-Raphson
// iteration.
//
// A [Model] supplies the residual F(x) and its Jacobian J(x). Every step
// solves J·Δ = −F through a [linsolve.Solver] and advances x by Δ until the
// [Policy] built from [Config] stops the loop.
//
//	s := newton.New(newton.WithLinearSolver(linsolve.NewCrout()))
//	res, err := s.Solve(ctx, model, newton.Config{Epsilon: 1e-10, InitialGuess: 1})
//
// # Termination
//
// With Epsilon set the loop stops once no component of x moves by more than
// Epsilon. With MaxSteps set it stops after that many steps. Running out of
// steps is not an error: the last iterate comes back with
// [StatusBudgetExhausted].
//
// # Thread Safety
//
// A [Solver] holds only its wiring. Configuration and iteration state live in
// each Solve call, so one Solver may serve concurrent calls provided its
// observers tolerate that.
package newton
