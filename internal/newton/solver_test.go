package newton_test

import (
	"context"
	"errors"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/nrsolve/internal/linalg"
	"github.com/san-kum/nrsolve/internal/linsolve"
	"github.com/san-kum/nrsolve/internal/models"
	"github.com/san-kum/nrsolve/internal/newton"
)

var _ = Describe("Solver", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	for _, method := range linsolve.Methods() {
		method := method

		Context("with the "+method.String()+" linear solver", func() {
			var s *newton.Solver

			BeforeEach(func() {
				ls, err := linsolve.New(method)
				Expect(err).NotTo(HaveOccurred())
				s = newton.New(newton.WithLinearSolver(ls))
			})

			It("finds the root of x² − 4 from 1", func() {
				res, err := s.Solve(ctx, square{a: 4}, newton.Config{Epsilon: 1e-10, InitialGuess: 1})
				Expect(err).NotTo(HaveOccurred())
				Expect(res.Status).To(Equal(newton.StatusConverged))
				Expect(res.X).To(HaveLen(1))
				Expect(res.X[0]).To(BeNumerically("~", 2, 1e-9))
				Expect(res.History).To(HaveLen(res.Steps))
			})

			It("solves a two-dimensional system", func() {
				res, err := s.Solve(ctx, circleLine{}, newton.Config{Epsilon: 1e-12, MaxSteps: 50, InitialGuess: 3})
				Expect(err).NotTo(HaveOccurred())
				Expect(res.Status).To(Equal(newton.StatusConverged))
				Expect(res.X[0]).To(BeNumerically("~", 1, 1e-9))
				Expect(res.X[1]).To(BeNumerically("~", 1, 1e-9))
			})

			It("reports a singular Jacobian as a linear solve failure", func() {
				rec := &recorder{}
				solver := newton.New(newton.WithLinearSolver(s.Linear()), newton.WithObserver(rec))

				res, err := solver.Solve(ctx, flat{}, newton.Config{Epsilon: 1e-10, InitialGuess: 1})
				Expect(res).To(BeNil())
				Expect(err).To(MatchError(newton.ErrLinearSolve))
				Expect(errors.Is(err, linsolve.ErrSingular)).To(BeTrue())

				var stepErr *newton.StepError
				Expect(errors.As(err, &stepErr)).To(BeTrue())
				Expect(stepErr.Step).To(Equal(1))

				Expect(rec.events).To(Equal([]progress{
					{1, newton.MsgIterating},
					{newton.FailureStep, newton.MsgLinearFailure},
				}))
			})

			It("fails on a rank-deficient Jacobian whose diagonal looks fine", func() {
				rec := &recorder{}
				solver := newton.New(newton.WithLinearSolver(s.Linear()), newton.WithObserver(rec))

				res, err := solver.Solve(ctx, models.NewSingular(),
					newton.Config{Epsilon: 1e-12, MaxSteps: 10000, InitialGuess: 1})
				Expect(res).To(BeNil())
				Expect(err).To(MatchError(newton.ErrLinearSolve))
				Expect(errors.Is(err, linsolve.ErrSingular)).To(BeTrue())
				Expect(rec.events).To(Equal([]progress{
					{1, newton.MsgIterating},
					{newton.FailureStep, newton.MsgLinearFailure},
				}))
			})
		})
	}

	It("runs exactly MaxSteps steps when no epsilon is set", func() {
		rec := &recorder{}
		s := newton.New(newton.WithObserver(rec))

		res, err := s.Solve(ctx, square{a: 4}, newton.Config{MaxSteps: 5, InitialGuess: 1})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Steps).To(Equal(5))
		Expect(res.Status).To(Equal(newton.StatusBudgetExhausted))
		Expect(res.X[0]).To(BeNumerically("~", 2, 1e-9))

		Expect(rec.events).To(HaveLen(5))
		for i, ev := range rec.events {
			Expect(ev).To(Equal(progress{i + 1, newton.MsgIterating}))
		}
		Expect(rec.steps).To(Equal([]int{1, 2, 3, 4, 5}))
	})

	It("returns the last iterate when the budget runs out first", func() {
		res, err := newton.New().Solve(ctx, square{a: 4}, newton.Config{Epsilon: 1e-10, MaxSteps: 2, InitialGuess: 1})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Steps).To(Equal(2))
		Expect(res.Status).To(Equal(newton.StatusBudgetExhausted))
		Expect(res.X[0]).To(BeNumerically("~", 2.05, 1e-12))
	})

	It("prefers convergence when it happens before the budget", func() {
		res, err := newton.New().Solve(ctx, square{a: 4}, newton.Config{Epsilon: 1e-10, MaxSteps: 100, InitialGuess: 1})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Status).To(Equal(newton.StatusConverged))
		Expect(res.Steps).To(BeNumerically("<", 100))
	})

	It("keeps only the requested iterates", func() {
		res, err := newton.New(newton.WithIterates()).Solve(ctx, square{a: 9}, newton.Config{MaxSteps: 3, InitialGuess: 1})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Iterates).To(HaveLen(4))
		Expect(res.Iterates[0][0]).To(Equal(1.0))
		Expect(res.Iterates[1][0]).To(BeNumerically("~", 5, 1e-12))
		Expect(res.Iterates[3]).To(Equal(res.X))

		res, err = newton.New().Solve(ctx, square{a: 9}, newton.Config{MaxSteps: 3, InitialGuess: 1})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Iterates).To(BeNil())
	})

	It("is deterministic across repeated solves", func() {
		s := newton.New(newton.WithLinearSolver(linsolve.NewCrout()))
		cfg := newton.Config{Epsilon: 1e-12, MaxSteps: 40, InitialGuess: 0.5}

		first, err := s.Solve(ctx, circleLine{}, cfg)
		Expect(err).NotTo(HaveOccurred())
		second, err := s.Solve(ctx, circleLine{}, cfg)
		Expect(err).NotTo(HaveOccurred())

		Expect(second.X).To(Equal(first.X))
		Expect(second.History).To(Equal(first.History))
		Expect(second.Steps).To(Equal(first.Steps))
	})

	It("serves concurrent solves from one instance", func() {
		s := newton.New()
		var wg sync.WaitGroup
		roots := make([]float64, 8)
		for i := range roots {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				defer GinkgoRecover()
				a := float64((i + 1) * (i + 1))
				res, err := s.Solve(ctx, square{a: a}, newton.Config{Epsilon: 1e-12, MaxSteps: 100, InitialGuess: 1})
				Expect(err).NotTo(HaveOccurred())
				roots[i] = res.X[0]
			}(i)
		}
		wg.Wait()
		for i, r := range roots {
			Expect(r).To(BeNumerically("~", float64(i+1), 1e-9))
		}
	})

	Describe("cancellation", func() {
		It("stops before the first step on a canceled context", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()

			res, err := newton.New().Solve(cctx, square{a: 4}, newton.Config{Epsilon: 1e-10, InitialGuess: 1})
			Expect(err).To(MatchError(context.Canceled))
			Expect(res).NotTo(BeNil())
			Expect(res.Steps).To(BeZero())
			Expect(res.X[0]).To(Equal(1.0))
		})

		It("ends an epsilon-only run that never converges", func() {
			cctx, cancel := context.WithCancel(ctx)
			defer cancel()
			obs := newton.ObserverFunc(func(step int, _ string) {
				if step == 10 {
					cancel()
				}
			})

			res, err := newton.New(newton.WithObserver(obs)).Solve(cctx, noRoot{}, newton.Config{Epsilon: 1e-6, InitialGuess: 1})
			Expect(err).To(MatchError(context.Canceled))
			Expect(res.Steps).To(Equal(10))
			Expect(res.X[0]).To(BeNumerically("~", -9, 1e-9))
		})
	})

	DescribeTable("readiness",
		func(cfg newton.Config) {
			res, err := newton.New().Solve(ctx, square{a: 4}, cfg)
			Expect(res).To(BeNil())
			Expect(err).To(MatchError(newton.ErrNotReady))
		},
		Entry("neither bound set", newton.Config{InitialGuess: 1}),
		Entry("zero initial guess", newton.Config{Epsilon: 1e-10}),
		Entry("negative epsilon", newton.Config{Epsilon: -1, InitialGuess: 1}),
		Entry("negative max steps", newton.Config{MaxSteps: -3, InitialGuess: 1}),
	)

	It("rejects a residual that does not match the model size", func() {
		short := newton.NewFiniteDifference(2, func(x linalg.Vector) linalg.Vector {
			return linalg.Vector{x[0] - 1}
		})
		_, err := newton.New().Solve(ctx, short, newton.Config{MaxSteps: 3, InitialGuess: 1})
		Expect(err).To(MatchError(newton.ErrLinearSolve))
		Expect(errors.Is(err, linsolve.ErrDimensionMismatch)).To(BeTrue())
	})

	It("refuses a model without unknowns", func() {
		_, err := newton.New().Solve(ctx, newton.NewFiniteDifference(0, nil), newton.Config{MaxSteps: 1, InitialGuess: 1})
		Expect(err).To(MatchError(newton.ErrNotReady))
	})
})
