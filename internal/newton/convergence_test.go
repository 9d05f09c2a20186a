package newton_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/nrsolve/internal/linalg"
	"github.com/san-kum/nrsolve/internal/newton"
)

var _ = Describe("Policy", func() {
	moved := linalg.Vector{1, 1.5}
	still := linalg.Vector{1, 1 + 1e-12}
	origin := linalg.Vector{1, 1}

	DescribeTable("Decide",
		func(p newton.Policy, x1 linalg.Vector, step int, want newton.Decision) {
			Expect(p.Decide(origin, x1, step)).To(Equal(want))
		},
		Entry("epsilon only, moving", newton.Policy{Epsilon: 1e-6}, moved, 500, newton.Continue),
		Entry("epsilon only, settled", newton.Policy{Epsilon: 1e-6}, still, 1, newton.StopConverged),
		Entry("max steps only, below", newton.Policy{MaxSteps: 5}, still, 4, newton.Continue),
		Entry("max steps only, reached", newton.Policy{MaxSteps: 5}, moved, 5, newton.StopBudget),
		Entry("max steps only, passed", newton.Policy{MaxSteps: 5}, moved, 6, newton.StopBudget),
		Entry("both, settled at the limit", newton.Policy{Epsilon: 1e-6, MaxSteps: 5}, still, 5, newton.StopConverged),
		Entry("both, moving at the limit", newton.Policy{Epsilon: 1e-6, MaxSteps: 5}, moved, 5, newton.StopBudget),
		Entry("both, moving below the limit", newton.Policy{Epsilon: 1e-6, MaxSteps: 5}, moved, 2, newton.Continue),
	)

	It("counts components above epsilon", func() {
		x0 := linalg.Vector{0, 0, 0, 0}
		x1 := linalg.Vector{0.1, -0.1, 1e-9, 0.05}
		Expect(newton.Exceeding(x0, x1, 0.05)).To(Equal(2))
		Expect(newton.Exceeding(x0, x1, 1e-12)).To(Equal(4))
		Expect(newton.Exceeding(x0, x0, 0)).To(BeZero())
	})
})

var _ = Describe("FiniteDifference", func() {
	It("approximates the analytic Jacobian", func() {
		fd := newton.NewFiniteDifference(2, circleLine{}.Residual)
		x := linalg.Vector{0.7, -1.3}

		got := fd.Jacobian(x)
		want := circleLine{}.Jacobian(x)
		for i := range want {
			for j := range want[i] {
				Expect(got[i][j]).To(BeNumerically("~", want[i][j], 1e-5))
			}
		}
	})

	It("drives the solver to the same root", func() {
		fd := newton.NewFiniteDifference(1, square{a: 4}.Residual)
		res, err := newton.New().Solve(context.Background(), fd, newton.Config{Epsilon: 1e-10, MaxSteps: 100, InitialGuess: 1})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.X[0]).To(BeNumerically("~", 2, 1e-8))
	})
})
