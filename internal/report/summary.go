package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/nrsolve/internal/newton"
)

// Summary collects what the CLI prints after a solve.
type Summary struct {
	Model      string
	Method     string
	Result     *newton.Result
	Residual   float64
	Cond       float64
	Inspection Inspection
}

// Summarize evaluates the model once more at the solution for the residual
// norm and the Jacobian condition number. Both are NaN when the solution is
// not finite.
func Summarize(model, method string, m newton.Model, res *newton.Result) Summary {
	s := Summary{
		Model:      model,
		Method:     method,
		Result:     res,
		Residual:   math.NaN(),
		Cond:       math.NaN(),
		Inspection: Inspect(res.X),
	}
	if !s.Inspection.Finite() {
		return s
	}

	s.Residual = m.Residual(res.X).Norm()
	if c, err := ConditionNumber(m.Jacobian(res.X)); err == nil {
		s.Cond = c
	}
	return s
}

func (s Summary) statusLine() string {
	status := s.Result.Status.String()
	switch {
	case !s.Inspection.Finite():
		return StatusFail.Render("● " + status + " (non-finite)")
	case s.Result.Status == newton.StatusBudgetExhausted:
		return StatusWarn.Render("● " + status)
	}
	return StatusOK.Render("● " + status)
}

// Render draws the summary inside a panel. At most limit solution
// components are listed; limit <= 0 lists all of them.
func (s Summary) Render(limit int) string {
	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(MetricLabel.Render(fmt.Sprintf("%-10s", label)))
		b.WriteString(MetricValue.Render(value))
		b.WriteByte('\n')
	}

	b.WriteString(Title.Render("nrsolve · "+s.Model) + "  " + Subtle.Render(s.Method))
	b.WriteString("\n\n")
	b.WriteString(s.statusLine())
	b.WriteString("\n\n")

	row("steps", fmt.Sprintf("%d", s.Result.Steps))
	row("elapsed", s.Result.Elapsed.String())
	row("|F(x)|", fmt.Sprintf("%.3e", s.Residual))
	row("cond(J)", fmt.Sprintf("%.3e", s.Cond))
	if n := len(s.Result.History); n > 0 {
		row("last |Δ|", fmt.Sprintf("%.3e", s.Result.History[n-1]))
	}

	b.WriteString("\n")
	x := s.Result.X
	shown := len(x)
	if limit > 0 && shown > limit {
		shown = limit
	}
	for i := 0; i < shown; i++ {
		row(fmt.Sprintf("x[%d]", i), fmt.Sprintf("%.10g", x[i]))
	}
	if shown < len(x) {
		b.WriteString(Subtle.Render(fmt.Sprintf("… %d more", len(x)-shown)))
		b.WriteByte('\n')
	}

	if len(s.Result.History) > 1 {
		b.WriteString("\n")
		b.WriteString(MetricLabel.Render("log|Δ|    "))
		b.WriteString(Sparkline(s.Result.History, 40))
		b.WriteByte('\n')
	}

	if problems := s.Inspection.Problems(); len(problems) > 0 {
		b.WriteString("\n")
		for _, p := range problems {
			b.WriteString(StatusWarn.Render("! " + p))
			b.WriteByte('\n')
		}
	}

	return Panel.Render(strings.TrimRight(b.String(), "\n"))
}
