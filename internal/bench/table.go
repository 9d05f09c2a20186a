package bench

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/san-kum/nrsolve/internal/report"
)

// Render lays the entries out as a table.
func Render(entries []Entry) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#444466"))).
		Headers("method", "status", "steps", "elapsed", "|F(x)|", "Δ vs gonum").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return report.Title.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	for _, e := range entries {
		t.Row(Row(e)...)
	}
	return t.Render()
}

// Row formats one entry as table cells.
func Row(e Entry) []string {
	status, steps, elapsed := "error", "-", "-"
	switch {
	case e.Err != nil:
		status = e.Err.Error()
	case e.Result != nil:
		status = e.Result.Status.String()
		steps = fmt.Sprintf("%d", e.Result.Steps)
		elapsed = e.Result.Elapsed.String()
	}
	return []string{
		e.Method.String(),
		status,
		steps,
		elapsed,
		fmt.Sprintf("%.3e", e.Residual),
		fmt.Sprintf("%.3e", e.Deviation),
	}
}
