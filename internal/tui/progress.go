// Package tui is the interactive terminal view of a running solve.
package tui

// Overall progress of a CLI solve, in percent. Newton steps fill the band
// between PhaseModel and PhaseAnalysis.
const (
	PhaseInit     = 0
	PhaseModel    = 20
	PhaseAnalysis = 90
	PhaseDone     = 100
)

// ProgressPercent maps a 1-based Newton step onto the iteration band. The
// curve approaches PhaseAnalysis without reaching it, so an unbounded solve
// never looks finished. Negative steps are failure sentinels and report
// false.
func ProgressPercent(step int) (int, bool) {
	if step < 0 {
		return PhaseInit, false
	}
	p := float64(step)
	pct := int((p+p)/(p+(100+p))*70 + 20)
	return min(max(pct, PhaseModel), PhaseAnalysis), true
}
