package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/nrsolve/internal/linalg"
	"github.com/san-kum/nrsolve/internal/newton"
	"github.com/san-kum/nrsolve/internal/report"
)

const (
	historyLen  = 240
	shownValues = 6
	barWidth    = 40
)

// RunFunc performs one solve, reporting through obs.
type RunFunc func(ctx context.Context, obs newton.Observer) (*newton.Result, error)

type progressMsg struct {
	step int
	text string
}

type stepMsg struct {
	step     int
	x        linalg.Vector
	maxDelta float64
}

type doneMsg struct {
	res *newton.Result
	err error
}

// channelObserver forwards solver notifications to the UI. Sends never
// block: when the UI falls behind, intermediate notifications are dropped.
type channelObserver struct {
	ch chan tea.Msg
}

func (o channelObserver) OnProgress(step int, msg string) {
	o.send(progressMsg{step: step, text: msg})
}

func (o channelObserver) OnStep(step int, x linalg.Vector, maxDelta float64) {
	o.send(stepMsg{step: step, x: x.Clone(), maxDelta: maxDelta})
}

func (o channelObserver) send(msg tea.Msg) {
	select {
	case o.ch <- msg:
	default:
	}
}

type Live struct {
	title  string
	run    RunFunc
	events chan tea.Msg
	ctx    context.Context
	cancel context.CancelFunc

	step    int
	text    string
	failed  bool
	deltas  []float64
	x       linalg.Vector
	started time.Time
	res     *newton.Result
	err     error
	done    bool

	width int
}

func NewLive(title string, run RunFunc) Live {
	ctx, cancel := context.WithCancel(context.Background())
	return Live{
		title:   title,
		run:     run,
		events:  make(chan tea.Msg, 256),
		ctx:     ctx,
		cancel:  cancel,
		text:    "initializing model",
		deltas:  make([]float64, 0, historyLen),
		started: time.Now(),
		width:   80,
	}
}

func (m Live) Init() tea.Cmd {
	return tea.Batch(m.solve(), wait(m.events))
}

func (m Live) solve() tea.Cmd {
	obs := channelObserver{ch: m.events}
	return func() tea.Msg {
		res, err := m.run(m.ctx, obs)
		return doneMsg{res: res, err: err}
	}
}

func wait(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg { return <-ch }
}

func (m Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.cancel()
			return m, tea.Quit
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case progressMsg:
		if m.done {
			return m, nil
		}
		m.text = msg.text
		if msg.step == newton.FailureStep {
			m.failed = true
		} else {
			m.step = msg.step
		}
		return m, wait(m.events)
	case stepMsg:
		if m.done {
			return m, nil
		}
		m.step = msg.step
		m.x = msg.x
		m.deltas = append(m.deltas, msg.maxDelta)
		if len(m.deltas) > historyLen {
			m.deltas = m.deltas[len(m.deltas)-historyLen:]
		}
		return m, wait(m.events)
	case doneMsg:
		m.done = true
		m.res, m.err = msg.res, msg.err
		if m.res != nil {
			m.x = m.res.X
			m.step = m.res.Steps
		}
		m.cancel()
		return m, nil
	}
	return m, nil
}

// Percent is the overall progress shown in the bar.
func (m Live) Percent() int {
	switch {
	case m.done && m.err == nil:
		return PhaseDone
	case m.step == 0:
		return PhaseModel
	}
	pct, _ := ProgressPercent(m.step)
	return pct
}

func (m Live) View() string {
	var b strings.Builder

	b.WriteString("\n  " + report.Title.Render(m.title) + "\n")
	b.WriteString("  " + report.Separator(min(m.width-4, 60)) + "\n\n")

	pct := m.Percent()
	b.WriteString(fmt.Sprintf("  %s %3d%%\n\n", report.ProgressBar(float64(pct)/100, barWidth), pct))

	b.WriteString("  " + report.MetricLabel.Render(fmt.Sprintf("%-9s", "step")) +
		report.MetricValue.Render(fmt.Sprintf("%d", m.step)) + "\n")
	b.WriteString("  " + report.MetricLabel.Render(fmt.Sprintf("%-9s", "elapsed")) +
		report.MetricValue.Render(time.Since(m.started).Round(time.Millisecond).String()) + "\n")
	if n := len(m.deltas); n > 0 {
		b.WriteString("  " + report.MetricLabel.Render(fmt.Sprintf("%-9s", "|Δ|")) +
			report.MetricValue.Render(fmt.Sprintf("%.3e", m.deltas[n-1])) + "\n")
		b.WriteString("  " + report.MetricLabel.Render(fmt.Sprintf("%-9s", "log|Δ|")) +
			report.Sparkline(m.deltas, barWidth) + "\n")
	}

	b.WriteString("\n")
	for i, v := range m.x {
		if i >= shownValues {
			b.WriteString("  " + report.Subtle.Render(fmt.Sprintf("… %d more", len(m.x)-shownValues)) + "\n")
			break
		}
		b.WriteString("  " + report.MetricLabel.Render(fmt.Sprintf("x[%d]     ", i)) +
			report.MetricValue.Render(fmt.Sprintf("%.10g", v)) + "\n")
	}

	b.WriteString("\n  " + m.statusLine() + "\n\n")
	b.WriteString("  " + report.KeyHint.Render("q quit") + "\n")
	return b.String()
}

func (m Live) statusLine() string {
	switch {
	case m.failed || (m.done && m.err != nil):
		text := m.text
		if m.err != nil {
			text = m.err.Error()
		}
		return report.StatusFail.Render("✗ " + text)
	case m.done && m.res != nil && m.res.Status == newton.StatusBudgetExhausted:
		return report.StatusWarn.Render("● " + m.res.Status.String())
	case m.done && m.res != nil:
		return report.StatusOK.Render("● " + m.res.Status.String())
	}
	return report.Subtle.Render(m.text + "…")
}

func (m Live) Done() bool { return m.done }

// Result is the outcome of the solve. It is meaningful only once Done.
func (m Live) Result() (*newton.Result, error) {
	return m.res, m.err
}

// RunLive shows a solve in the terminal until it finishes and the user
// quits. Quitting early cancels the solve.
func RunLive(title string, run RunFunc) (*newton.Result, error) {
	final, err := tea.NewProgram(NewLive(title, run), tea.WithAltScreen()).Run()
	if err != nil {
		return nil, err
	}
	live := final.(Live)
	if !live.Done() {
		return nil, context.Canceled
	}
	return live.Result()
}
