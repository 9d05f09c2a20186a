package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/nrsolve/internal/bench"
	"github.com/san-kum/nrsolve/internal/config"
	"github.com/san-kum/nrsolve/internal/linsolve"
	"github.com/san-kum/nrsolve/internal/models"
	"github.com/san-kum/nrsolve/internal/newton"
	"github.com/san-kum/nrsolve/internal/report"
	"github.com/san-kum/nrsolve/internal/storage"
	"github.com/san-kum/nrsolve/internal/tui"
)

var registry = models.NewRegistry()

// resolveConfig layers the solve settings: defaults, then a preset, then a
// config file, then any flag given on the command line.
func resolveConfig(cmd *cobra.Command, model string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(model, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(model))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	cfg.Model = model

	flags := cmd.Flags()
	if flags.Changed("method") || cfg.Method == "" {
		cfg.Method = method
	}
	if flags.Changed("eps") {
		cfg.Epsilon = epsilon
	}
	if flags.Changed("max-steps") {
		cfg.MaxSteps = maxSteps
	}
	if flags.Changed("guess") {
		cfg.InitialGuess = guess
	}
	if flags.Changed("pivot-eps") {
		cfg.PivotEpsilon = pivotEps
	}
	for _, kv := range params {
		key, value, err := parseParam(kv)
		if err != nil {
			return nil, err
		}
		cfg.SetParam(key, value)
	}
	return cfg, nil
}

func parseParam(kv string) (string, float64, error) {
	key, raw, ok := strings.Cut(kv, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", 0, fmt.Errorf("invalid param %q, want key=value", kv)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return "", 0, fmt.Errorf("param %s: %w", key, err)
	}
	return key, v, nil
}

// setup builds the model and linear solver named by cfg.
func setup(cfg *config.Config) (newton.Model, linsolve.Solver, error) {
	m, err := registry.Get(cfg.Model, models.Params(cfg.Params))
	if err != nil {
		return nil, nil, err
	}
	ls, err := cfg.LinearSolver()
	if err != nil {
		return nil, nil, err
	}
	return m, ls, nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}
	m, ls, err := setup(cfg)
	if err != nil {
		return err
	}

	opts := []newton.Option{
		newton.WithLinearSolver(ls),
		newton.WithLogger(logger),
	}
	if iterates {
		opts = append(opts, newton.WithIterates())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("solving", "model", cfg.Model, "method", ls.Name(), "unknowns", m.VectorSize())
	res, err := newton.New(opts...).Solve(ctx, m, cfg.Newton())
	if res == nil {
		return err
	}

	if saveErr := finish(cfg, m, ls, res); saveErr != nil {
		return saveErr
	}
	return err
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}
	m, ls, err := setup(cfg)
	if err != nil {
		return err
	}
	if err := cfg.Newton().Ready(); err != nil {
		return err
	}

	run := func(ctx context.Context, obs newton.Observer) (*newton.Result, error) {
		opts := []newton.Option{newton.WithLinearSolver(ls), newton.WithObserver(obs)}
		if iterates {
			opts = append(opts, newton.WithIterates())
		}
		return newton.New(opts...).Solve(ctx, m, cfg.Newton())
	}

	title := fmt.Sprintf("%s · %s", cfg.Model, ls.Name())
	res, err := tui.RunLive(title, run)
	if res == nil {
		return err
	}
	if saveErr := finish(cfg, m, ls, res); saveErr != nil {
		return saveErr
	}
	return err
}

// finish prints the summary of a solve and stores the run.
func finish(cfg *config.Config, m newton.Model, ls linsolve.Solver, res *newton.Result) error {
	summary := report.Summarize(cfg.Model, ls.Name(), m, res)
	fmt.Println(summary.Render(limit))

	problems := summary.Inspection.Problems()
	for _, p := range problems {
		logger.Warn(p)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg, res, problems)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}
	m, err := registry.Get(cfg.Model, models.Params(cfg.Params))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	entries, err := bench.Compare(ctx, m, cfg.Newton(), linsolve.WithEpsilon(cfg.PivotEpsilon))
	if entries == nil {
		return err
	}

	fmt.Printf("comparing linear solvers for %s (eps=%g, max steps=%d, guess=%g)\n\n",
		cfg.Model, cfg.Epsilon, cfg.MaxSteps, cfg.InitialGuess)
	fmt.Println(bench.Render(entries))
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tMETHOD\tTIME\tSTATUS\tSTEPS\tELAPSED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			run.ID,
			run.Model,
			run.Method,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Status,
			run.Steps,
			run.Elapsed,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "run:\t%s\n", meta.ID)
	fmt.Fprintf(w, "model:\t%s\n", meta.Model)
	fmt.Fprintf(w, "method:\t%s\n", meta.Method)
	fmt.Fprintf(w, "time:\t%s\n", meta.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "status:\t%s\n", meta.Status)
	fmt.Fprintf(w, "steps:\t%d\n", meta.Steps)
	fmt.Fprintf(w, "elapsed:\t%s\n", meta.Elapsed)
	fmt.Fprintf(w, "epsilon:\t%g\n", meta.Config.Epsilon)
	fmt.Fprintf(w, "max steps:\t%d\n", meta.Config.MaxSteps)
	fmt.Fprintf(w, "guess:\t%g\n", meta.Config.InitialGuess)
	for _, k := range sortedKeys(meta.Config.Params) {
		fmt.Fprintf(w, "  %s:\t%g\n", k, meta.Config.Params[k])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	shown := len(meta.Solution)
	if limit > 0 && shown > limit {
		shown = limit
	}
	for i := 0; i < shown; i++ {
		fmt.Printf("x[%d] = %.10g\n", i, meta.Solution[i])
	}
	if shown < len(meta.Solution) {
		fmt.Printf("... %d more\n", len(meta.Solution)-shown)
	}
	for _, p := range meta.Problems {
		fmt.Printf("! %s\n", p)
	}
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	tr, err := st.LoadIterates(runID)
	if err != nil {
		return err
	}

	var deltas, xs []float64
	for i, step := range tr.Steps {
		if step == 0 {
			continue
		}
		deltas = append(deltas, report.LogDelta(tr.MaxDelta[i]))
		if component >= 0 && i < len(tr.X) && component < len(tr.X[i]) {
			xs = append(xs, tr.X[i][component])
		}
	}
	if len(deltas) == 0 {
		return errors.New("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("steps: %d\n\n", len(deltas))

	fmt.Println(asciigraph.Plot(deltas,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("log10 max |Δx| per step"),
	))

	if component >= 0 {
		if len(xs) == 0 {
			return fmt.Errorf("no iterates for x[%d]; solve with --iterates", component)
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(xs,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("x[%d] per step", component)),
		))
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	tr, err := st.LoadIterates(runID)
	if err != nil {
		return err
	}
	return storage.ExportJSON(outPath, meta, tr)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	tr, err := st.LoadIterates(runID)
	if err != nil {
		return err
	}
	if len(tr.Steps) == 0 {
		return errors.New("no data to export")
	}
	return storage.WriteCSV(os.Stdout, tr, len(meta.Solution))
}

func listModels(cmd *cobra.Command, args []string) error {
	for _, name := range registry.List() {
		fmt.Printf("%s\n  %s\n", report.Title.Render(name), registry.Describe(name))
		defaults := registry.Defaults(name)
		for _, k := range sortedKeys(defaults) {
			fmt.Printf("    %-10s %g\n", k, defaults[k])
		}
		if presets := config.ListPresets(name); len(presets) > 0 {
			fmt.Printf("  presets: %s\n", strings.Join(presets, ", "))
		}
	}
	return nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
