package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/nrsolve/internal/config"
)

var (
	dataDir string
	verbose bool

	method     string
	epsilon    float64
	maxSteps   int
	guess      float64
	pivotEps   float64
	params     []string
	configFile string
	preset     string
	iterates   bool

	limit     int
	outPath   string
	component int
)

var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "nrsolve"})

// main registers the commands and exits with status 1 when one fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "nrsolve",
		Short:         "newton-raphson solver for nonlinear systems",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".nrsolve", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every iteration")

	solveCmd := &cobra.Command{
		Use:   "solve [model]",
		Short: "solve a model and store the run",
		Args:  cobra.ExactArgs(1),
		RunE:  runSolve,
	}
	addSolveFlags(solveCmd)
	solveCmd.Flags().BoolVar(&iterates, "iterates", false, "record every iterate")
	solveCmd.Flags().IntVar(&limit, "show", 8, "solution components to print (0 for all)")

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "solve with live progress",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addSolveFlags(liveCmd)
	liveCmd.Flags().BoolVar(&iterates, "iterates", false, "record every iterate")
	liveCmd.Flags().IntVar(&limit, "show", 8, "solution components to print (0 for all)")

	compareCmd := &cobra.Command{
		Use:   "compare [model]",
		Short: "compare linear solvers on the same model",
		Args:  cobra.ExactArgs(1),
		RunE:  runCompare,
	}
	addSolveFlags(compareCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().IntVar(&limit, "show", 8, "solution components to print (0 for all)")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot convergence of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&component, "component", -1, "also plot this solution component (needs --iterates)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "output", "o", "-", "output file, - for stdout")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run iterates to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list models and their parameters",
		RunE:  listModels,
	}

	rootCmd.AddCommand(solveCmd, liveCmd, compareCmd, listCmd, showCmd, plotCmd,
		exportJSONCmd, exportCSVCmd, presetsCmd, modelsCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func addSolveFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&method, "method", "doolittle", "linear solver (doolittle, crout)")
	cmd.Flags().Float64Var(&epsilon, "eps", 1e-12, "convergence threshold on max |Δx|, 0 to disable")
	cmd.Flags().IntVar(&maxSteps, "max-steps", 10000, "iteration budget, 0 to disable")
	cmd.Flags().Float64Var(&guess, "guess", 1, "initial guess for every unknown")
	cmd.Flags().Float64Var(&pivotEps, "pivot-eps", 0, "singularity threshold, 0 keeps the method default")
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "model parameter key=value (repeatable)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}
