package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/guard-sim/guard-sim/sim"
	"github.com/guard-sim/guard-sim/sim/search"
	"github.com/guard-sim/guard-sim/sim/trace"
)

var (
	// CLI flags for the run command
	inputPath  string // Grid file to simulate
	workers    int    // Concurrent candidate trials (0 = NumCPU)
	scope      string // Candidate cells: path or all
	traceLevel string // Trial tracing: none or trials
	outputFmt  string // Report format: text or json
	configPath string // Optional YAML run config
	logLevel   string // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "guard-sim",
	Short: "Grid guard patrol simulator and loop-obstacle search",
}

// runCmd simulates the guard on a grid and searches for loop-inducing obstacles
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate the guard and count loop-inducing obstacles",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := resolveRunConfig(cmd.Flags())
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		// Set up logging
		level, err := logrus.ParseLevel(cfg.Log)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", cfg.Log)
		}
		logrus.SetLevel(level)

		if err := cfg.Validate(); err != nil {
			logrus.Fatalf("Invalid run configuration: %v", err)
		}
		if err := runSimulation(cmd.Context(), cfg, os.Stdout); err != nil {
			logrus.Fatalf("%v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// resolveRunConfig merges the optional config file with flags. A flag only
// overrides the file when the user set it explicitly.
func resolveRunConfig(flags *pflag.FlagSet) (*RunConfig, error) {
	cfg := &RunConfig{}
	if configPath != "" {
		fileCfg, err := loadRunConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}
	override := func(name string, apply func()) {
		if flags.Changed(name) || isZeroField(name, cfg) {
			apply()
		}
	}
	override("input", func() { cfg.Input = inputPath })
	override("workers", func() { cfg.Workers = workers })
	override("scope", func() { cfg.Scope = scope })
	override("trace", func() { cfg.Trace = traceLevel })
	override("output", func() { cfg.Output = outputFmt })
	override("log", func() { cfg.Log = logLevel })
	return cfg, nil
}

// isZeroField reports whether the config left a field unset, so the flag default applies.
func isZeroField(name string, cfg *RunConfig) bool {
	switch name {
	case "input":
		return cfg.Input == ""
	case "workers":
		return cfg.Workers == 0
	case "scope":
		return cfg.Scope == ""
	case "trace":
		return cfg.Trace == ""
	case "output":
		return cfg.Output == ""
	case "log":
		return cfg.Log == ""
	}
	return false
}

// runSimulation loads the grid, runs the baseline and the candidate search, and writes the report.
func runSimulation(ctx context.Context, cfg *RunConfig, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	f, err := os.Open(cfg.Input)
	if err != nil {
		return fmt.Errorf("opening grid: %w", err)
	}
	defer func() { _ = f.Close() }()

	grid, err := sim.ReadGrid(f)
	if err != nil {
		return fmt.Errorf("loading grid %s: %w", cfg.Input, err)
	}
	logrus.Infof("Loaded %dx%d grid with %d obstacles, guard at %v", grid.Height(), grid.Width(), grid.ObstacleCount(), grid.Start())

	baseline := sim.Simulate(grid)
	if baseline.Outcome == sim.OutcomeLooping {
		logrus.Warnf("Unmodified guard never leaves the grid; every trial will loop")
	}
	metrics := sim.NewMetrics(grid, baseline)

	startTime := time.Now()
	found, err := search.Search(ctx, grid, baseline, cfg.searchConfig())
	if err != nil {
		return err
	}
	metrics.RecordSearch(found.Count(), found.Trials, found.Skipped, time.Since(startTime))

	if cfg.Output == "json" {
		return metrics.SaveResults(w)
	}
	fmt.Fprintf(w, "The answer for part 1 is: %d\n", metrics.DistinctPositions)
	fmt.Fprintf(w, "The answer for part 2 is: %d\n", metrics.LoopCandidates)
	metrics.Print(w)
	if found.Trace != nil {
		printTraceSummary(w, trace.Summarize(found.Trace))
	}
	return nil
}

func printTraceSummary(w io.Writer, s *trace.TraceSummary) {
	fmt.Fprintln(w, "=== Trial Trace ===")
	fmt.Fprintf(w, "Trials               : %d\n", s.TotalTrials)
	fmt.Fprintf(w, "Looping / Exited     : %d / %d\n", s.LoopingCount, s.ExitedCount)
	fmt.Fprintf(w, "Skipped              : %d\n", s.SkippedCount)
	fmt.Fprintf(w, "Steps (mean / max)   : %.2f / %d\n", s.MeanSteps, s.MaxSteps)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&inputPath, "input", "", "Grid file to simulate")
	runCmd.Flags().IntVar(&workers, "workers", 0, "Concurrent candidate trials (0 = number of CPUs)")
	runCmd.Flags().StringVar(&scope, "scope", string(search.ScopePath), "Candidate cells to try: path or all")
	runCmd.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Trial tracing: none or trials")
	runCmd.Flags().StringVar(&outputFmt, "output", "text", "Report format: text or json")
	runCmd.Flags().StringVar(&configPath, "config", "", "YAML run config; explicit flags override it")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(generateCmd)
}
