package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/guard-sim/guard-sim/sim/gridgen"
)

var (
	genHeight  int
	genWidth   int
	genDensity float64
	genSeed    int64
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a random grid to stdout",
	Long:  "Generate a random grid with a single guard start marker. Output is written to stdout for piping into run --input.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := gridgen.Config{Height: genHeight, Width: genWidth, Density: genDensity, Seed: genSeed}
		if err := writeGrid(os.Stdout, cfg); err != nil {
			logrus.Fatalf("Grid generation failed: %v", err)
		}
	},
}

// writeGrid renders a generated grid to w, one row per line.
func writeGrid(w io.Writer, cfg gridgen.Config) error {
	lines, err := gridgen.Lines(cfg)
	if err != nil {
		return err
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return fmt.Errorf("writing grid: %w", err)
		}
	}
	return nil
}

func init() {
	generateCmd.Flags().IntVar(&genHeight, "height", 10, "Grid rows")
	generateCmd.Flags().IntVar(&genWidth, "width", 10, "Grid columns")
	generateCmd.Flags().Float64Var(&genDensity, "density", 0.1, "Probability that a cell is an obstacle")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 42, "Seed for grid generation")
}
