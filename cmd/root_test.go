package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const canonicalGrid = `....#.....
.........#
..........
..#.......
.......#..
..........
.#..^.....
........#.
#.........
......#...
`

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunSimulation_TextReport_PrintsBothAnswers(t *testing.T) {
	// GIVEN the canonical grid on disk
	cfg := &RunConfig{Input: writeTempFile(t, "grid.txt", canonicalGrid), Workers: 2}

	// WHEN the simulation runs
	var buf bytes.Buffer
	require.NoError(t, runSimulation(context.Background(), cfg, &buf))

	// THEN both answers and the metrics header appear
	out := buf.String()
	assert.Contains(t, out, "The answer for part 1 is: 41")
	assert.Contains(t, out, "The answer for part 2 is: 6")
	assert.Contains(t, out, "Simulation Metrics")
	assert.NotContains(t, out, "Trial Trace")
}

func TestRunSimulation_JSONReport(t *testing.T) {
	cfg := &RunConfig{Input: writeTempFile(t, "grid.txt", canonicalGrid), Output: "json"}

	var buf bytes.Buffer
	require.NoError(t, runSimulation(context.Background(), cfg, &buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.EqualValues(t, 41, decoded["distinct_positions"])
	assert.EqualValues(t, 6, decoded["loop_candidates"])
	assert.EqualValues(t, 40, decoded["trials"])
}

func TestRunSimulation_TraceSummary(t *testing.T) {
	cfg := &RunConfig{Input: writeTempFile(t, "grid.txt", canonicalGrid), Trace: "trials", Scope: "all"}

	var buf bytes.Buffer
	require.NoError(t, runSimulation(context.Background(), cfg, &buf))

	out := buf.String()
	assert.Contains(t, out, "=== Trial Trace ===")
	assert.Contains(t, out, "Looping / Exited     : 6 / 85")
	assert.Contains(t, out, "The answer for part 2 is: 6")
}

func TestRunSimulation_MissingStartMarker_IsMalformed(t *testing.T) {
	cfg := &RunConfig{Input: writeTempFile(t, "grid.txt", "...\n.#.\n")}

	err := runSimulation(context.Background(), cfg, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed input")
}

func TestRunSimulation_MissingFile(t *testing.T) {
	cfg := &RunConfig{Input: filepath.Join(t.TempDir(), "nope.txt")}
	err := runSimulation(context.Background(), cfg, &bytes.Buffer{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

// newTestFlags binds a fresh flag set to the run command's variables.
func newTestFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("run", pflag.ContinueOnError)
	flags.StringVar(&inputPath, "input", "", "")
	flags.IntVar(&workers, "workers", 0, "")
	flags.StringVar(&scope, "scope", "path", "")
	flags.StringVar(&traceLevel, "trace", "none", "")
	flags.StringVar(&outputFmt, "output", "text", "")
	flags.StringVar(&configPath, "config", "", "")
	flags.StringVar(&logLevel, "log", "error", "")
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestResolveRunConfig_FlagsOnly_UsesDefaults(t *testing.T) {
	flags := newTestFlags(t, "--input", "grid.txt")

	cfg, err := resolveRunConfig(flags)
	require.NoError(t, err)

	assert.Equal(t, &RunConfig{Input: "grid.txt", Scope: "path", Trace: "none", Output: "text", Log: "error"}, cfg)
}

func TestResolveRunConfig_ExplicitFlagOverridesFile(t *testing.T) {
	// GIVEN a config file that sets workers and scope
	path := writeTempFile(t, "run.yaml", "input: from-file.txt\nworkers: 4\nscope: all\n")

	// WHEN --workers is passed explicitly
	flags := newTestFlags(t, "--config", path, "--workers", "2")
	cfg, err := resolveRunConfig(flags)
	require.NoError(t, err)

	// THEN the flag wins, unset flags keep the file values, and untouched keys get flag defaults
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "all", cfg.Scope)
	assert.Equal(t, "from-file.txt", cfg.Input)
	assert.Equal(t, "text", cfg.Output)
}

func TestExecute_HelpListsSubcommands(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"--help"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	out := buf.String()
	assert.True(t, strings.Contains(out, "run") && strings.Contains(out, "generate"), "help output: %s", out)
}
