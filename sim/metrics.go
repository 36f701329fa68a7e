// Aggregates the answers and bookkeeping of one run for final reporting.

package sim

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Metrics aggregates the results of a baseline simulation and candidate search.
type Metrics struct {
	GridHeight        int     `json:"grid_height"`
	GridWidth         int     `json:"grid_width"`
	Obstacles         int     `json:"obstacles"`
	BaselineOutcome   Outcome `json:"baseline_outcome"`
	BaselineSteps     int     `json:"baseline_steps"`
	DistinctPositions int     `json:"distinct_positions"` // part one
	LoopCandidates    int     `json:"loop_candidates"`    // part two
	Trials            int     `json:"trials"`
	SkippedTrials     int     `json:"skipped_trials"`
	PathFingerprint   string  `json:"path_fingerprint"`
	SearchDurationS   float64 `json:"search_duration_s"` // wall clock, not deterministic
}

// NewMetrics fills the baseline fields from a grid and its unmodified run.
func NewMetrics(grid *GridMap, baseline *Result) *Metrics {
	return &Metrics{
		GridHeight:        grid.Height(),
		GridWidth:         grid.Width(),
		Obstacles:         grid.ObstacleCount(),
		BaselineOutcome:   baseline.Outcome,
		BaselineSteps:     baseline.Steps,
		DistinctPositions: baseline.DistinctPositions(),
		PathFingerprint:   PathFingerprint(baseline.Path),
	}
}

// RecordSearch stores the candidate search totals.
func (m *Metrics) RecordSearch(candidates, trials, skipped int, elapsed time.Duration) {
	m.LoopCandidates = candidates
	m.Trials = trials
	m.SkippedTrials = skipped
	m.SearchDurationS = elapsed.Seconds()
}

// Print writes a human-readable report.
func (m *Metrics) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Grid                 : %dx%d (%d obstacles)\n", m.GridHeight, m.GridWidth, m.Obstacles)
	fmt.Fprintf(w, "Baseline Outcome     : %s after %d steps\n", m.BaselineOutcome, m.BaselineSteps)
	fmt.Fprintf(w, "Distinct Positions   : %d\n", m.DistinctPositions)
	fmt.Fprintf(w, "Loop Candidates      : %d\n", m.LoopCandidates)
	fmt.Fprintf(w, "Trials               : %d (%d skipped)\n", m.Trials, m.SkippedTrials)
	fmt.Fprintf(w, "Path Fingerprint     : %s\n", m.PathFingerprint)
	fmt.Fprintf(w, "Search Duration      : %.4fs\n", m.SearchDurationS)
}

// SaveResults writes the metrics as indented JSON.
func (m *Metrics) SaveResults(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encoding metrics: %w", err)
	}
	return nil
}

// PathFingerprint hashes a path so two runs can be compared without storing it.
// Identical paths always produce the same fingerprint.
func PathFingerprint(path []VisitedState) string {
	h := xxhash.New()
	var buf [24]byte
	for _, v := range path {
		binary.LittleEndian.PutUint64(buf[0:8], uint64(v.Pos.Row))
		binary.LittleEndian.PutUint64(buf[8:16], uint64(v.Pos.Col))
		binary.LittleEndian.PutUint64(buf[16:24], uint64(v.Heading))
		_, _ = h.Write(buf[:])
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
