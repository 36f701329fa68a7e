// Package search finds single-cell obstacle insertions that trap the guard in a loop.
//
// Every trial derives its own GridMap from the base with one added obstacle and
// runs a fresh sim.Simulator on it, so trials share no mutable state and can run
// on any number of workers. Per-trial results land in a slot indexed by the
// trial's candidate position and are reduced once all workers finish.
package search

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/guard-sim/guard-sim/sim"
	"github.com/guard-sim/guard-sim/sim/trace"
)

// Scope selects which cells are tried as obstacle candidates.
type Scope string

const (
	// ScopePath tries cells on the baseline path, excluding the start cell.
	// A cell off the path cannot change the trajectory, so when the baseline
	// exits this finds the same candidates as ScopeAll with fewer trials.
	ScopePath Scope = "path"
	// ScopeAll tries every in-bounds cell.
	ScopeAll Scope = "all"
)

// ValidScopes is the set of recognized scope names.
var ValidScopes = map[string]bool{"": true, string(ScopePath): true, string(ScopeAll): true}

// Config controls a candidate search.
type Config struct {
	Workers int   // concurrent trials; 0 = runtime.NumCPU()
	Scope   Scope // "" = ScopePath
	Trace   trace.TraceConfig
}

// Validate checks the scope and worker count.
func (c Config) Validate() error {
	if !ValidScopes[string(c.Scope)] {
		return fmt.Errorf("unknown search scope %q", c.Scope)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	if !trace.IsValidTraceLevel(string(c.Trace.Level)) {
		return fmt.Errorf("unknown trace level %q", c.Trace.Level)
	}
	return nil
}

// Result holds the candidates found by a search.
type Result struct {
	Candidates []sim.Position // row-major order
	Trials     int            // candidate cells considered, skipped ones included
	Skipped    int            // cells rejected by WithAddedObstacle
	Trace      *trace.SimulationTrace
}

// Count returns the number of loop-inducing cells.
func (r *Result) Count() int {
	return len(r.Candidates)
}

// trialOutcome is the per-trial slot written by exactly one worker.
type trialOutcome struct {
	cell    sim.Position
	skipped bool
	reason  string
	result  *sim.Result
}

// Candidates lists the cells to try for the given scope, in a deterministic order.
func Candidates(grid *sim.GridMap, baseline *sim.Result, scope Scope) []sim.Position {
	if scope == ScopeAll {
		cells := make([]sim.Position, 0, grid.Height()*grid.Width())
		for r := 0; r < grid.Height(); r++ {
			for c := 0; c < grid.Width(); c++ {
				cells = append(cells, sim.Position{Row: r, Col: c})
			}
		}
		return cells
	}
	cells := make([]sim.Position, 0, len(baseline.Path))
	for _, p := range baseline.Positions() {
		if p == grid.Start() {
			continue
		}
		cells = append(cells, p)
	}
	return cells
}

// Search tries each candidate cell as an extra obstacle and collects the cells
// that make the guard loop. baseline must be the unmodified run on grid.
// grid is never modified.
func Search(ctx context.Context, grid *sim.GridMap, baseline *sim.Result, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	cells := Candidates(grid, baseline, cfg.Scope)
	outcomes := make([]trialOutcome, len(cells))
	logrus.Debugf("searching %d candidate cells on %d workers", len(cells), workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, cell := range cells {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = runTrial(grid, cell)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("candidate search: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("candidate search: %w", err)
	}

	res := &Result{Trials: len(cells)}
	if cfg.Trace.Enabled() {
		res.Trace = trace.NewSimulationTrace(cfg.Trace)
	}
	for _, o := range outcomes {
		if res.Trace != nil {
			res.Trace.RecordTrial(o.record())
		}
		if o.skipped {
			res.Skipped++
			continue
		}
		if o.result.Outcome == sim.OutcomeLooping {
			logrus.Debugf("obstacle at %v traps the guard after %d steps", o.cell, o.result.Steps)
			res.Candidates = append(res.Candidates, o.cell)
		}
	}
	sort.Slice(res.Candidates, func(i, j int) bool {
		a, b := res.Candidates[i], res.Candidates[j]
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		return a.Col < b.Col
	})
	logrus.Infof("found %d loop candidates in %d trials (%d skipped)", res.Count(), res.Trials, res.Skipped)
	return res, nil
}

// runTrial simulates grid with one extra obstacle at cell.
func runTrial(grid *sim.GridMap, cell sim.Position) trialOutcome {
	trial, err := grid.WithAddedObstacle(cell)
	if err != nil {
		return trialOutcome{cell: cell, skipped: true, reason: err.Error()}
	}
	return trialOutcome{cell: cell, result: sim.Simulate(trial)}
}

func (o trialOutcome) record() trace.TrialRecord {
	rec := trace.TrialRecord{Row: o.cell.Row, Col: o.cell.Col}
	if o.skipped {
		rec.Outcome = trace.OutcomeSkipped
		rec.Reason = o.reason
		return rec
	}
	rec.Outcome = string(o.result.Outcome)
	rec.Steps = o.result.Steps
	rec.PathLen = len(o.result.Path)
	return rec
}
