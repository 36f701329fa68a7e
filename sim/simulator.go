// sim/simulator.go
package sim

import (
	"github.com/sirupsen/logrus"
)

// Outcome is the state of a simulation run.
type Outcome string

const (
	OutcomeRunning Outcome = "running"
	OutcomeExited  Outcome = "exited"  // the guard stepped off the grid
	OutcomeLooping Outcome = "looping" // a (position, heading) state repeated
)

// VisitedState is a (position, heading) pair, the unit of cycle detection.
type VisitedState struct {
	Pos     Position
	Heading Heading
}

// Simulator steps a guard across a GridMap until it leaves the grid or loops.
//
// Thread-safety: NOT thread-safe. Each trial must own its Simulator.
type Simulator struct {
	Grid    *GridMap
	Pos     Position
	Heading Heading
	Outcome Outcome
	// Path holds the start state followed by one entry per forward move.
	// Turns change Heading but do not append.
	Path []VisitedState
	// seen holds every state reached so far, including states reached by turning.
	seen  map[VisitedState]struct{}
	Steps int
}

// NewSimulator places a guard at the grid's start state.
func NewSimulator(grid *GridMap) *Simulator {
	start := VisitedState{Pos: grid.Start(), Heading: grid.StartHeading()}
	s := &Simulator{
		Grid:    grid,
		Pos:     start.Pos,
		Heading: start.Heading,
		Outcome: OutcomeRunning,
		Path:    []VisitedState{start},
		seen:    make(map[VisitedState]struct{}, grid.Height()+grid.Width()),
	}
	s.seen[start] = struct{}{}
	return s
}

// Step performs one transition. It is a no-op once the outcome is final.
func (sim *Simulator) Step() Outcome {
	if sim.Outcome != OutcomeRunning {
		return sim.Outcome
	}
	ahead := Advance(sim.Pos, sim.Heading)
	if !sim.Grid.InBounds(ahead) {
		sim.Outcome = OutcomeExited
		return sim.Outcome
	}

	sim.Steps++
	if sim.Grid.IsObstacle(ahead) {
		sim.Heading = sim.Heading.TurnRight()
	} else {
		sim.Pos = ahead
		sim.Path = append(sim.Path, VisitedState{Pos: sim.Pos, Heading: sim.Heading})
	}

	state := VisitedState{Pos: sim.Pos, Heading: sim.Heading}
	if _, ok := sim.seen[state]; ok {
		sim.Outcome = OutcomeLooping
		return sim.Outcome
	}
	sim.seen[state] = struct{}{}
	return sim.Outcome
}

// Run steps until the guard exits or loops. Every transition reaches a state
// not seen before, so Run returns within Height*Width*4 steps.
func (sim *Simulator) Run() *Result {
	traceEnabled := logrus.IsLevelEnabled(logrus.TraceLevel)
	for sim.Outcome == OutcomeRunning {
		sim.Step()
		if traceEnabled {
			logrus.Tracef("[step %06d] guard at %v facing %v", sim.Steps, sim.Pos, sim.Heading)
		}
	}
	return &Result{Outcome: sim.Outcome, Path: sim.Path, Steps: sim.Steps}
}

// Simulate runs a fresh Simulator on grid.
func Simulate(grid *GridMap) *Result {
	return NewSimulator(grid).Run()
}

// Result is the summary of one finished run.
type Result struct {
	Outcome Outcome
	Path    []VisitedState
	Steps   int // transitions taken, turns included
}

// Positions returns the distinct positions on the path in first-visit order.
func (r *Result) Positions() []Position {
	seen := make(map[Position]struct{}, len(r.Path))
	out := make([]Position, 0, len(r.Path))
	for _, v := range r.Path {
		if _, ok := seen[v.Pos]; ok {
			continue
		}
		seen[v.Pos] = struct{}{}
		out = append(out, v.Pos)
	}
	return out
}

// DistinctPositions counts positions visited regardless of heading.
func (r *Result) DistinctPositions() int {
	return len(r.Positions())
}
