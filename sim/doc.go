// Package sim provides the guard patrol simulation kernel.
//
// # Reading Guide
//
// Start with these three files to understand the kernel:
//   - heading.go: Heading enum, TurnRight and Advance
//   - grid.go: GridMap parsing, bounds and obstacle queries, WithAddedObstacle
//   - simulator.go: the Running → Exited | Looping state machine and its Path
//
// # Architecture
//
// The sim package defines the kernel; drivers live in sub-packages:
//   - sim/search/: exhaustive single-obstacle candidate search on a worker pool
//   - sim/trace/: per-trial trace recording and summaries
//   - sim/gridgen/: seeded random grid generation
//
// A GridMap is never written after parsing. Trials derive their own map with
// WithAddedObstacle, so any number of simulations may read one base map at once.
package sim
