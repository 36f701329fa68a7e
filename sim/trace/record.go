// Package trace provides per-trial recording for candidate obstacle searches.
// It has no dependencies on sim/ or sim/search/ and stores pure data types.
package trace

// TrialRecord captures the result of simulating one candidate obstacle.
type TrialRecord struct {
	Row     int
	Col     int
	Outcome string // "exited", "looping", or "skipped" for invalid placements
	Steps   int
	PathLen int
	Reason  string // populated for skipped trials
}

// Looping reports whether the trial ended in a loop.
func (r TrialRecord) Looping() bool {
	return r.Outcome == OutcomeLooping
}

const (
	OutcomeExited  = "exited"
	OutcomeLooping = "looping"
	OutcomeSkipped = "skipped"
)
