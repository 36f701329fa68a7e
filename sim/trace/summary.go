package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalTrials  int
	LoopingCount int
	ExitedCount  int
	SkippedCount int
	MeanSteps    float64 // over simulated (non-skipped) trials
	MaxSteps     int
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{}
	if st == nil {
		return summary
	}

	summary.TotalTrials = len(st.Trials)
	totalSteps := 0
	for _, r := range st.Trials {
		switch r.Outcome {
		case OutcomeLooping:
			summary.LoopingCount++
		case OutcomeExited:
			summary.ExitedCount++
		default:
			summary.SkippedCount++
			continue
		}
		totalSteps += r.Steps
		if r.Steps > summary.MaxSteps {
			summary.MaxSteps = r.Steps
		}
	}

	if simulated := summary.LoopingCount + summary.ExitedCount; simulated > 0 {
		summary.MeanSteps = float64(totalSteps) / float64(simulated)
	}
	return summary
}
