package trace

import "testing"

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	summary := Summarize(nil)
	if summary.TotalTrials != 0 || summary.MeanSteps != 0 {
		t.Errorf("expected zero summary, got %+v", summary)
	}
}

func TestSummarize_EmptyTrace_ZeroValues(t *testing.T) {
	// GIVEN an empty trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelTrials})

	// WHEN summarized
	summary := Summarize(st)

	// THEN all counts are zero
	if summary.TotalTrials != 0 {
		t.Errorf("expected 0 total trials, got %d", summary.TotalTrials)
	}
	if summary.LoopingCount != 0 || summary.ExitedCount != 0 || summary.SkippedCount != 0 {
		t.Error("expected 0 looping, exited and skipped")
	}
	if summary.MeanSteps != 0 || summary.MaxSteps != 0 {
		t.Error("expected 0 step statistics")
	}
}

func TestSummarize_PopulatedTrace_CorrectCounts(t *testing.T) {
	// GIVEN a trace with mixed outcomes
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelTrials})
	st.RecordTrial(TrialRecord{Outcome: OutcomeLooping, Steps: 10})
	st.RecordTrial(TrialRecord{Outcome: OutcomeExited, Steps: 20})
	st.RecordTrial(TrialRecord{Outcome: OutcomeLooping, Steps: 30})
	st.RecordTrial(TrialRecord{Outcome: OutcomeSkipped, Reason: "already an obstacle"})

	// WHEN summarized
	summary := Summarize(st)

	// THEN counts match
	if summary.TotalTrials != 4 {
		t.Errorf("expected 4 total trials, got %d", summary.TotalTrials)
	}
	if summary.LoopingCount != 2 {
		t.Errorf("expected 2 looping, got %d", summary.LoopingCount)
	}
	if summary.ExitedCount != 1 {
		t.Errorf("expected 1 exited, got %d", summary.ExitedCount)
	}
	if summary.SkippedCount != 1 {
		t.Errorf("expected 1 skipped, got %d", summary.SkippedCount)
	}
}

func TestSummarize_StepStatistics_IgnoreSkippedTrials(t *testing.T) {
	// GIVEN simulated trials with known step counts plus a skipped one
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelTrials})
	st.RecordTrial(TrialRecord{Outcome: OutcomeExited, Steps: 10})
	st.RecordTrial(TrialRecord{Outcome: OutcomeLooping, Steps: 50})
	st.RecordTrial(TrialRecord{Outcome: OutcomeExited, Steps: 30})
	st.RecordTrial(TrialRecord{Outcome: OutcomeSkipped, Steps: 999})

	// WHEN summarized
	summary := Summarize(st)

	// THEN mean steps = (10 + 50 + 30) / 3 = 30
	if summary.MeanSteps != 30 {
		t.Errorf("expected mean steps 30, got %.4f", summary.MeanSteps)
	}

	// THEN max steps = 50, the skipped record does not count
	if summary.MaxSteps != 50 {
		t.Errorf("expected max steps 50, got %d", summary.MaxSteps)
	}
}
