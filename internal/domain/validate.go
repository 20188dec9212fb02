package domain

// Verdict is the aggregate decision for one run.
type Verdict string

const (
	VerdictPass  Verdict = "pass"
	VerdictFail  Verdict = "fail"
	VerdictEmpty Verdict = "empty"
)

// RunResult aggregates every ValidationOutcome of one invocation.
type RunResult struct {
	Total         int     `json:"total"`
	Passed        int     `json:"passed"`
	Failed        int     `json:"failed"`
	OracleSkipped int     `json:"oracle_skipped"`
	Verdict       Verdict `json:"verdict"`
}

// OK reports whether the run should exit with a zero status.
func (r RunResult) OK() bool {
	return r.Verdict != VerdictFail
}

// Aggregator accumulates outcomes as they stream out of the pipeline.
// It keeps counters only; outcomes are not buffered.
type Aggregator struct {
	result    RunResult
	finalized bool
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Add records one outcome. Calls after Finalize are ignored.
func (a *Aggregator) Add(o ValidationOutcome) {
	if a.finalized {
		return
	}
	a.result.Total++
	if o.Passed() {
		a.result.Passed++
	} else {
		a.result.Failed++
	}
	if o.WellFormed.Status == StatusPass && o.Oracle.Status == StatusSkipped {
		a.result.OracleSkipped++
	}
}

// Finalize computes the verdict and freezes the aggregator.
func (a *Aggregator) Finalize() RunResult {
	if !a.finalized {
		switch {
		case a.result.Total == 0:
			a.result.Verdict = VerdictEmpty
		case a.result.Failed > 0:
			a.result.Verdict = VerdictFail
		default:
			a.result.Verdict = VerdictPass
		}
		a.finalized = true
	}
	return a.result
}
