package domain

// Report is the machine-readable record of one run. It implements
// RunObserver so it can collect outcomes while the run streams.
type Report struct {
	FixturesDir string              `json:"fixtures_dir"`
	Oracle      string              `json:"oracle"`
	Outcomes    []ValidationOutcome `json:"outcomes"`
	Result      RunResult           `json:"result"`
}

func NewReport(fixturesDir, oracle string) *Report {
	return &Report{
		FixturesDir: fixturesDir,
		Oracle:      oracle,
		Outcomes:    []ValidationOutcome{},
	}
}

func (r *Report) RunStarted([]FixturePath) {}

func (r *Report) FixtureValidated(o ValidationOutcome) {
	r.Outcomes = append(r.Outcomes, o)
}
