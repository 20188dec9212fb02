package application_test

import (
	"context"
	"path/filepath"

	"github.com/stationxml-rs/fixturecheck/internal/domain"
)

const fixturesRoot = "../../testdata/fixtures"

// fakeOracle counts Inspect calls per file name and answers from canned
// results keyed by file name.
type fakeOracle struct {
	name      string
	available bool
	reason    string
	summary   domain.OracleSummary
	errs      map[string]error
	calls     map[string]int
}

func newFakeOracle(sum domain.OracleSummary) *fakeOracle {
	return &fakeOracle{
		name:      "fake",
		available: true,
		summary:   sum,
		errs:      map[string]error{},
		calls:     map[string]int{},
	}
}

func (f *fakeOracle) Name() string { return f.name }

func (f *fakeOracle) Available() (bool, string) { return f.available, f.reason }

func (f *fakeOracle) Inspect(_ context.Context, path string) (domain.OracleSummary, error) {
	base := filepath.Base(path)
	f.calls[base]++
	if err, ok := f.errs[base]; ok {
		return domain.OracleSummary{}, err
	}
	return f.summary, nil
}

func (f *fakeOracle) totalCalls() int {
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

type recordingObserver struct {
	started  []domain.FixturePath
	outcomes []domain.ValidationOutcome
	events   []string
}

func (r *recordingObserver) RunStarted(fixtures []domain.FixturePath) {
	r.started = fixtures
	r.events = append(r.events, "start")
}

func (r *recordingObserver) FixtureValidated(o domain.ValidationOutcome) {
	r.outcomes = append(r.outcomes, o)
	r.events = append(r.events, o.Fixture.Name)
}
