package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stationxml-rs/fixturecheck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_CollectsInOrder(t *testing.T) {
	r := domain.NewReport("/fixtures", "builtin")
	var obs domain.RunObserver = r

	obs.RunStarted([]domain.FixturePath{{Name: "a.xml"}, {Name: "b.xml"}})
	obs.FixtureValidated(domain.ValidationOutcome{Fixture: domain.FixturePath{Name: "a.xml"}})
	obs.FixtureValidated(domain.ValidationOutcome{Fixture: domain.FixturePath{Name: "b.xml"}})

	require.Len(t, r.Outcomes, 2)
	assert.Equal(t, "a.xml", r.Outcomes[0].Fixture.Name)
	assert.Equal(t, "b.xml", r.Outcomes[1].Fixture.Name)
}

func TestReport_EmptyOutcomesEncodeAsArray(t *testing.T) {
	r := domain.NewReport("/fixtures", "none")
	r.Result = domain.RunResult{Verdict: domain.VerdictEmpty}

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"outcomes":[]`)
	assert.Contains(t, string(data), `"verdict":"empty"`)
}
