package tui_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stationxml-rs/fixturecheck/internal/adapters/outbound/tui"
	"github.com/stationxml-rs/fixturecheck/internal/domain"
	"github.com/stretchr/testify/assert"
)

type stubOracle struct {
	name   string
	reason string
}

func (s stubOracle) Name() string              { return s.name }
func (s stubOracle) Available() (bool, string) { return s.reason == "", s.reason }
func (s stubOracle) Inspect(context.Context, string) (domain.OracleSummary, error) {
	return domain.OracleSummary{}, nil
}

func fixture(name string) domain.FixturePath {
	return domain.FixturePath{Path: "/fixtures/" + name, Name: name}
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestRunRenderer_Golden(t *testing.T) {
	var buf bytes.Buffer
	r := tui.NewRunRenderer(&buf)

	fixtures := []domain.FixturePath{fixture("a.xml"), fixture("b.xml"), fixture("c.xml")}
	r.Header("/fixtures", "/vectors", stubOracle{name: "builtin"})
	r.RunStarted(fixtures)
	r.FixtureValidated(domain.ValidationOutcome{
		Fixture:    fixtures[0],
		WellFormed: domain.CheckResult{Status: domain.StatusPass},
		Oracle: domain.OracleResult{
			Status:  domain.StatusPass,
			Oracle:  "builtin",
			Summary: &domain.OracleSummary{Format: "fdsn", Networks: 2, Stations: 5, Channels: 4},
		},
	})
	r.FixtureValidated(domain.MalformedOutcome(fixtures[1], &domain.SyntaxDiagnostic{
		Line: 8, Column: 3, Message: "element <Station> closed by </Network>",
	}))
	r.FixtureValidated(domain.ValidationOutcome{
		Fixture:    fixtures[2],
		WellFormed: domain.CheckResult{Status: domain.StatusPass},
		Oracle: domain.OracleResult{
			Status:  domain.StatusFail,
			Oracle:  "builtin",
			Message: "line 6: station XX.NOLAT: missing required field: Latitude",
		},
	})
	r.Summary(domain.RunResult{Total: 3, Passed: 1, Failed: 2, Verdict: domain.VerdictFail})

	newGoldie(t).Assert(t, "run_report", buf.Bytes())
}

func TestRunRenderer_OracleSkippedIsNotOK(t *testing.T) {
	var buf bytes.Buffer
	r := tui.NewRunRenderer(&buf)

	r.Header("/f", "/v", stubOracle{name: "none", reason: "oracle disabled"})
	r.FixtureValidated(domain.ValidationOutcome{
		Fixture:    fixture("a.xml"),
		WellFormed: domain.CheckResult{Status: domain.StatusPass},
		Oracle:     domain.OracleResult{Status: domain.StatusSkipped, Oracle: "none", Message: "oracle disabled"},
	})
	r.Summary(domain.RunResult{Total: 1, Passed: 1, OracleSkipped: 1, Verdict: domain.VerdictPass})

	out := buf.String()
	assert.Contains(t, out, "Oracle:       none (oracle disabled)")
	assert.Contains(t, out, "Oracle skipped (oracle disabled)")
	assert.NotContains(t, out, "Oracle OK")
	assert.Contains(t, out, "All fixtures valid.")
	assert.Contains(t, out, "1 without oracle")
}

func TestRunRenderer_NoFixtures(t *testing.T) {
	var buf bytes.Buffer
	r := tui.NewRunRenderer(&buf)

	r.RunStarted(nil)
	r.Summary(domain.RunResult{Verdict: domain.VerdictEmpty})

	assert.Equal(t, "\nNo fixture files found.\n", buf.String())
}

func TestRunRenderer_PlainTextForNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	tui.NewRunRenderer(&buf).Summary(domain.RunResult{Total: 1, Failed: 1, Verdict: domain.VerdictFail})
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestRenderFixtureList(t *testing.T) {
	var buf bytes.Buffer
	tui.RenderFixtureList(&buf, "/fixtures", []domain.FixturePath{fixture("a.xml"), fixture("b.xml")})
	assert.Equal(t, "2 fixture(s) in /fixtures/\n  a.xml\n  b.xml\n", buf.String())

	buf.Reset()
	tui.RenderFixtureList(&buf, "/fixtures", nil)
	assert.Equal(t, "No fixture files found in /fixtures/\n", buf.String())
}

func TestRenderOracle(t *testing.T) {
	var buf bytes.Buffer
	tui.RenderOracle(&buf, domain.OracleModeAuto, stubOracle{name: "builtin"})
	assert.Contains(t, buf.String(), "Resolved:  builtin")
	assert.Contains(t, buf.String(), "Available: yes")

	buf.Reset()
	tui.RenderOracle(&buf, domain.OracleModeObsPy, stubOracle{name: "none", reason: "python3 not found"})
	assert.Contains(t, buf.String(), "Available: no (python3 not found)")
	assert.Contains(t, buf.String(), "well-formedness only")
}

func TestRenderHistory(t *testing.T) {
	var buf bytes.Buffer
	tui.RenderHistory(&buf, []domain.RunEntry{
		{Timestamp: "2026-02-25T10:00:00Z", CommitHash: "abc1234def", Oracle: "builtin", Total: 3, Failed: 1, Verdict: domain.VerdictFail},
		{Timestamp: "2026-02-26T10:00:00Z", Oracle: "builtin", Total: 3, Verdict: domain.VerdictPass},
	})

	out := buf.String()
	assert.Contains(t, out, "Run History")
	assert.Contains(t, out, "2026-02-25")
	assert.Contains(t, out, "abc1234")
	assert.NotContains(t, out, "abc1234def")
	assert.Contains(t, out, "·······")
	assert.Contains(t, out, "↓1 failing")
}

func TestRenderHistory_Empty(t *testing.T) {
	var buf bytes.Buffer
	tui.RenderHistory(&buf, nil)
	assert.Contains(t, buf.String(), "No run history found.")
}
