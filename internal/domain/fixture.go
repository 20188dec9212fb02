package domain

import "fmt"

// Status is the outcome of a single check.
type Status string

const (
	StatusPass    Status = "pass"
	StatusFail    Status = "fail"
	StatusSkipped Status = "skipped"
)

// FixturePath identifies one candidate fixture file on disk.
type FixturePath struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// CheckResult is the well-formedness result for one fixture.
type CheckResult struct {
	Status     Status            `json:"status"`
	Diagnostic *SyntaxDiagnostic `json:"diagnostic,omitempty"`
}

// OracleSummary carries what the oracle learned while parsing a document.
// Counts are informational; nothing compares them to an expectation yet.
type OracleSummary struct {
	Format   string `json:"format,omitempty"`
	Networks int    `json:"networks"`
	Stations int    `json:"stations"`
	Channels int    `json:"channels"`
}

func (s OracleSummary) String() string {
	return fmt.Sprintf("%d networks, %d stations", s.Networks, s.Stations)
}

// OracleResult is the semantic-check result for one fixture.
type OracleResult struct {
	Status  Status         `json:"status"`
	Oracle  string         `json:"oracle,omitempty"`
	Message string         `json:"message,omitempty"`
	Summary *OracleSummary `json:"summary,omitempty"`
}

// ValidationOutcome is the full result of validating one fixture.
// Oracle is always StatusSkipped when WellFormed failed.
type ValidationOutcome struct {
	Fixture    FixturePath  `json:"fixture"`
	WellFormed CheckResult  `json:"well_formed"`
	Oracle     OracleResult `json:"oracle"`
}

// Passed reports whether the fixture cleared every applicable check.
// A skipped oracle does not count against the fixture.
func (o ValidationOutcome) Passed() bool {
	return o.WellFormed.Status == StatusPass && o.Oracle.Status != StatusFail
}

// MalformedOutcome builds the outcome for a fixture that failed to parse.
func MalformedOutcome(f FixturePath, diag *SyntaxDiagnostic) ValidationOutcome {
	return ValidationOutcome{
		Fixture:    f,
		WellFormed: CheckResult{Status: StatusFail, Diagnostic: diag},
		Oracle:     OracleResult{Status: StatusSkipped, Message: "not well-formed"},
	}
}
