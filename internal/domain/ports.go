package domain

import "context"

// FixtureLocator ensures the configured directories exist and enumerates
// fixture files in deterministic order.
type FixtureLocator interface {
	Locate(fixturesDir, pattern string, ensure ...string) ([]FixturePath, error)
}

// WellFormednessChecker parses a file as generic XML.
// A non-nil error is a *SyntaxDiagnostic describing the first violation.
type WellFormednessChecker interface {
	Check(path string) error
}

// Oracle is an independent StationXML reader used to confirm a fixture is
// semantically legal. Implementations may be permanently unavailable in
// the current environment; Available reports that up front with a reason.
type Oracle interface {
	Name() string
	Available() (bool, string)
	Inspect(ctx context.Context, path string) (OracleSummary, error)
}

// RunObserver receives pipeline progress while a run is in flight.
type RunObserver interface {
	RunStarted(fixtures []FixturePath)
	FixtureValidated(outcome ValidationOutcome)
}

// ConfigLoader reads the project configuration.
type ConfigLoader interface {
	Load(projectPath string) (Config, error)
}

// OracleCacheStore persists oracle verdicts between runs.
type OracleCacheStore interface {
	Load(stateDir string) (*OracleCache, error)
	Save(cache *OracleCache) error
	Invalidate(stateDir string) error
}

// RunHistory records the aggregate result of past runs.
type RunHistory interface {
	Save(stateDir string, entry RunEntry) error
	Load(stateDir string) ([]RunEntry, error)
}

// GitInfo reads version-control metadata for the project.
type GitInfo interface {
	IsGitRepo(projectPath string) bool
	CommitHash(projectPath string) (string, error)
}
