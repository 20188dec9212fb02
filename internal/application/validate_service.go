package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/stationxml-rs/fixturecheck/internal/domain"
)

// ValidateService runs the fixture pipeline:
// locate -> well-formedness -> oracle -> aggregate.
type ValidateService struct {
	locator domain.FixtureLocator
	checker domain.WellFormednessChecker
	oracle  domain.Oracle
}

func NewValidateService(
	locator domain.FixtureLocator,
	checker domain.WellFormednessChecker,
	oracle domain.Oracle,
) *ValidateService {
	return &ValidateService{
		locator: locator,
		checker: checker,
		oracle:  oracle,
	}
}

// Oracle returns the oracle this service consults.
func (s *ValidateService) Oracle() domain.Oracle {
	return s.oracle
}

// Run validates every fixture under cfg.FixturesDir in order and reports
// each outcome to observer before moving to the next one. Per-fixture
// failures never abort the run; only a locator error or a cancelled
// context does.
func (s *ValidateService) Run(ctx context.Context, cfg domain.Config, observer domain.RunObserver) (domain.RunResult, error) {
	// 1. Ensure directories and enumerate fixtures
	fixtures, err := s.locator.Locate(cfg.FixturesDir, cfg.Pattern, cfg.VectorsDir)
	if err != nil {
		return domain.RunResult{}, fmt.Errorf("locating fixtures: %w", err)
	}

	agg := domain.NewAggregator()
	if observer != nil {
		observer.RunStarted(fixtures)
	}

	// 2. Nothing to do is not a failure
	if len(fixtures) == 0 {
		return agg.Finalize(), nil
	}

	// 3. Validate sequentially, streaming each outcome
	for _, f := range fixtures {
		if err := ctx.Err(); err != nil {
			return agg.Finalize(), err
		}
		outcome := s.ValidateFixture(ctx, f)
		agg.Add(outcome)
		if observer != nil {
			observer.FixtureValidated(outcome)
		}
	}

	return agg.Finalize(), nil
}

// ValidateFixture runs both checks on one fixture. The oracle is never
// consulted for a document that is not well-formed.
func (s *ValidateService) ValidateFixture(ctx context.Context, f domain.FixturePath) domain.ValidationOutcome {
	if err := s.checker.Check(f.Path); err != nil {
		var diag *domain.SyntaxDiagnostic
		if !errors.As(err, &diag) {
			diag = &domain.SyntaxDiagnostic{Message: err.Error()}
		}
		return domain.MalformedOutcome(f, diag)
	}

	return domain.ValidationOutcome{
		Fixture:    f,
		WellFormed: domain.CheckResult{Status: domain.StatusPass},
		Oracle:     s.inspect(ctx, f),
	}
}

func (s *ValidateService) inspect(ctx context.Context, f domain.FixturePath) domain.OracleResult {
	name := s.oracle.Name()
	if ok, reason := s.oracle.Available(); !ok {
		return domain.OracleResult{Status: domain.StatusSkipped, Oracle: name, Message: reason}
	}

	summary, err := s.oracle.Inspect(ctx, f.Path)
	switch {
	case err == nil:
		return domain.OracleResult{Status: domain.StatusPass, Oracle: name, Summary: &summary}
	case errors.Is(err, domain.ErrOracleUnavailable):
		return domain.OracleResult{Status: domain.StatusSkipped, Oracle: name, Message: err.Error()}
	default:
		return domain.OracleResult{Status: domain.StatusFail, Oracle: name, Message: err.Error()}
	}
}
