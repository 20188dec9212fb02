package oracle

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"

	"github.com/stationxml-rs/fixturecheck/internal/domain"
)

// Resolver picks the oracle for a run. It is used once at startup.
type Resolver struct {
	LookPath func(file string) (string, error)
	Run      Runner
	Logger   *slog.Logger
}

// NewResolver returns a Resolver backed by the real environment.
func NewResolver(logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{LookPath: exec.LookPath, Run: ExecRunner, Logger: logger}
}

// Resolve returns the oracle selected by cfg. It never fails: a backend that
// cannot be used resolves to *Unavailable, or to the builtin reader in auto
// mode.
func (r *Resolver) Resolve(ctx context.Context, cfg domain.OracleConfig) domain.Oracle {
	switch cfg.Mode {
	case domain.OracleModeNone:
		return NewUnavailable("oracle disabled")
	case domain.OracleModeBuiltin:
		return NewBuiltin()
	case domain.OracleModeObsPy:
		o, err := r.obspy(ctx, cfg.Python)
		if err != nil {
			r.Logger.Warn("obspy oracle unavailable", "error", err)
			return NewUnavailable(err.Error())
		}
		return o
	default:
		o, err := r.obspy(ctx, cfg.Python)
		if err != nil {
			r.Logger.Debug("obspy not usable, falling back to builtin oracle", "error", err)
			return NewBuiltin()
		}
		return o
	}
}

func (r *Resolver) obspy(ctx context.Context, python string) (*ObsPy, error) {
	path, err := r.LookPath(python)
	if err != nil {
		return nil, fmt.Errorf("%s not found: %w", python, err)
	}
	if err := Probe(ctx, path, r.Run); err != nil {
		return nil, err
	}
	r.Logger.Debug("obspy oracle resolved", "python", path)
	return NewObsPy(path, r.Run), nil
}
