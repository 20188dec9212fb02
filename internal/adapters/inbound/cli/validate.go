package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/stationxml-rs/fixturecheck/internal/adapters/outbound/cache"
	"github.com/stationxml-rs/fixturecheck/internal/adapters/outbound/gitinfo"
	"github.com/stationxml-rs/fixturecheck/internal/adapters/outbound/history"
	"github.com/stationxml-rs/fixturecheck/internal/adapters/outbound/oracle"
	"github.com/stationxml-rs/fixturecheck/internal/adapters/outbound/scanner"
	"github.com/stationxml-rs/fixturecheck/internal/adapters/outbound/tui"
	"github.com/stationxml-rs/fixturecheck/internal/adapters/outbound/xmlcheck"
	"github.com/stationxml-rs/fixturecheck/internal/application"
	"github.com/stationxml-rs/fixturecheck/internal/domain"
	"github.com/stationxml-rs/fixturecheck/internal/logger"
)

func newValidateCmd() *cobra.Command {
	var (
		flags      projectFlags
		jsonOutput bool
		useCache   bool
		clearCache bool
		record     bool
	)

	cmd := &cobra.Command{
		Use:   "validate [fixtures-dir]",
		Short: "Validate every fixture in the fixtures directory",
		Long: "Check each fixture for XML well-formedness, then have the oracle parse it as a StationXML inventory. " +
			"Exits 1 when any fixture fails. A missing oracle degrades to well-formedness checks only.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, root, err := flags.load(args)
			if err != nil {
				return err
			}

			log := logger.New(cmd.ErrOrStderr(), flags.verbose)
			ctx := cmd.Context()

			var o domain.Oracle = oracle.NewResolver(log).Resolve(ctx, cfg.Oracle)
			log.Debug("oracle resolved", "mode", cfg.Oracle.Mode, "oracle", o.Name())

			store := cache.New()
			if clearCache {
				if err := store.Invalidate(cfg.StateDir); err != nil {
					return fmt.Errorf("clearing oracle cache: %w", err)
				}
				log.Debug("oracle cache cleared", "state_dir", cfg.StateDir)
			}

			var cached *application.CachingOracle
			if useCache {
				c, err := store.Load(cfg.StateDir)
				if err != nil {
					log.Warn("ignoring unreadable oracle cache", "error", err)
				}
				cached = application.NewCachingOracle(o, c)
				o = cached
			}

			svc := application.NewValidateService(scanner.New(), xmlcheck.New(), o)

			var result domain.RunResult
			if jsonOutput {
				report := domain.NewReport(cfg.FixturesDir, o.Name())
				if result, err = svc.Run(ctx, cfg, report); err != nil {
					return fmt.Errorf("validate failed: %w", err)
				}
				report.Result = result
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				r := tui.NewRunRenderer(cmd.OutOrStdout())
				r.Header(cfg.FixturesDir, cfg.VectorsDir, o)
				if result, err = svc.Run(ctx, cfg, r); err != nil {
					return fmt.Errorf("validate failed: %w", err)
				}
				r.Summary(result)
			}

			if cached != nil {
				cached.Cache().StateDir = cfg.StateDir
				if err := store.Save(cached.Cache()); err != nil {
					log.Warn("saving oracle cache", "error", err)
				}
				log.Debug("oracle cache", "hits", cached.Hits(), "entries", len(cached.Cache().Entries))
			}

			if record {
				recordRun(log, root, cfg.StateDir, o.Name(), result)
			}

			if !result.OK() {
				return fmt.Errorf("%d of %d fixture(s) failed validation", result.Failed, result.Total)
			}
			return nil
		},
	}

	flags.register(cmd, true)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the run report as JSON")
	cmd.Flags().BoolVar(&useCache, "cache", false, "Reuse oracle verdicts for unchanged fixtures")
	cmd.Flags().BoolVar(&clearCache, "clear-cache", false, "Discard stored oracle verdicts before the run")
	cmd.Flags().BoolVar(&record, "record", false, "Append the run result to the history file")

	return cmd
}

// recordRun is best-effort: history problems never change the exit status.
func recordRun(log *slog.Logger, root, stateDir, oracleName string, result domain.RunResult) {
	entry := domain.RunEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Oracle:    oracleName,
		Total:     result.Total,
		Failed:    result.Failed,
		Verdict:   result.Verdict,
	}
	git := gitinfo.New()
	if !git.IsGitRepo(root) {
		log.Debug("project is not a git repository, recording run without commit", "path", root)
	} else if hash, err := git.CommitHash(root); err == nil {
		entry.CommitHash = hash
	} else {
		log.Warn("reading commit hash for history entry", "error", err)
	}
	if err := history.New().Save(stateDir, entry); err != nil {
		log.Warn("recording run history", "error", err)
	}
}
