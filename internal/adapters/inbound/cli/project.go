package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/stationxml-rs/fixturecheck/internal/adapters/outbound/config"
	"github.com/stationxml-rs/fixturecheck/internal/domain"
)

// projectFlags are shared by every command that reads the project config.
type projectFlags struct {
	path     string
	fixtures string
	vectors  string
	pattern  string
	oracle   string
	python   string
	verbose  bool
}

func (f *projectFlags) register(cmd *cobra.Command, withOracle bool) {
	cmd.Flags().StringVar(&f.path, "path", ".", "Project root containing .fixturecheck.yaml")
	cmd.Flags().StringVar(&f.fixtures, "fixtures", "", "Fixtures directory (overrides config)")
	cmd.Flags().StringVar(&f.vectors, "vectors", "", "Vectors output directory, created if missing (overrides config)")
	cmd.Flags().StringVar(&f.pattern, "pattern", "", "Fixture file glob (overrides config)")
	if withOracle {
		cmd.Flags().StringVar(&f.oracle, "oracle", "", "Oracle mode: auto, builtin, obspy, none (overrides config)")
		cmd.Flags().StringVar(&f.python, "python", "", "Python interpreter for the obspy oracle (overrides config)")
	}
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Log diagnostics to stderr")
}

// load reads the project config, applies flag overrides and resolves every
// directory to an absolute path. A positional fixtures directory wins over
// --fixtures. Directory flags are relative to the working directory;
// directories from the config file are relative to the project root.
func (f *projectFlags) load(args []string) (domain.Config, string, error) {
	root, err := filepath.Abs(f.path)
	if err != nil {
		return domain.Config{}, "", fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.New().Load(root)
	if err != nil {
		return domain.Config{}, "", err
	}

	fixtures := f.fixtures
	if len(args) > 0 {
		fixtures = args[0]
	}
	if fixtures != "" {
		if cfg.FixturesDir, err = filepath.Abs(fixtures); err != nil {
			return domain.Config{}, "", fmt.Errorf("resolving fixtures dir: %w", err)
		}
	}
	if f.vectors != "" {
		if cfg.VectorsDir, err = filepath.Abs(f.vectors); err != nil {
			return domain.Config{}, "", fmt.Errorf("resolving vectors dir: %w", err)
		}
	}
	if f.pattern != "" {
		cfg.Pattern = f.pattern
	}
	if f.oracle != "" {
		cfg.Oracle.Mode = domain.OracleMode(f.oracle)
	}
	if f.python != "" {
		cfg.Oracle.Python = f.python
	}

	if err := cfg.Validate(); err != nil {
		return domain.Config{}, "", err
	}
	return cfg.WithDefaults().Resolve(root), root, nil
}
