package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/stationxml-rs/fixturecheck/internal/adapters/outbound/config"
	"github.com/stationxml-rs/fixturecheck/internal/domain"
)

func newInitCmd() *cobra.Command {
	var (
		oracleMode string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a .fixturecheck.yaml configuration file",
		Long:  "Create a .fixturecheck.yaml with defaults matching a stationxml-rs checkout.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			cfg := domain.DefaultConfig()
			cfg.Oracle.Mode = domain.OracleMode(oracleMode)
			if err := cfg.Validate(); err != nil {
				return err
			}

			if _, err := config.Write(absPath, cfg, force); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName)
			return nil
		},
	}

	cmd.Flags().StringVar(&oracleMode, "oracle", string(domain.OracleModeAuto), "Oracle mode (auto, builtin, obspy, none)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .fixturecheck.yaml")

	return cmd
}
