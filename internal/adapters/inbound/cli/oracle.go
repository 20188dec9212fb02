package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/stationxml-rs/fixturecheck/internal/adapters/outbound/oracle"
	"github.com/stationxml-rs/fixturecheck/internal/adapters/outbound/tui"
	"github.com/stationxml-rs/fixturecheck/internal/logger"
)

func newOracleCmd() *cobra.Command {
	var (
		flags      projectFlags
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "oracle",
		Short: "Show which oracle a run would use",
		Long:  "Resolve the configured oracle mode against the current environment and report whether semantic validation is available.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := flags.load(nil)
			if err != nil {
				return err
			}

			log := logger.New(cmd.ErrOrStderr(), flags.verbose)
			o := oracle.NewResolver(log).Resolve(cmd.Context(), cfg.Oracle)

			if jsonOutput {
				ok, reason := o.Available()
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{
					"mode":      cfg.Oracle.Mode,
					"oracle":    o.Name(),
					"available": ok,
					"reason":    reason,
				})
			}
			tui.RenderOracle(cmd.OutOrStdout(), cfg.Oracle.Mode, o)
			return nil
		},
	}

	flags.register(cmd, true)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output oracle status as JSON")

	return cmd
}
