package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/stationxml-rs/fixturecheck/internal/adapters/outbound/scanner"
	"github.com/stationxml-rs/fixturecheck/internal/adapters/outbound/tui"
	"github.com/stationxml-rs/fixturecheck/internal/domain"
)

func newListCmd() *cobra.Command {
	var (
		flags      projectFlags
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "list [fixtures-dir]",
		Short: "List the fixtures a run would validate, in order",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := flags.load(args)
			if err != nil {
				return err
			}

			fixtures, err := scanner.New().Locate(cfg.FixturesDir, cfg.Pattern, cfg.VectorsDir)
			if err != nil {
				return err
			}

			if jsonOutput {
				if fixtures == nil {
					fixtures = []domain.FixturePath{}
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(fixtures)
			}
			tui.RenderFixtureList(cmd.OutOrStdout(), cfg.FixturesDir, fixtures)
			return nil
		},
	}

	flags.register(cmd, false)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output fixtures as JSON")

	return cmd
}
