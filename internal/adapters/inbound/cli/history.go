package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stationxml-rs/fixturecheck/internal/adapters/outbound/history"
	"github.com/stationxml-rs/fixturecheck/internal/adapters/outbound/tui"
	"github.com/stationxml-rs/fixturecheck/internal/domain"
)

func newHistoryCmd() *cobra.Command {
	var (
		flags      projectFlags
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded validation runs",
		Long:  "Show runs recorded with validate --record, oldest first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := flags.load(nil)
			if err != nil {
				return err
			}

			entries, err := history.New().Load(cfg.StateDir)
			if err != nil {
				return fmt.Errorf("loading history: %w", err)
			}

			if jsonOutput {
				if entries == nil {
					entries = []domain.RunEntry{}
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}
			tui.RenderHistory(cmd.OutOrStdout(), entries)
			return nil
		},
	}

	flags.register(cmd, false)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output history as JSON")

	return cmd
}
