package cmd

import (
	"strconv"

	"github.com/spf13/cobra"
)

func newStatsCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Display database statistics",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			stats := app.session.Stats()
			metricTable(cmd.OutOrStdout(), "Shortcuts Database Statistics", [][]string{
				{"Total Actions", strconv.Itoa(stats.KnownActions)},
				{"Parameter Variations", strconv.Itoa(stats.Variations)},
				{"Transitions", strconv.Itoa(stats.Transitions)},
				{"Relationships", strconv.Itoa(stats.Relationships)},
				{"Menu Structures", strconv.Itoa(stats.Menus)},
				{"Groups", strconv.Itoa(stats.Groups)},
				{"UUIDs", strconv.Itoa(stats.UUIDs)},
				{"Client Versions", strconv.Itoa(stats.Versions)},
				{"Metadata Fields", strconv.Itoa(stats.MetadataFields)},
				{"Isolated Actions", strconv.Itoa(stats.IsolatedActions)},
			})
		},
	}
}
