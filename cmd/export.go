package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newExportCmd(app *cli) *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export raw data in the specified format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := app.session.Export(format, output)
			if err != nil {
				app.session.Log.Error("Error in export", err, map[string]interface{}{"format": format})
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", okStyle.Render("Data exported:"), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Export format: json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path")
	return cmd
}
