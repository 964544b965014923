package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRestoreCmd(app *cli) *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "restore [backup]",
		Short: "Restore the database from a backup (newest when none is named)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if list {
				backups, err := app.session.Backups()
				if err != nil {
					return err
				}
				names := make([]string, len(backups))
				for i, b := range backups {
					names[i] = fmt.Sprintf("%s (%s)", b.Name, b.ModTime.Format("2006-01-02 15:04:05"))
				}
				if len(names) == 0 {
					fmt.Fprintln(out, "No backups found")
				}
				bulletList(out, "Backups:", titleStyle, names)
				return nil
			}

			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			backup, err := app.session.Restore(name)
			if err != nil {
				app.session.Log.Error("Error in restore", err, map[string]interface{}{"backup": name})
				return err
			}
			fmt.Fprintf(out, "%s %s (%d actions)\n", okStyle.Render("Restored:"), backup.Name, app.session.Corpus.Size())
			return nil
		},
	}
	cmd.Flags().BoolVarP(&list, "list", "l", false, "List available backups")
	return cmd
}
