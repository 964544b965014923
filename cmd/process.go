package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-shortcuts-doc/internal/analysis"
	"github.com/deploymenttheory/go-shortcuts-doc/internal/ingest"
)

type processOptions struct {
	recursive bool
	format    string
	output    string
	analyze   bool
	visualize bool
	save      bool
}

func newProcessCmd(app *cli) *cobra.Command {
	opts := &processOptions{}
	cmd := &cobra.Command{
		Use:   "process <path>",
		Short: "Process shortcuts and generate documentation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd, app, opts, args[0])
		},
	}

	cmd.Flags().BoolVarP(&opts.recursive, "recursive", "r", false, "Process directories recursively")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format for documentation (default from output.default_format)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file path")
	cmd.Flags().BoolVar(&opts.analyze, "analyze", true, "Perform analysis on the shortcuts")
	cmd.Flags().BoolVar(&opts.visualize, "visualize", true, "Generate visualizations")
	cmd.Flags().BoolVar(&opts.save, "save", true, "Save the updated database")
	return cmd
}

func runProcess(cmd *cobra.Command, app *cli, opts *processOptions, path string) error {
	out := cmd.OutOrStdout()
	s := app.session

	result, err := s.Ingest(cmd.Context(), path, opts.recursive)
	if err != nil {
		s.Log.Error("Error in processing", err, map[string]interface{}{"path": path})
		return err
	}
	printIngestResult(cmd, result)

	rep := s.Analyze()
	if opts.analyze {
		printAnalysis(cmd, rep)

		if opts.visualize && s.Config.Visualization.Enabled {
			files, err := s.Visualize(rep)
			if err != nil {
				return err
			}
			bulletList(out, "Visualizations:", okStyle, files)
		}
	}

	format := opts.format
	if format == "" {
		format = s.Config.Output.DefaultFormat
	}
	written, err := s.Document(rep, format, opts.output)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%s %s\n", okStyle.Render("Documentation generated:"), written[format])

	if opts.save {
		if err := s.Save(); err != nil {
			s.Log.Error("Failed to save corpus", err, nil)
			return err
		}
	}
	return nil
}

func printIngestResult(cmd *cobra.Command, result *ingest.Result) {
	out := cmd.OutOrStdout()
	metricTable(out, "Processing Results", [][]string{
		{"Files Processed", strconv.Itoa(len(result.ProcessedFiles))},
		{"New Actions", strconv.Itoa(len(result.NewActions))},
		{"Errors", strconv.Itoa(len(result.Errors))},
	})

	bulletList(out, "New Actions Found:", titleStyle, result.NewActions)

	errs := make([]string, len(result.Errors))
	for i, e := range result.Errors {
		errs[i] = e.Error()
	}
	bulletList(out, "Errors:", errorStyle, errs)
}

func printAnalysis(cmd *cobra.Command, report *analysis.Report) {
	patterns := 0
	for _, set := range report.CommonPatterns {
		patterns += len(set.Patterns)
	}
	sequences := 0
	for _, set := range report.ActionFlows.MostCommonSequences {
		sequences += len(set.Sequences)
	}

	fmt.Fprintln(cmd.OutOrStdout())
	metricTable(cmd.OutOrStdout(), "Analysis Results", [][]string{
		{"Common Patterns", strconv.Itoa(patterns)},
		{"Common Sequences", strconv.Itoa(sequences)},
		{"Central Actions", strconv.Itoa(len(report.ActionFlows.CentralActions))},
		{"Isolated Actions", strconv.Itoa(len(report.ActionFlows.IsolatedActions))},
		{"Menus", strconv.Itoa(report.MenuComplexity.TotalMenus)},
	})
}
