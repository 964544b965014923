package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/deploymenttheory/go-shortcuts-doc/internal/config"
	"github.com/deploymenttheory/go-shortcuts-doc/internal/logger"
	"github.com/deploymenttheory/go-shortcuts-doc/pkg/tooling"
)

// Version is set at build time with -ldflags
var Version = "1.0.0"

// cli carries the state shared by every subcommand of one invocation
type cli struct {
	v       *viper.Viper
	cfgFile string
	session *tooling.Session
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	app := &cli{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   config.AppName,
		Short: "Document Apple Shortcuts actions from exported workflows",
		Long: `shortcuts-doc ingests exported Apple Shortcuts workflows, accumulates a
persistent database of every action, parameter and action flow it has seen,
and renders that database as documentation and graph analytics.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return app.open()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.session != nil {
				app.session.Close()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&app.cfgFile, "config", "", "config file (default is search in standard locations)")
	flags.Bool("debug", false, "Enable debug logging")
	flags.String("log-format", "human", "Log format: json or human")
	flags.String("database", "", "Path to the corpus database file")

	// Bind flags to viper settings
	_ = app.v.BindPFlag("debug", flags.Lookup("debug"))
	_ = app.v.BindPFlag("log_format", flags.Lookup("log-format"))
	_ = app.v.BindPFlag("database.file", flags.Lookup("database"))

	rootCmd.AddCommand(
		newProcessCmd(app),
		newExportCmd(app),
		newStatsCmd(app),
		newRestoreCmd(app),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the root command and exits non-zero on failure. An interrupt
// cancels ingestion between files.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func (c *cli) open() error {
	cfg, err := config.LoadWith(c.v, c.cfgFile)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	log, err := logger.New(logger.Config{Debug: cfg.Debug, LogFormat: cfg.LogFormat, LogFile: cfg.LogFile})
	if err != nil {
		return err
	}

	session, err := tooling.NewSession(cfg, log)
	if err != nil {
		log.Error("Failed to open corpus", err, nil)
		return err
	}
	c.session = session
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s v%s\n", config.AppName, Version)
		},
	}
}
