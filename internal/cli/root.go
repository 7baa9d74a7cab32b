// Package cli holds the registrar commands: serve (the default), migrate and
// seed.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"registrar/internal/platform/config"
	"registrar/internal/platform/logger"
)

// RootOptions is shared by every command. Config and Logger are filled in
// before a command runs.
type RootOptions struct {
	LogLevel  string
	LogFormat string

	Config config.Server
	Logger *slog.Logger
}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "registrar",
		Short: "Registry management backend",
		Long: `registrar serves the registry API for registered organizations, their
agreements, elections, trainings, compliance and documents.

Without a subcommand it starts the HTTP server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = opts.LogLevel
			}
			if cmd.Flags().Changed("log-format") {
				cfg.LogFormat = opts.LogFormat
			}
			opts.Config = cfg
			opts.Logger = logger.New(cfg.LogLevel, cfg.LogFormat)
			slog.SetDefault(opts.Logger)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "info", "log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", "json", "log format (json|text)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))

	return cmd
}
