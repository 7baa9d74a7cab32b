package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"registrar/internal/platform/postgres"
)

func NewMigrateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		Long: `Apply every embedded migration not yet recorded in schema_migrations.

Running it again is a no-op.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			db, err := postgres.Open(ctx, opts.Config.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			applied, err := postgres.Migrate(ctx, db)
			if err != nil {
				return err
			}
			opts.Logger.Info("migrations applied", "count", len(applied))
			for _, v := range applied {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
			}
			return nil
		},
	}
}
