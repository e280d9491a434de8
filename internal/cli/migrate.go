package cli

import (
	"github.com/SscSPs/money_ledger/pkg/database"
	"github.com/spf13/cobra"
)

// NewMigrateCommand creates the migrate command with up and down subcommands.
func NewMigrateCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back schema migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.Migrate(cmd.Context(), opts, string(database.MigrateUp))
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.Migrate(cmd.Context(), opts, string(database.MigrateDown))
		},
	})

	return cmd
}
