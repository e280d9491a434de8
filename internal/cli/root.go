// Package cli implements ledgerctl, the operator command line.
package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags and the seams tests override.
type RootOptions struct {
	Verbose bool

	// Bootstrap opens configuration, the database and the services.
	Bootstrap func(ctx context.Context, opts *RootOptions) (*Env, error)
	// Migrate runs schema migrations.
	Migrate func(ctx context.Context, opts *RootOptions, direction string) error
}

// NewRootCommand creates the ledgerctl root command.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{
		Bootstrap: bootstrap,
		Migrate:   runMigrations,
	})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ledgerctl",
		Short:         "Operate the money ledger",
		Long:          "Administrative commands for the money ledger: schema migrations, tenant and API key provisioning, and the webhook delivery worker.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewBusinessCommand(opts))
	cmd.AddCommand(NewAPIKeyCommand(opts))
	cmd.AddCommand(NewWorkerCommand(opts))

	return cmd
}

// newLogger writes JSON logs to w, at debug level when verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if w == nil {
		w = os.Stderr
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}
