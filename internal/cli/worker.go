package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/money_ledger/internal/worker"
	"github.com/spf13/cobra"
)

const workerStopTimeout = 30 * time.Second

// WorkerOptions holds flags for the worker command.
type WorkerOptions struct {
	*RootOptions
	Once bool

	// Sender overrides the HTTP sender (for testing).
	Sender worker.Sender
}

// NewWorkerCommand creates the worker command.
func NewWorkerCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WorkerOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Webhook delivery worker",
	}

	run := &cobra.Command{
		Use:   "run",
		Short: "Deliver pending webhook events until interrupted",
		Example: `  ledgerctl worker run
  ledgerctl worker run --once`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWorker(cmd.Context(), opts, cmd)
		},
	}
	run.Flags().BoolVar(&opts.Once, "once", false, "process a single batch and exit")

	cmd.AddCommand(run)
	return cmd
}

func runWorker(ctx context.Context, opts *WorkerOptions, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	env, err := opts.Bootstrap(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	defer env.Close()

	sender := opts.Sender
	if sender == nil {
		sender = worker.NewHTTPSender(env.Config.WebhookHTTPTimeout)
	}
	w := worker.New(env.DeliveryStore, sender, worker.ConfigFromApp(env.Config), worker.WithLogger(env.Logger))

	if opts.Once {
		n, err := w.ProcessBatch(ctx)
		if err != nil {
			return fmt.Errorf("process batch: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "processed %d events\n", n)
		return nil
	}

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := w.Start(sigCtx); err != nil {
		return err
	}
	<-sigCtx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), workerStopTimeout)
	defer cancel()
	return w.Stop(stopCtx)
}
