package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	portsrepo "github.com/SscSPs/money_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/money_ledger/internal/core/ports/services"
	"github.com/SscSPs/money_ledger/internal/core/services"
	"github.com/SscSPs/money_ledger/internal/platform/config"
	"github.com/SscSPs/money_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/money_ledger/pkg/database"
)

// Env is everything a command needs once the database is reachable.
type Env struct {
	Config        *config.Config
	Logger        *slog.Logger
	Services      *portssvc.ServiceContainer
	DeliveryStore portsrepo.WebhookDeliveryStore
	Close         func()
}

func bootstrap(ctx context.Context, opts *RootOptions) (*Env, error) {
	logger := newLogger(os.Stderr, opts.Verbose)

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, database.PoolOptions{
		Attempts: cfg.DBConnectAttempts,
		Backoff:  cfg.DBConnectBackoff,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	repos := pgsql.NewRepositoryProvider(pool)
	return &Env{
		Config:        cfg,
		Logger:        logger,
		Services:      services.NewServiceContainer(cfg, repos),
		DeliveryStore: pgsql.NewWebhookDeliveryStore(pool),
		Close:         func() { database.ClosePgxPool(pool, logger) },
	}, nil
}

func runMigrations(_ context.Context, opts *RootOptions, direction string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	return database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, database.MigrationDirection(direction), newLogger(os.Stderr, opts.Verbose))
}
