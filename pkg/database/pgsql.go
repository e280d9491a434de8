package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolOptions bounds the connect loop run at startup.
type PoolOptions struct {
	Attempts int
	Backoff  time.Duration
	Logger   *slog.Logger
}

// NewPgxPool creates a PostgreSQL connection pool, retrying the initial ping
// so the service can start before the database is ready.
func NewPgxPool(ctx context.Context, databaseURL string, opts PoolOptions) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL cannot be empty")
	}
	if opts.Attempts < 1 {
		opts.Attempts = 1
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config from URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	err = retry(ctx, opts.Attempts, opts.Backoff, func(attempt int) error {
		pingErr := pool.Ping(ctx)
		if pingErr != nil {
			opts.Logger.Warn("Database not reachable yet",
				slog.Int("attempt", attempt),
				slog.Int("max_attempts", opts.Attempts),
				slog.String("error", pingErr.Error()),
			)
		}
		return pingErr
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	opts.Logger.Info("Successfully connected to PostgreSQL database.")
	return pool, nil
}

// retry calls fn up to attempts times, sleeping backoff between calls.
func retry(ctx context.Context, attempts int, backoff time.Duration, fn func(attempt int) error) error {
	var err error
	for i := 1; i <= attempts; i++ {
		if err = fn(i); err == nil {
			return nil
		}
		if i == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return err
}

// ClosePgxPool closes the PostgreSQL connection pool.
func ClosePgxPool(pool *pgxpool.Pool, logger *slog.Logger) {
	if pool != nil {
		pool.Close()
		logger.Info("PostgreSQL connection pool closed.")
	}
}
