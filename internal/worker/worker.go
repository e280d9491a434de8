// Package worker delivers outbox events to webhook endpoints.
//
// Delivery is at-least-once: a crash between a successful POST and the status
// update re-sends the event on a later poll. Receivers de-duplicate on the
// X-Webhook-Event-ID header.
package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/SscSPs/money_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/money_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/money_ledger/internal/platform/config"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultPollInterval = 2 * time.Second
	DefaultBatchSize    = 25
	DefaultMaxAttempts  = 5
)

// ErrAlreadyRunning is returned by Start on a running worker.
var ErrAlreadyRunning = errors.New("webhook worker already running")

// Config tunes polling and retry.
type Config struct {
	PollInterval time.Duration
	BatchSize    int
	MaxAttempts  int
	// Concurrency > 1 delivers different endpoints in parallel. Events of the same
	// endpoint are always delivered one at a time in fetch order.
	Concurrency int
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		PollInterval: DefaultPollInterval,
		BatchSize:    DefaultBatchSize,
		MaxAttempts:  DefaultMaxAttempts,
		Concurrency:  1,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.PollInterval <= 0 {
		c.PollInterval = d.PollInterval
	}
	if c.BatchSize <= 0 {
		c.BatchSize = d.BatchSize
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = d.MaxAttempts
	}
	if c.Concurrency <= 0 {
		c.Concurrency = d.Concurrency
	}
	return c
}

// Option configures a Worker.
type Option func(*Worker)

// WithClock sets the time source.
func WithClock(c Clock) Option {
	return func(w *Worker) {
		w.clock = c
	}
}

// WithLogger sets the base logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Worker) {
		w.logger = l
	}
}

// Worker polls due outbox events and delivers them.
type Worker struct {
	store  portsrepo.WebhookDeliveryStore
	sender Sender
	cfg    Config
	clock  Clock
	logger *slog.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
	// gen identifies the current Start so a finished loop only clears its own run.
	gen uint64
}

// New creates a worker. It does nothing until Start or Run is called.
func New(store portsrepo.WebhookDeliveryStore, sender Sender, cfg Config, opts ...Option) *Worker {
	w := &Worker{
		store:  store,
		sender: sender,
		cfg:    cfg.withDefaults(),
		clock:  systemClock{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.With(slog.String("component", "webhook_worker"))
	return w
}

// Start runs the poll loop in the background until Stop or ctx is cancelled.
func (w *Worker) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return ErrAlreadyRunning
	}

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.running = true
	w.gen++
	gen := w.gen

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer w.finish(gen)
		w.Run(runCtx)
	}()

	w.logger.Info("webhook worker started",
		slog.Duration("poll_interval", w.cfg.PollInterval),
		slog.Int("batch_size", w.cfg.BatchSize),
		slog.Int("max_attempts", w.cfg.MaxAttempts),
		slog.Int("concurrency", w.cfg.Concurrency),
	)
	return nil
}

// finish marks the run as stopped when the loop exits on its own, e.g. because the
// parent context of Start was cancelled.
func (w *Worker) finish(gen uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.gen == gen && w.running {
		w.running = false
		w.cancel()
	}
}

// Stop cancels polling and waits for the in-flight batch to finish, or for ctx to expire.
func (w *Worker) Stop(ctx context.Context) error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.cancel()
	w.running = false
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		w.logger.Info("webhook worker stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run polls until ctx is cancelled. A poll that recorded at least one outcome is
// followed by another poll straight away; an empty, failed or stalled poll waits
// PollInterval.
func (w *Worker) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		n, err := w.ProcessBatch(ctx)
		if ctx.Err() != nil {
			return
		}
		if err == nil && n > 0 {
			continue
		}

		select {
		case <-ctx.Done():
			return
		case <-w.clock.After(w.cfg.PollInterval):
		}
	}
}

// ProcessBatch fetches one batch of due events and attempts each once.
// It returns the number of events whose outcome was recorded. Events whose status
// update failed stay pending and are not counted.
func (w *Worker) ProcessBatch(ctx context.Context) (int, error) {
	due, err := w.store.FetchDueEvents(ctx, w.clock.Now(), w.cfg.BatchSize)
	if err != nil {
		w.logger.Error("failed to fetch due webhook events", slog.String("error", err.Error()))
		return 0, err
	}
	if len(due) == 0 {
		return 0, nil
	}

	// A started batch is finished even if Stop is called meanwhile.
	deliverCtx := context.WithoutCancel(ctx)

	if w.cfg.Concurrency <= 1 {
		recorded := 0
		for _, ev := range due {
			if w.deliver(deliverCtx, ev) {
				recorded++
			}
		}
		return recorded, nil
	}

	var recorded atomic.Int64
	g := new(errgroup.Group)
	g.SetLimit(w.cfg.Concurrency)
	for _, group := range groupByEndpoint(due) {
		group := group
		g.Go(func() error {
			for _, ev := range group {
				if w.deliver(deliverCtx, ev) {
					recorded.Add(1)
				}
			}
			return nil
		})
	}
	_ = g.Wait()
	return int(recorded.Load()), nil
}

// deliver sends one event and records the outcome, reporting whether the record
// was written. Status update failures are logged; the event stays pending and is
// retried on a later poll.
func (w *Worker) deliver(ctx context.Context, ev domain.DueWebhookEvent) bool {
	logger := w.logger.With(
		slog.String("event_id", ev.EventID),
		slog.String("endpoint_id", ev.EndpointID),
	)

	sendErr := w.sender.Send(ctx, ev)
	now := w.clock.Now()

	if sendErr == nil {
		if err := w.store.MarkEventDelivered(ctx, ev.EventID, now); err != nil {
			logger.Error("failed to mark webhook event delivered", slog.String("error", err.Error()))
			return false
		}
		logger.Debug("webhook delivered", slog.Int("attempts", ev.Attempts+1))
		return true
	}

	attempts := ev.Attempts + 1
	terminal := attempts >= w.cfg.MaxAttempts
	var nextRetryAt *time.Time
	if !terminal {
		t := now.Add(domain.NextRetryDelay(attempts))
		nextRetryAt = &t
	}

	lastError := domain.SanitizeLastError(sendErr.Error(), domain.MaxLastErrorLength)
	if err := w.store.MarkEventFailed(ctx, ev.EventID, attempts, nextRetryAt, terminal, lastError, now); err != nil {
		logger.Error("failed to record webhook delivery failure", slog.String("error", err.Error()))
		return false
	}
	logger.Warn("webhook delivery failed",
		slog.Int("attempts", attempts),
		slog.Bool("terminal", terminal),
		slog.String("error", lastError),
	)
	return true
}

// groupByEndpoint splits a batch per endpoint, keeping fetch order inside each group
// and ordering groups by their first event.
func groupByEndpoint(events []domain.DueWebhookEvent) [][]domain.DueWebhookEvent {
	index := map[string]int{}
	var groups [][]domain.DueWebhookEvent
	for _, ev := range events {
		i, ok := index[ev.EndpointID]
		if !ok {
			i = len(groups)
			index[ev.EndpointID] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], ev)
	}
	return groups
}

// ConfigFromApp maps the application settings onto a worker Config.
func ConfigFromApp(cfg *config.Config) Config {
	return Config{
		PollInterval: cfg.WebhookPollInterval,
		BatchSize:    cfg.WebhookBatchSize,
		MaxAttempts:  cfg.WebhookMaxAttempts,
		Concurrency:  cfg.WebhookDeliveryConcurrency,
	}
}
