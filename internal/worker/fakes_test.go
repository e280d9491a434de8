package worker_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/SscSPs/money_ledger/internal/core/domain"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
	// hold makes After never fire, so a poll loop only advances on progress.
	hold bool
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// After fires immediately so poll loops do not block tests, unless hold is set.
func (c *fakeClock) After(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	c.mu.Lock()
	hold := c.hold
	c.mu.Unlock()
	if !hold {
		ch <- c.Now()
	}
	return ch
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type storedEvent struct {
	domain.DueWebhookEvent
	Status      domain.WebhookEventStatus
	NextRetryAt *time.Time
	LastError   string
	UpdatedAt   time.Time
}

// fakeStore mimics the SQL semantics of the outbox: only pending rows that are due
// are fetched, oldest first, and status changes only apply to pending rows.
type fakeStore struct {
	mu       sync.Mutex
	events   map[string]*storedEvent
	fetches  int
	fetchErr error
	// updateErr, when set, rejects status updates before they are applied.
	updateErr func(lastError string) error
}

func newFakeStore() *fakeStore {
	return &fakeStore{events: map[string]*storedEvent{}}
}

func (s *fakeStore) add(ev domain.DueWebhookEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[ev.EventID] = &storedEvent{DueWebhookEvent: ev, Status: domain.WebhookEventPending}
}

func (s *fakeStore) get(id string) storedEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.events[id]
}

func (s *fakeStore) fetchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetches
}

func (s *fakeStore) FetchDueEvents(_ context.Context, now time.Time, limit int) ([]domain.DueWebhookEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetches++
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	var due []domain.DueWebhookEvent
	for _, ev := range s.events {
		if ev.Status != domain.WebhookEventPending {
			continue
		}
		if ev.NextRetryAt != nil && ev.NextRetryAt.After(now) {
			continue
		}
		due = append(due, ev.DueWebhookEvent)
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].CreatedAt.Equal(due[j].CreatedAt) {
			return due[i].EventID < due[j].EventID
		}
		return due[i].CreatedAt.Before(due[j].CreatedAt)
	})
	if len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (s *fakeStore) MarkEventDelivered(_ context.Context, id string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		if err := s.updateErr(""); err != nil {
			return err
		}
	}
	ev, ok := s.events[id]
	if !ok || ev.Status != domain.WebhookEventPending {
		return nil
	}
	ev.Status = domain.WebhookEventDelivered
	ev.NextRetryAt = nil
	ev.UpdatedAt = now
	return nil
}

func (s *fakeStore) MarkEventFailed(_ context.Context, id string, attempts int, nextRetryAt *time.Time, terminal bool, lastError string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		if err := s.updateErr(lastError); err != nil {
			return err
		}
	}
	ev, ok := s.events[id]
	if !ok || ev.Status != domain.WebhookEventPending {
		return nil
	}
	ev.Attempts = attempts
	ev.LastError = lastError
	ev.UpdatedAt = now
	if terminal {
		ev.Status = domain.WebhookEventFailed
		ev.NextRetryAt = nil
		return nil
	}
	ev.NextRetryAt = nextRetryAt
	return nil
}

// rejectInvalidText fails the way Postgres does for TEXT values with NUL bytes or
// invalid UTF-8 (SQLSTATE 22021).
func rejectInvalidText(lastError string) error {
	if !utf8.ValidString(lastError) || strings.ContainsRune(lastError, 0) {
		return errors.New("ERROR: invalid byte sequence for encoding \"UTF8\" (SQLSTATE 22021)")
	}
	return nil
}

// scriptedSender returns the queued results for each event in order; once the
// script is exhausted every send succeeds.
type scriptedSender struct {
	mu      sync.Mutex
	script  map[string][]error
	sent    []string
	started chan string
	release chan struct{}
}

func newScriptedSender() *scriptedSender {
	return &scriptedSender{script: map[string][]error{}}
}

func (s *scriptedSender) failTimes(eventID string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < n; i++ {
		s.script[eventID] = append(s.script[eventID], errors.New("connection refused"))
	}
}

func (s *scriptedSender) failWith(eventID string, n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < n; i++ {
		s.script[eventID] = append(s.script[eventID], err)
	}
}

func (s *scriptedSender) Send(ctx context.Context, ev domain.DueWebhookEvent) error {
	if s.started != nil {
		s.started <- ev.EventID
	}
	if s.release != nil {
		select {
		case <-s.release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, ev.EventID)
	queue := s.script[ev.EventID]
	if len(queue) == 0 {
		return nil
	}
	s.script[ev.EventID] = queue[1:]
	return queue[0]
}

func (s *scriptedSender) sentIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sent...)
}
