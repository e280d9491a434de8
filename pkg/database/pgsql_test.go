package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetry_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := retry(context.Background(), 5, time.Millisecond, func(int) error {
		calls++
		if calls < 3 {
			return errors.New("connection refused")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetry_GivesUp(t *testing.T) {
	calls := 0
	err := retry(context.Background(), 3, time.Millisecond, func(int) error {
		calls++
		return errors.New("connection refused")
	})
	assert.EqualError(t, err, "connection refused")
	assert.Equal(t, 3, calls)
}

func TestRetry_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := retry(ctx, 10, time.Hour, func(int) error {
		return errors.New("connection refused")
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewPgxPool_RejectsEmptyURL(t *testing.T) {
	_, err := NewPgxPool(context.Background(), "", PoolOptions{})
	assert.Error(t, err)
}

func TestRunMigrations_UnknownDirectionNeedsDB(t *testing.T) {
	// sql.Open is lazy, so an unreachable URL fails at ping before the direction is checked.
	err := RunMigrations("postgres://nobody@127.0.0.1:1/none?sslmode=disable&connect_timeout=1", "file://migrations", "sideways", nil)
	assert.Error(t, err)
}
