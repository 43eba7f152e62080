package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fxavier/prime-properties-api/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRetrySucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), logger.Discard(), "op", 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithRetryWrapsLastError(t *testing.T) {
	cause := errors.New("connection refused")
	err := withRetry(context.Background(), logger.Discard(), "database connection", 2, time.Millisecond, func() error {
		return cause
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "database connection")
}

func TestWithRetryStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := withRetry(ctx, logger.Discard(), "op", 5, time.Hour, func() error {
		return errors.New("unreachable")
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Error(t, withRetry(ctx, logger.Discard(), "op", 0, time.Millisecond, func() error { return nil }))
}
