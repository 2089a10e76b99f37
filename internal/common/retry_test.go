package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastRetry = RetryOptions{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

func TestWithRetrySucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("flaky")
		}
		return nil
	}, fastRetry)

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithRetryGivesUp(t *testing.T) {
	calls := 0
	boom := errors.New("boom")
	err := WithRetry(context.Background(), func() error {
		calls++
		return boom
	}, fastRetry)

	assert.ErrorIs(t, err, ErrMaxRetries)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls)
}

func TestWithRetryStopsOnPermanentError(t *testing.T) {
	calls := 0
	boom := errors.New("bad request")
	err := WithRetry(context.Background(), func() error {
		calls++
		return Permanent(boom)
	}, fastRetry)

	assert.Equal(t, boom, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetryHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WithRetry(ctx, func() error { return errors.New("flaky") }, RetryOptions{MaxAttempts: 5, InitialDelay: time.Hour})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPermanentNil(t *testing.T) {
	assert.NoError(t, Permanent(nil))
}
