package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetry_SucceedsAfterFailures(t *testing.T) {
	attempts := 0
	err := RetryWithExponentialBackoff(context.Background(), 5, time.Millisecond, func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetry_Exhausted(t *testing.T) {
	attempts := 0
	err := RetryWithExponentialBackoff(context.Background(), 3, time.Millisecond, func() error {
		attempts++
		return errors.New("permanent")
	})

	assert.Error(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithExponentialBackoff(ctx, 5, time.Hour, func() error {
		return errors.New("never reached after cancel")
	})

	assert.Error(t, err)
}
