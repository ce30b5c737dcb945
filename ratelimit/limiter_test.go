package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestLimiter_Allow(t *testing.T) {
	l := New(rate.Limit(2), 2)

	for i := 0; i < 2; i++ {
		assert.True(t, l.Allow("a"))
	}
	assert.False(t, l.Allow("a"))

	// a distinct key has its own demand counter.
	for i := 0; i < 2; i++ {
		assert.True(t, l.Allow("b"))
	}
	assert.False(t, l.Allow("b"))
}

func TestLimiter_WaitBlocksUntilReplenished(t *testing.T) {
	l := New(rate.Limit(20), 1)

	assert.True(t, l.Allow("a"))

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := l.Wait(ctx, "a")
	assert.NoError(t, err)
	assert.Greater(t, time.Since(start), time.Duration(0))
}

func TestLimiter_WaitRespectsContextCancellation(t *testing.T) {
	l := New(rate.Limit(1), 1)
	assert.True(t, l.Allow("a"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := l.Wait(ctx, "a")
	assert.Error(t, err)
}
