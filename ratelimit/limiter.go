// Package ratelimit implements the bounded producer/consumer in front of
// the RPC transport: a per-subscriber demand counter replenished on a
// timer, so bursts of requests queue instead of hammering the cluster.
// Wiring this in front of rpc.Client is optional; callers may also call
// rpc.Client directly.
package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter tracks demand per downstream subscriber with an independent
// golang.org/x/time/rate.Limiter per key: units refill at limit per second,
// one at a time, up to burst. A caller with no demand left blocks in Wait
// until a unit refills.
type Limiter struct {
	burst int
	limit rate.Limit

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// New returns a Limiter that gives each distinct subscriber key its own
// bucket of at most burst units, refilled at limit units per second.
func New(limit rate.Limit, burst int) *Limiter {
	return &Limiter{
		burst:    burst,
		limit:    limit,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (l *Limiter) forKey(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	rl, ok := l.limiters[key]
	if !ok {
		rl = rate.NewLimiter(l.limit, l.burst)
		l.limiters[key] = rl
	}
	return rl
}

// Allow reports whether key currently has demand available, consuming one
// unit if so. It never blocks.
func (l *Limiter) Allow(key string) bool {
	return l.forKey(key).Allow()
}

// Wait blocks until key has demand available, per ctx's deadline, then
// consumes one unit.
func (l *Limiter) Wait(ctx context.Context, key string) error {
	return l.forKey(key).Wait(ctx)
}
