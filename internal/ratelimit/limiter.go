package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter is a Redis-backed fixed-window rate limiter keyed by client IP
// and a purpose label, so login attempts don't eat the register budget.
type Limiter struct {
	client *redis.Client
	window time.Duration
	max    int
}

func NewLimiter(client *redis.Client, window time.Duration, max int) *Limiter {
	return &Limiter{
		client: client,
		window: window,
		max:    max,
	}
}

// Allow records one request for the IP/purpose pair and reports whether
// it is still within the window's budget.
func (l *Limiter) Allow(ctx context.Context, ip, purpose string) (bool, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", purpose, ip)

	pipe := l.client.Pipeline()
	incr := pipe.Incr(ctx, key)
	// NX: only the first request of a window sets the expiry, so the
	// window doesn't slide forward on every hit.
	pipe.ExpireNX(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to record request: %w", err)
	}

	return incr.Val() <= int64(l.max), nil
}
