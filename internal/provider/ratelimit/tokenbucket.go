package ratelimit

import (
	"context"
	"sync"
	"time"

	"stockmail/internal/provider"
)

// TokenBucket admits calls at a steady rate with room for a short burst.
type TokenBucket struct {
	perSecond float64
	capacity  float64

	mu     sync.Mutex
	tokens float64
	last   time.Time
}

// PerMinute builds a bucket admitting n calls per minute, starting full.
func PerMinute(n, burst int) *TokenBucket {
	if n <= 0 {
		n = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &TokenBucket{
		perSecond: float64(n) / 60,
		capacity:  float64(burst),
		tokens:    float64(burst),
		last:      time.Now(),
	}
}

// take reserves one token and reports how long the caller must wait before
// using it. Zero means the token is available now.
func (tb *TokenBucket) take() time.Duration {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	if elapsed := now.Sub(tb.last).Seconds(); elapsed > 0 {
		tb.tokens = min(tb.capacity, tb.tokens+elapsed*tb.perSecond)
		tb.last = now
	}
	tb.tokens--
	if tb.tokens >= 0 {
		return 0
	}
	return time.Duration(-tb.tokens / tb.perSecond * float64(time.Second))
}

// giveBack returns a reserved token the caller never used.
func (tb *TokenBucket) giveBack() {
	tb.mu.Lock()
	tb.tokens = min(tb.capacity, tb.tokens+1)
	tb.mu.Unlock()
}

// Wait blocks until a token is available or ctx is done.
func (tb *TokenBucket) Wait(ctx context.Context) error {
	wait := tb.take()
	if wait <= 0 {
		return nil
	}
	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-ctx.Done():
		tb.giveBack()
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Quota gates a fetcher with a token bucket so a run never exceeds the
// plan's request allowance.
type Quota struct {
	P  provider.Fetcher
	TB *TokenBucket
}

func (q *Quota) Name() string { return q.P.Name() }

func (q *Quota) Fetch(ctx context.Context, symbol string) (provider.Quote, bool, error) {
	if q.TB != nil {
		if err := q.TB.Wait(ctx); err != nil {
			return provider.Quote{}, false, err
		}
	}
	return q.P.Fetch(ctx, symbol)
}
