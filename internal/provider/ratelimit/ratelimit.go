package ratelimit

import (
	"context"
	"sync"
	"time"

	"stockmail/internal/provider"
)

// MinInterval wraps a fetcher and enforces a minimum pause between the end of
// one fetch and the start of the next. The first call is never delayed. A
// canceled context ends the wait early.
type MinInterval struct {
	P        provider.Fetcher
	Interval time.Duration
	mu       sync.Mutex
	last     time.Time
}

func (m *MinInterval) Name() string { return m.P.Name() }

func (m *MinInterval) Fetch(ctx context.Context, symbol string) (provider.Quote, bool, error) {
	if m.Interval > 0 {
		m.mu.Lock()
		var wait time.Duration
		if !m.last.IsZero() {
			wait = time.Until(m.last.Add(m.Interval))
		}
		m.mu.Unlock()
		if wait > 0 {
			t := time.NewTimer(wait)
			defer t.Stop()
			select {
			case <-ctx.Done():
				return provider.Quote{}, false, ctx.Err()
			case <-t.C:
			}
		}
	}
	q, ok, err := m.P.Fetch(ctx, symbol)
	if m.Interval > 0 {
		m.mu.Lock()
		m.last = time.Now()
		m.mu.Unlock()
	}
	return q, ok, err
}
