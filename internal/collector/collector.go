// Package collector runs one collection pass: fetch every configured symbol,
// tag the quotes, merge them onto the existing dataset, persist the result
// and email the newest rows.
package collector

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"stockmail/internal/dataset"
	"stockmail/internal/logger"
	"stockmail/internal/provider"
)

// DateLayout is the format of the date column attached to every row.
const DateLayout = "2006-01-02 15:04:05"

const (
	SymbolColumn = "symbol"
	DateColumn   = "date"
)

//go:generate mockgen -package=collector_test -destination=mock_collector_test.go -source=collector.go

// Persister stores the full merged dataset, replacing what was there.
type Persister interface {
	Save(d dataset.Dataset) error
}

// Archiver keeps a copy of each run's batch.
type Archiver interface {
	Archive(ctx context.Context, batch dataset.Dataset) error
}

// Notifier delivers the newest rows. It reports its own failures.
type Notifier interface {
	Notify(ctx context.Context, rows dataset.Dataset)
}

// Collector runs collection passes against one fetcher.
type Collector struct {
	fetcher  provider.Fetcher
	store    Persister
	archive  Archiver
	notifier Notifier
	tail     int
	now      func() time.Time
	log      *slog.Logger
}

// Option configures a Collector.
type Option func(*Collector)

// WithArchiver keeps a copy of every batch in a.
func WithArchiver(a Archiver) Option {
	return func(c *Collector) {
		c.archive = a
	}
}

// WithClock sets the time source for the date column.
func WithClock(now func() time.Time) Option {
	return func(c *Collector) {
		c.now = now
	}
}

// WithLogger sets the logger; nil discards.
func WithLogger(l *slog.Logger) Option {
	return func(c *Collector) {
		c.log = logger.OrDiscard(l)
	}
}

// WithTailRows sets how many of the newest batch rows are emailed.
func WithTailRows(n int) Option {
	return func(c *Collector) {
		if n > 0 {
			c.tail = n
		}
	}
}

// New creates a Collector that emails the newest five rows by default.
func New(f provider.Fetcher, store Persister, n Notifier, opts ...Option) *Collector {
	c := &Collector{
		fetcher:  f,
		store:    store,
		notifier: n,
		tail:     5,
		now:      time.Now,
		log:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// collect fetches symbols in order and returns the rows that succeeded,
// each tagged with its trimmed symbol and the wall-clock time of the fetch.
// Absent quotes are skipped; transport faults are logged and skipped. Only a
// canceled context stops the loop.
func (c *Collector) collect(ctx context.Context, symbols []string, log *slog.Logger) (dataset.Dataset, error) {
	var batch dataset.Dataset
	for _, sym := range symbols {
		sym = strings.TrimSpace(sym)
		if err := ctx.Err(); err != nil {
			return batch, err
		}
		q, ok, err := c.fetcher.Fetch(ctx, sym)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return batch, ctxErr
			}
			log.Error("fetch failed", "provider", c.fetcher.Name(), "symbol", sym, "err", err)
			continue
		}
		if !ok {
			continue
		}
		row := q.Row().
			With(SymbolColumn, sym).
			With(DateColumn, c.now().Format(DateLayout))
		batch = batch.Append(row)
	}
	return batch, nil
}

// Run performs one full pass and returns the merged dataset. existing may be
// empty; it is never read from anywhere but the argument. A failure to
// persist is returned and skips the email; archive and email failures are
// logged only.
func (c *Collector) Run(ctx context.Context, existing dataset.Dataset, symbols []string) (dataset.Dataset, error) {
	log := c.log.With("run_id", uuid.NewString())
	batch, err := c.collect(ctx, symbols, log)
	if err != nil {
		return existing, fmt.Errorf("collect: %w", err)
	}

	merged := existing.Concat(batch)
	if err := c.store.Save(merged); err != nil {
		return merged, fmt.Errorf("persist dataset: %w", err)
	}

	if c.archive != nil {
		if err := c.archive.Archive(ctx, batch); err != nil {
			log.Warn("archive batch failed", "err", err)
		}
	}

	c.notifier.Notify(ctx, batch.Tail(c.tail))

	log.Info("successfully fetched data and notified by email",
		"symbols", len(symbols), "fetched", batch.Len(), "total_rows", merged.Len())
	return merged, nil
}
