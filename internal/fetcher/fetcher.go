// Package fetcher coordinates the per-source fetch adapters.
package fetcher

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"PulseBriefing/internal/domain"
	"PulseBriefing/internal/ports"
)

// MaxItemAge is the recency window applied by the age-filtered fetchers.
const MaxItemAge = 24 * time.Hour

// Recent reports whether t falls within the recency window ending at now.
func Recent(t, now time.Time) bool {
	if t.IsZero() {
		return false
	}
	return now.Sub(t) <= MaxItemAge
}

// FanOut runs every fetcher concurrently and waits for all of them to
// settle. A failing or slow source contributes nothing but never aborts the
// others; its error is logged and swallowed.
type FanOut struct {
	fetchers []ports.Fetcher
	logger   *slog.Logger
}

// NewFanOut wires the enabled fetchers.
func NewFanOut(fetchers []ports.Fetcher, logger *slog.Logger) *FanOut {
	return &FanOut{fetchers: fetchers, logger: logger}
}

// FetchAll collects the raw pool from all sources. Results keep the
// registration order of the fetchers so downstream clustering stays
// deterministic for a given set of source responses.
func (f *FanOut) FetchAll(ctx context.Context) []domain.RawNewsItem {
	results := make([][]domain.RawNewsItem, len(f.fetchers))

	var wg sync.WaitGroup
	for i, ft := range f.fetchers {
		wg.Add(1)
		go func(i int, ft ports.Fetcher) {
			defer wg.Done()
			items, err := ft.Fetch(ctx)
			if err != nil {
				f.logger.Error("source fetch failed", "source", ft.Name(), "error", err)
				return
			}
			f.logger.Info("source fetched", "source", ft.Name(), "items", len(items))
			results[i] = items
		}(i, ft)
	}
	wg.Wait()

	var pool []domain.RawNewsItem
	for _, items := range results {
		pool = append(pool, items...)
	}
	return pool
}
