package storage

import (
	"context"

	"github.com/pfrederiksen/cpbl-games/internal/game"
	"github.com/pfrederiksen/cpbl-games/internal/logger"
	"github.com/pfrederiksen/cpbl-games/internal/metrics"
)

// Fetcher retrieves the record behind a box URL
type Fetcher interface {
	FetchGame(ctx context.Context, url string) (game.Record, error)
}

// CachingFetcher consults a Store before delegating to the wrapped Fetcher.
// Store errors are logged and otherwise ignored.
type CachingFetcher struct {
	inner   Fetcher
	store   Store
	log     *logger.Logger
	metrics *metrics.Recorder
}

// NewCachingFetcher wraps inner. A nil store yields inner itself.
func NewCachingFetcher(inner Fetcher, store Store, log *logger.Logger, rec *metrics.Recorder) Fetcher {
	if store == nil {
		return inner
	}
	return &CachingFetcher{inner: inner, store: store, log: log, metrics: rec}
}

func (c *CachingFetcher) FetchGame(ctx context.Context, url string) (game.Record, error) {
	rec, ok, err := c.store.Load(ctx, url)
	if err != nil {
		c.log.Warn("cache read failed", logger.Fields{"url": url}, err)
	}
	c.metrics.RecordCacheLookup(ok)
	if ok {
		c.log.Debug("cache hit", logger.Fields{"url": url})
		return rec, nil
	}

	rec, err = c.inner.FetchGame(ctx, url)
	if err != nil {
		return game.Record{}, err
	}

	if err := c.store.Save(ctx, url, rec); err != nil {
		c.log.Warn("cache write failed", logger.Fields{"url": url}, err)
	}
	return rec, nil
}
