package scan

import (
	"context"
	"fmt"

	"github.com/pfrederiksen/cpbl-games/internal/game"
	"github.com/pfrederiksen/cpbl-games/internal/logger"
	"github.com/pfrederiksen/cpbl-games/internal/metrics"
	"github.com/pfrederiksen/cpbl-games/internal/schedule"
)

// MonthScanner derives keys from the schedule page and fetches each game.
type MonthScanner struct {
	schedule ScheduleSource
	fetcher  Fetcher
	cfg      Config
}

func NewMonthScanner(src ScheduleSource, fetcher Fetcher, cfg Config) *MonthScanner {
	return &MonthScanner{schedule: src, fetcher: fetcher, cfg: cfg.withDefaults()}
}

// Scan fetches the schedule for year/month/kind, then every linked game in
// key order, pausing before each game. Any failure, schedule or game, aborts
// the scan.
func (m *MonthScanner) Scan(ctx context.Context, year, month int, kind string) ([]game.MonthEntry, error) {
	log := m.cfg.Logger

	log.Info("fetching schedule", logger.Fields{"year": year, "month": month, "kind": kind})
	page, err := m.schedule.FetchSchedule(ctx, year, month, kind)
	if page.Status > 0 {
		log.Info("schedule status", logger.Fields{"url": page.URL, "status": page.Status})
	}
	if err != nil {
		return nil, fmt.Errorf("fetching schedule: %w", err)
	}

	keys, err := schedule.Collect(page.Body, page.URL, year, kind)
	if err != nil {
		return nil, fmt.Errorf("collecting game keys: %w", err)
	}
	log.Info(fmt.Sprintf("found %d game links", len(keys)), nil)

	// Every game fetch is preceded by the delay; one more follows the last
	entries := make([]game.MonthEntry, 0, len(keys))
	for _, key := range keys {
		url := game.BoxURL(m.cfg.BaseURL, key)
		log.Info("fetch game", logger.Fields{"key": key.String(), "url": url})

		if err := m.cfg.pause(ctx, false); err != nil {
			return nil, err
		}

		rec, err := m.fetcher.FetchGame(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("fetching game %s: %w", key, err)
		}
		entries = append(entries, game.NewMonthEntry(key, rec))
		m.cfg.Metrics.RecordDecision("month", metrics.DecisionKeep)
	}

	if len(keys) > 0 {
		if err := m.cfg.pause(ctx, true); err != nil {
			return nil, err
		}
	}

	return entries, nil
}
