package scan

import (
	"context"
	"time"

	"github.com/pfrederiksen/cpbl-games/internal/game"
	"github.com/pfrederiksen/cpbl-games/internal/logger"
	"github.com/pfrederiksen/cpbl-games/internal/metrics"
	"github.com/pfrederiksen/cpbl-games/internal/schedule"
)

// DefaultDelay is the pause after each game fetch
const DefaultDelay = 1200 * time.Millisecond

// Fetcher retrieves the record behind a box URL
type Fetcher interface {
	FetchGame(ctx context.Context, url string) (game.Record, error)
}

// ScheduleSource retrieves a monthly schedule page. The page URL and status
// are set even when the fetch fails.
type ScheduleSource interface {
	FetchSchedule(ctx context.Context, year, month int, kind string) (schedule.Page, error)
}

// Sleeper pauses for d or until ctx is done
type Sleeper func(ctx context.Context, d time.Duration) error

// Sleep is the real Sleeper
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Config holds the settings shared by both scanners
type Config struct {
	// BaseURL is the site root box URLs are built against
	BaseURL string
	// Delay runs after every game fetch, the last one included
	Delay time.Duration
	// SkipFinalDelay drops the pause after the last fetch
	SkipFinalDelay bool
	Sleep          Sleeper
	Logger         *logger.Logger
	Metrics        *metrics.Recorder
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = game.BaseURL
	}
	if c.Sleep == nil {
		c.Sleep = Sleep
	}
	return c
}

// pause runs the delay unless it is the one after the last fetch and the
// final delay is off
func (c Config) pause(ctx context.Context, afterLast bool) error {
	if afterLast && c.SkipFinalDelay {
		return ctx.Err()
	}
	return c.Sleep(ctx, c.Delay)
}
