package scan

import (
	"context"
	"errors"
	"fmt"

	"github.com/pfrederiksen/cpbl-games/internal/game"
	"github.com/pfrederiksen/cpbl-games/internal/logger"
	"github.com/pfrederiksen/cpbl-games/internal/metrics"
)

// Range scan defaults
const (
	DefaultStartSno = 1
	DefaultEndSno   = 500
)

// MaxSno bounds the game numbers a range scan may request
const MaxSno = 100000

// RangeParams selects the games probed by a RangeScanner
type RangeParams struct {
	Year     int
	Month    int
	Kind     string
	StartSno int
	EndSno   int
}

// Validate checks the month and the game-number range
func (p RangeParams) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return fmt.Errorf("month %d out of range 1-12", p.Month)
	}
	if p.StartSno < 1 {
		return fmt.Errorf("start game number %d must be positive", p.StartSno)
	}
	if p.EndSno > MaxSno {
		return fmt.Errorf("end game number %d above limit %d", p.EndSno, MaxSno)
	}
	if p.EndSno < p.StartSno {
		return fmt.Errorf("end game number %d before start %d", p.EndSno, p.StartSno)
	}
	return nil
}

// RangeScanner probes every game number in a range and keeps the games
// played in the target month.
type RangeScanner struct {
	fetcher Fetcher
	cfg     Config
}

func NewRangeScanner(fetcher Fetcher, cfg Config) *RangeScanner {
	return &RangeScanner{fetcher: fetcher, cfg: cfg.withDefaults()}
}

// Scan probes p.StartSno..p.EndSno inclusive. Per-game failures are skipped;
// only a cancelled context stops the scan. Results are sorted by date, then
// game number.
func (r *RangeScanner) Scan(ctx context.Context, p RangeParams) ([]game.RangeEntry, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	log := r.cfg.Logger
	target := game.MonthPrefix(p.Year, p.Month)
	targetYear := fmt.Sprintf("%04d", p.Year)
	entries := make([]game.RangeEntry, 0)

	for sno := p.StartSno; sno <= p.EndSno; sno++ {
		key := game.NewKey(p.Year, p.Kind, sno)
		rec, err := r.fetcher.FetchGame(ctx, game.BoxURL(r.cfg.BaseURL, key))

		switch {
		case ctx.Err() != nil:
			return nil, ctx.Err()
		case err != nil:
			r.skipFailed(sno, err)
		case rec.Year() != targetYear:
			log.Debug("skip", logger.Fields{"sno": sno, "reason": "date " + rec.Date + " not in " + targetYear})
			r.cfg.Metrics.RecordDecision("range", metrics.DecisionSkipYear)
		case rec.InMonth(p.Year, p.Month):
			entries = append(entries, game.NewRangeEntry(key, rec))
			log.Info(fmt.Sprintf("✔ %s #%d: %s vs %s", rec.Date, sno, rec.Teams[0], rec.Teams[1]), nil)
			r.cfg.Metrics.RecordDecision("range", metrics.DecisionKeep)
		default:
			log.Info("skip", logger.Fields{"sno": sno, "reason": "date " + rec.Date + " not in " + target})
			r.cfg.Metrics.RecordDecision("range", metrics.DecisionSkipMonth)
		}

		if err := r.cfg.pause(ctx, sno == p.EndSno); err != nil {
			return nil, err
		}
	}

	game.SortRangeEntries(entries)
	return entries, nil
}

// skipFailed logs a failed probe. Failure statuses stay at DEBUG since
// unused game numbers answer with one.
func (r *RangeScanner) skipFailed(sno int, err error) {
	log := r.cfg.Logger
	r.cfg.Metrics.RecordDecision("range", metrics.DecisionSkipError)

	if tErr, ok := game.AsTransportError(err); ok {
		if tErr.IsStatus() {
			log.Debug("skip", logger.Fields{"sno": sno, "status": tErr.StatusCode})
			return
		}
		log.Warn("request failed", logger.Fields{"sno": sno}, err)
		return
	}

	if errors.Is(err, game.ErrNotFoundOrChanged) {
		log.Info("skip", logger.Fields{"sno": sno, "reason": "no game found or page layout changed"})
		return
	}

	log.Warn("skip", logger.Fields{"sno": sno}, err)
}
