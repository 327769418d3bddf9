// Package metrics counts fetch outcomes and scan decisions on a private
// prometheus registry that can be dumped in the textfile exposition format.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pfrederiksen/cpbl-games/internal/game"
)

// Fetch outcomes
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeStatus   = "status"
	OutcomeNetwork  = "network"
	OutcomeOther    = "error"
)

// Scan decisions
const (
	DecisionKeep      = "keep"
	DecisionSkipError = "skip_error"
	DecisionSkipYear  = "skip_year"
	DecisionSkipMonth = "skip_month"
)

// Recorder wraps the prometheus collectors. A nil Recorder records nothing.
type Recorder struct {
	registry      *prometheus.Registry
	fetches       *prometheus.CounterVec
	fetchDuration prometheus.Histogram
	decisions     *prometheus.CounterVec
	cacheLookups  *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cpbl_game_fetches_total",
			Help: "Box page fetches by outcome.",
		}, []string{"outcome"}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cpbl_game_fetch_duration_seconds",
			Help:    "Time spent fetching and parsing one box page.",
			Buckets: prometheus.DefBuckets,
		}),
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cpbl_scan_decisions_total",
			Help: "Per-game scan decisions.",
		}, []string{"scan", "decision"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cpbl_record_cache_lookups_total",
			Help: "Record cache lookups by result.",
		}, []string{"result"}),
	}
	r.registry.MustRegister(r.fetches, r.fetchDuration, r.decisions, r.cacheLookups)
	return r
}

// Registry exposes the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// RecordFetch counts one page fetch and observes its duration.
func (r *Recorder) RecordFetch(duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.fetches.WithLabelValues(Outcome(err)).Inc()
	r.fetchDuration.Observe(duration.Seconds())
}

// RecordDecision counts a keep/skip decision made by a scanner
func (r *Recorder) RecordDecision(scan, decision string) {
	if r == nil {
		return
	}
	r.decisions.WithLabelValues(scan, decision).Inc()
}

// RecordCacheLookup counts a cache hit or miss
func (r *Recorder) RecordCacheLookup(hit bool) {
	if r == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(result).Inc()
}

// WriteTextfile writes all metrics to path for a node_exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}

// Outcome classifies a fetch error into a metrics label
func Outcome(err error) string {
	if err == nil {
		return OutcomeOK
	}
	if errors.Is(err, game.ErrNotFoundOrChanged) {
		return OutcomeNotFound
	}
	if tErr, ok := game.AsTransportError(err); ok {
		if tErr.IsStatus() {
			return OutcomeStatus
		}
		return OutcomeNetwork
	}
	return OutcomeOther
}
