package matcher

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/cpbl-games/internal/game"
	"github.com/pfrederiksen/cpbl-games/internal/normalize"
)

// Result is a normalized record plus the name of the strategy that produced it
type Result struct {
	Record   game.Record
	Strategy string
}

// Matcher applies strategies in priority order
type Matcher struct {
	strategies []Strategy
}

// New creates a Matcher over the given strategies, in order.
// With no strategies it uses breadcrumb, title, then page text.
func New(strategies ...Strategy) *Matcher {
	if len(strategies) == 0 {
		strategies = []Strategy{Breadcrumb(), TitleText(), PageText()}
	}
	return &Matcher{strategies: strategies}
}

// Strategies returns the strategy names in the order they are tried
func (m *Matcher) Strategies() []string {
	names := make([]string, 0, len(m.strategies))
	for _, s := range m.strategies {
		names = append(names, s.Name())
	}
	return names
}

// Match returns the first strategy result that normalizes into a valid record.
// A structural match whose date or teams fail normalization counts as a miss.
func (m *Matcher) Match(doc *goquery.Document) (Result, bool) {
	for _, s := range m.strategies {
		raw, ok := s.Extract(doc)
		if !ok {
			continue
		}
		rec, ok := Normalize(raw)
		if !ok {
			continue
		}
		return Result{Record: rec, Strategy: s.Name()}, true
	}
	return Result{}, false
}

// Normalize converts a RawMatch into a game.Record
func Normalize(raw RawMatch) (game.Record, bool) {
	date, ok := normalize.Date(raw.Date)
	if !ok {
		return game.Record{}, false
	}
	rec, err := game.NewRecord(date, normalize.TeamName(raw.Left), normalize.TeamName(raw.Right))
	if err != nil {
		return game.Record{}, false
	}
	return rec, true
}
