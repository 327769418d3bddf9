// Package filter narrows scan output down to the games a user cares about.
//
// Criteria:
//   - Day range within the scanned month (inclusive)
//   - Teams (substring match against either side, case-insensitive)
//   - Weekends only (Saturday/Sunday)
//
// Example usage:
//
//	// Weekend games involving 中信兄弟 in the first half of April
//	f := filter.NewFilter()
//	f.WeekendsOnly = true
//	f.Teams = []string{"中信兄弟"}
//	f.DateFrom, f.DateTo, _ = filter.ParseDayRange("1-15", 2025, 4)
//
//	kept := filter.Apply(f, entries, func(e game.RangeEntry) (string, [2]string) {
//		return e.Date, e.Teams
//	})
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/cpbl-games/internal/normalize"
)

const dateLayout = "2006-01-02"

// Filter represents game filtering criteria
type Filter struct {
	// Date range filtering, both ends inclusive
	DateFrom *time.Time `json:"date_from,omitempty"`
	DateTo   *time.Time `json:"date_to,omitempty"`

	// Team filtering (case-insensitive substring match on either team)
	Teams []string `json:"teams,omitempty"`

	// Weekend-only filtering (Saturday/Sunday)
	WeekendsOnly bool `json:"weekends_only,omitempty"`
}

// NewFilter creates a new empty filter with no active criteria.
// The filter will match all games until criteria are added.
func NewFilter() *Filter {
	return &Filter{
		Teams: []string{},
	}
}

// IsEmpty checks if the filter has any active criteria.
func (f *Filter) IsEmpty() bool {
	return f == nil ||
		(f.DateFrom == nil &&
			f.DateTo == nil &&
			len(f.Teams) == 0 &&
			!f.WeekendsOnly)
}

// Matches checks if a game passes all active criteria.
// Games whose date does not parse fail any date-based criterion.
func (f *Filter) Matches(date string, teams [2]string) bool {
	if f.IsEmpty() {
		return true
	}

	if f.DateFrom != nil || f.DateTo != nil || f.WeekendsOnly {
		day, err := time.Parse(dateLayout, date)
		if err != nil {
			return false
		}
		if f.DateFrom != nil && day.Before(*f.DateFrom) {
			return false
		}
		if f.DateTo != nil && day.After(*f.DateTo) {
			return false
		}
		if f.WeekendsOnly {
			weekday := day.Weekday()
			if weekday != time.Saturday && weekday != time.Sunday {
				return false
			}
		}
	}

	if len(f.Teams) > 0 && !f.matchesTeam(teams) {
		return false
	}

	return true
}

func (f *Filter) matchesTeam(teams [2]string) bool {
	for _, side := range teams {
		sideLower := strings.ToLower(normalize.TeamName(side))
		for _, team := range f.Teams {
			if strings.Contains(sideLower, strings.ToLower(normalize.TeamName(team))) {
				return true
			}
		}
	}
	return false
}

// Apply returns the items that match f. fields extracts the date and teams
// of an item. An empty filter returns items unchanged.
func Apply[T any](f *Filter, items []T, fields func(T) (string, [2]string)) []T {
	if f.IsEmpty() {
		return items
	}

	filtered := make([]T, 0, len(items))
	for _, item := range items {
		if f.Matches(fields(item)) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// String returns a human-readable description of the active filter criteria.
// Format: "From: 2025-04-01 | To: 2025-04-15 | Teams: 中信兄弟 | Weekends only"
func (f *Filter) String() string {
	if f.IsEmpty() {
		return "No active filters"
	}

	var parts []string

	if f.DateFrom != nil {
		parts = append(parts, fmt.Sprintf("From: %s", f.DateFrom.Format(dateLayout)))
	}

	if f.DateTo != nil {
		parts = append(parts, fmt.Sprintf("To: %s", f.DateTo.Format(dateLayout)))
	}

	if len(f.Teams) > 0 {
		parts = append(parts, fmt.Sprintf("Teams: %s", strings.Join(f.Teams, ", ")))
	}

	if f.WeekendsOnly {
		parts = append(parts, "Weekends only")
	}

	return strings.Join(parts, " | ")
}
