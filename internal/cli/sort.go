package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pfrederiksen/cpbl-games/internal/game"
)

// SortOrder represents the available sorting options for month output
type SortOrder string

const (
	// SortNone keeps the order the scanner produced
	SortNone   SortOrder = ""
	SortByDate SortOrder = "date"
	SortBySno  SortOrder = "sno"
)

// ParseSortOrder validates a --sort value
func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case SortNone, SortByDate, SortBySno:
		return o, nil
	default:
		return "", fmt.Errorf("invalid sort: %s (must be 'date' or 'sno')", s)
	}
}

// sortMonthEntries reorders month scan output.
// Date order falls back to game number for double-headers.
func sortMonthEntries(entries []game.MonthEntry, order SortOrder) {
	switch order {
	case SortByDate:
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].Date != entries[j].Date {
				return entries[i].Date < entries[j].Date
			}
			return entries[i].GameSno < entries[j].GameSno
		})
	case SortBySno:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].GameSno < entries[j].GameSno
		})
	}
}
