package game

import "sort"

// SortKeys sorts keys ascending by (year, kind, sno)
func SortKeys(keys []Key) {
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Less(keys[j])
	})
}

// SortRangeEntries sorts entries by date, then game number.
// Game numbers are not always chronological (double-headers, postponements).
func SortRangeEntries(entries []RangeEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date < entries[j].Date
		}
		return entries[i].GameSno < entries[j].GameSno
	})
}
