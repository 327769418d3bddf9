// Package scan discovers the games of one month.
//
// MonthScanner follows the links on the monthly schedule page. RangeScanner
// probes a contiguous range of game numbers directly, for months whose
// schedule page is missing or incomplete. Both run strictly sequentially and
// pause for a configurable delay after every game fetch. MonthScanner also
// pauses between the schedule request and the first game.
//
// The two scanners treat per-game failures differently. A failed game fetch
// aborts a MonthScanner run, since schedule links are expected to resolve.
// RangeScanner skips the failed number and keeps going, since most probed
// numbers in a range do not exist.
package scan
