package game

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// FirstSeason is the first CPBL season with box pages.
const FirstSeason = 1990

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Key identifies a single game page
type Key struct {
	Year int
	Kind string
	Sno  int
}

// NewKey builds a Key with the kind code upper-cased
func NewKey(year int, kind string, sno int) Key {
	return Key{Year: year, Kind: NormalizeKind(kind), Sno: sno}
}

// NormalizeKind trims and upper-cases a kind code ("a " -> "A")
func NormalizeKind(kind string) string {
	return strings.ToUpper(strings.TrimSpace(kind))
}

// Validate reports whether the key can name a real box page.
func (k Key) Validate() error {
	if k.Year < FirstSeason {
		return fmt.Errorf("year %d before first season %d", k.Year, FirstSeason)
	}
	if k.Kind == "" {
		return errors.New("kind code is empty")
	}
	if k.Sno <= 0 {
		return fmt.Errorf("game number %d is not positive", k.Sno)
	}
	return nil
}

// Less orders keys by (year, kind, sno)
func (k Key) Less(other Key) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	if k.Kind != other.Kind {
		return k.Kind < other.Kind
	}
	return k.Sno < other.Sno
}

func (k Key) String() string {
	return fmt.Sprintf("%d-%s-%d", k.Year, k.Kind, k.Sno)
}

// Record is the metadata extracted from one box page.
// Teams keeps the page's left/right order.
type Record struct {
	Date  string    `json:"date"`
	Teams [2]string `json:"teams"`
}

// NewRecord checks the record invariants: a YYYY-MM-DD date and two non-empty teams.
func NewRecord(date, left, right string) (Record, error) {
	if !datePattern.MatchString(date) {
		return Record{}, fmt.Errorf("malformed date %q", date)
	}
	if left == "" || right == "" {
		return Record{}, fmt.Errorf("empty team name in %q / %q", left, right)
	}
	return Record{Date: date, Teams: [2]string{left, right}}, nil
}

// Year returns the "YYYY" prefix of the record date
func (r Record) Year() string {
	if len(r.Date) < 4 {
		return ""
	}
	return r.Date[:4]
}

// InMonth reports whether the record falls in the given year and month.
func (r Record) InMonth(year, month int) bool {
	return strings.HasPrefix(r.Date, MonthPrefix(year, month))
}

// MonthPrefix returns the "YYYY-MM" prefix used to filter dates.
func MonthPrefix(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// MonthEntry is one game found through the schedule page links
type MonthEntry struct {
	Year     int       `json:"year"`
	Date     string    `json:"date"`
	KindCode string    `json:"KindCode"`
	GameSno  int       `json:"GameSno"`
	Teams    [2]string `json:"teams"`
}

// NewMonthEntry combines a key with the record fetched for it
func NewMonthEntry(k Key, r Record) MonthEntry {
	return MonthEntry{Year: k.Year, Date: r.Date, KindCode: k.Kind, GameSno: k.Sno, Teams: r.Teams}
}

// RangeEntry is one game found by the blind range scan
type RangeEntry struct {
	Date     string    `json:"date"`
	KindCode string    `json:"KindCode"`
	GameSno  int       `json:"GameSno"`
	Teams    [2]string `json:"teams"`
}

// NewRangeEntry combines a key with the record fetched for it
func NewRangeEntry(k Key, r Record) RangeEntry {
	return RangeEntry{Date: r.Date, KindCode: k.Kind, GameSno: k.Sno, Teams: r.Teams}
}
