package game

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

const (
	BaseURL = "https://www.cpbl.com.tw"

	boxPath      = "/box/live"
	schedulePath = "/schedule/index"
)

// BoxURL builds the live box-score URL for a key. It performs no network access.
func BoxURL(base string, k Key) string {
	return fmt.Sprintf("%s%s?year=%d&KindCode=%s&gameSno=%d",
		strings.TrimRight(base, "/"), boxPath, k.Year, url.QueryEscape(k.Kind), k.Sno)
}

// ScheduleURL builds the monthly schedule page URL
func ScheduleURL(base string, year, month int, kind string) string {
	return fmt.Sprintf("%s%s?year=%d&month=%02d&kindCode=%s",
		strings.TrimRight(base, "/"), schedulePath, year, month, url.QueryEscape(kind))
}

// ParseBoxURL derives a Key from a box URL. Query parameter names are matched
// case-insensitively. The game number is required; year and kind fall back to
// the given values when absent. Any unusable value yields ErrMalformedKey.
func ParseBoxURL(rawURL string, fallbackYear int, fallbackKind string) (Key, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Key{}, fmt.Errorf("%w: %v", ErrMalformedKey, err)
	}

	values := u.Query()
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	query := make(map[string]string)
	for _, name := range names {
		lower := strings.ToLower(name)
		if _, seen := query[lower]; seen || len(values[name]) == 0 {
			continue
		}
		query[lower] = values[name][0]
	}

	snoText, ok := query["gamesno"]
	if !ok || snoText == "" {
		return Key{}, fmt.Errorf("%w: missing gameSno in %s", ErrMalformedKey, rawURL)
	}
	sno, err := strconv.Atoi(strings.TrimSpace(snoText))
	if err != nil {
		return Key{}, fmt.Errorf("%w: gameSno %q", ErrMalformedKey, snoText)
	}

	year := fallbackYear
	if yearText, ok := query["year"]; ok && yearText != "" {
		year, err = strconv.Atoi(strings.TrimSpace(yearText))
		if err != nil {
			return Key{}, fmt.Errorf("%w: year %q", ErrMalformedKey, yearText)
		}
	}

	kind := fallbackKind
	if kindText, ok := query["kindcode"]; ok && kindText != "" {
		kind = kindText
	}

	return NewKey(year, kind, sno), nil
}
