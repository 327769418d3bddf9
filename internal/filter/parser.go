package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var dayRangePattern = regexp.MustCompile(`^(\d{1,2})(?:\s*-\s*(\d{1,2}))?$`)

// ParseDayRange parses a day range within year/month into start and end dates.
//
// Supported formats:
//   - "1-15" - Days 1 through 15
//   - "20"   - A single day
//
// Days past the end of the month are rejected.
func ParseDayRange(input string, year, month int) (*time.Time, *time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil, fmt.Errorf("day range cannot be empty")
	}

	matches := dayRangePattern.FindStringSubmatch(input)
	if matches == nil {
		return nil, nil, fmt.Errorf("invalid day range: %s (use e.g. 1-15)", input)
	}

	lastDay := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()

	day1, err := strconv.Atoi(matches[1])
	if err != nil || day1 < 1 || day1 > lastDay {
		return nil, nil, fmt.Errorf("invalid day: %s", matches[1])
	}

	day2 := day1
	if matches[2] != "" {
		day2, err = strconv.Atoi(matches[2])
		if err != nil || day2 < 1 || day2 > lastDay {
			return nil, nil, fmt.Errorf("invalid day: %s", matches[2])
		}
	}

	from := time.Date(year, time.Month(month), day1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.Month(month), day2, 0, 0, 0, 0, time.UTC)

	if from.After(to) {
		return nil, nil, fmt.Errorf("start day must not be after end day")
	}

	return &from, &to, nil
}

// ParseTeams splits a comma-separated team list. Both ASCII and full-width
// commas separate names; blanks are dropped.
func ParseTeams(input string) []string {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == '，' || r == '、'
	})

	teams := make([]string, 0, len(fields))
	for _, f := range fields {
		if t := strings.TrimSpace(f); t != "" {
			teams = append(teams, t)
		}
	}
	return teams
}
