// Package normalize canonicalizes raw date and team-name tokens scraped from box pages.
package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	dateSeparators = regexp.MustCompile(`[/\-]`)
	periodVariants = strings.NewReplacer(".", "", "．", "")
)

// ideographicSpace is the full-width space U+3000
const ideographicSpace = "　"

// Date turns "2025/4/1" or "2025-04-01" into "2025-04-01".
// It returns false unless the token splits into exactly three numeric parts.
// Calendar validity is not checked: month 13 passes.
func Date(raw string) (string, bool) {
	parts := dateSeparators.Split(strings.TrimSpace(raw), -1)
	if len(parts) != 3 {
		return "", false
	}

	nums := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return "", false
		}
		nums[i] = n
	}

	// wider values would break the fixed-width YYYY-MM-DD form
	if nums[0] > 9999 || nums[1] > 99 || nums[2] > 99 {
		return "", false
	}

	return fmt.Sprintf("%04d-%02d-%02d", nums[0], nums[1], nums[2]), true
}

// TeamName replaces full-width spaces, drops both period variants,
// collapses whitespace runs and trims. Periods go before the whitespace
// collapse so the result is stable under repeated application.
func TeamName(raw string) string {
	s := strings.ReplaceAll(raw, ideographicSpace, " ")
	s = periodVariants.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
