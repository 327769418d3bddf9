// Package schedule collects game keys from a CPBL monthly schedule page.
package schedule

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/cpbl-games/internal/game"
)

// BoxLinkSelector matches links to individual box pages
const BoxLinkSelector = `a[href*="/box/"]`

// Page is a fetched schedule page. Links on it resolve against URL.
type Page struct {
	URL    string
	Status int
	Body   string
}

// Collect returns the distinct keys linked from a schedule page, sorted by
// (year, kind, sno). Links are resolved against baseURL. Links without a
// numeric game number are dropped; missing year or kind fall back to the
// given values.
func Collect(scheduleHTML, baseURL string, fallbackYear int, fallbackKind string) ([]game.Key, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(scheduleHTML))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	seen := make(map[game.Key]bool)
	keys := make([]game.Key, 0)

	doc.Find(BoxLinkSelector).Each(func(i int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		href = strings.TrimSpace(href)
		if !exists || href == "" {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}

		key, err := game.ParseBoxURL(base.ResolveReference(ref).String(), fallbackYear, fallbackKind)
		if err != nil {
			return
		}

		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	})

	game.SortKeys(keys)
	return keys, nil
}
