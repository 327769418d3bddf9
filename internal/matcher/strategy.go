package matcher

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// BreadcrumbSelector finds the anchors of a breadcrumb trail
const BreadcrumbSelector = `.breadcrumb a, .breadcrumbs a, .Breadcrumbs a, nav[aria-label="breadcrumb"] a`

// RawMatch is an unnormalized (date, left, right) triple from one strategy
type RawMatch struct {
	Date  string
	Left  string
	Right string
}

// Strategy attempts to pull a RawMatch out of a page.
type Strategy interface {
	Name() string
	Extract(doc *goquery.Document) (RawMatch, bool)
}

// BreadcrumbStrategy reads titles such as "2025/04/01 中信兄弟 VS 統一7ELEVEn獅"
// from breadcrumb anchors.
type BreadcrumbStrategy struct {
	Selector string
}

// Breadcrumb returns a BreadcrumbStrategy using BreadcrumbSelector
func Breadcrumb() *BreadcrumbStrategy {
	return &BreadcrumbStrategy{Selector: BreadcrumbSelector}
}

func (b *BreadcrumbStrategy) Name() string { return "breadcrumb" }

// Extract returns the first anchor text that carries a VS token, starts with a
// date and splits into exactly two sides.
func (b *BreadcrumbStrategy) Extract(doc *goquery.Document) (RawMatch, bool) {
	var match RawMatch
	found := false

	doc.Find(b.Selector).EachWithBreak(func(i int, sel *goquery.Selection) bool {
		// &nbsp; and U+3000 count as separators
		text := collapse(sel.Text())
		if !breadcrumbVS.MatchString(text) {
			return true
		}

		head := breadcrumbHead.FindStringSubmatch(text)
		if head == nil {
			return true
		}

		sides := breadcrumbSplit.Split(head[2], -1)
		if len(sides) != 2 {
			return true
		}

		match = RawMatch{Date: head[1], Left: sides[0], Right: sides[1]}
		found = true
		return false
	})

	return match, found
}

// TextStrategy runs titlePatterns against text taken from the page
type TextStrategy struct {
	name   string
	source func(doc *goquery.Document) string
}

// TitleText matches against the <title> element
func TitleText() *TextStrategy {
	return &TextStrategy{name: "title", source: titleText}
}

// PageText matches against the whole rendered page text
func PageText() *TextStrategy {
	return &TextStrategy{name: "page-text", source: pageText}
}

func (s *TextStrategy) Name() string { return s.name }

// Extract returns the match of the first pattern that hits
func (s *TextStrategy) Extract(doc *goquery.Document) (RawMatch, bool) {
	text := s.source(doc)
	if text == "" {
		return RawMatch{}, false
	}

	for _, rx := range titlePatterns {
		if m := rx.FindStringSubmatch(text); m != nil {
			return RawMatch{Date: m[1], Left: m[2], Right: m[3]}, true
		}
	}
	return RawMatch{}, false
}

func titleText(doc *goquery.Document) string {
	return collapse(doc.Find("title").First().Text())
}

// pageText joins every visible text node with single spaces
func pageText(doc *goquery.Document) string {
	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "noscript", "template":
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range doc.Nodes {
		walk(n)
	}
	return collapse(strings.Join(parts, " "))
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
