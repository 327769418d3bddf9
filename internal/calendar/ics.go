// Package calendar renders games as an iCalendar (.ics) feed.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/cpbl-games/internal/game"
)

// Game is one calendar entry: the key names the box page, the record holds
// the date and teams read from it.
type Game struct {
	Key    game.Key
	Record game.Record
}

// GenerateICS generates an iCalendar document with one all-day event per game.
// Games whose date does not parse are left out.
func GenerateICS(games []Game, baseURL string, now time.Time) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//CPBL Games//cpbl-games//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	ics.WriteString("X-WR-TIMEZONE:Asia/Taipei\r\n")

	stamp := formatICSTime(now)
	for _, g := range games {
		day, err := time.Parse("2006-01-02", g.Record.Date)
		if err != nil {
			continue
		}
		writeEvent(&ics, g, day, stamp, baseURL)
	}

	ics.WriteString("END:VCALENDAR\r\n")
	return ics.String()
}

func writeEvent(ics *strings.Builder, g Game, day time.Time, stamp, baseURL string) {
	ics.WriteString("BEGIN:VEVENT\r\n")

	// UID stays stable across exports so calendar clients update in place
	fmt.Fprintf(ics, "UID:%s@cpbl.com.tw\r\n", g.Key)
	fmt.Fprintf(ics, "DTSTAMP:%s\r\n", stamp)

	// All-day event; DTEND is exclusive
	fmt.Fprintf(ics, "DTSTART;VALUE=DATE:%s\r\n", formatICSDate(day))
	fmt.Fprintf(ics, "DTEND;VALUE=DATE:%s\r\n", formatICSDate(day.AddDate(0, 0, 1)))

	summary := fmt.Sprintf("%s vs %s", g.Record.Teams[0], g.Record.Teams[1])
	fmt.Fprintf(ics, "SUMMARY:%s\r\n", escapeICS(summary))

	description := fmt.Sprintf("CPBL %s game #%d", g.Key.Kind, g.Key.Sno)
	fmt.Fprintf(ics, "DESCRIPTION:%s\r\n", escapeICS(description))

	fmt.Fprintf(ics, "URL:%s\r\n", game.BoxURL(baseURL, g.Key))
	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("TRANSP:TRANSPARENT\r\n")

	ics.WriteString("END:VEVENT\r\n")
}

// formatICSTime formats a time.Time as an iCalendar datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

func formatICSDate(t time.Time) string {
	return t.Format("20060102")
}

// escapeICS escapes special characters for iCalendar format
func escapeICS(s string) string {
	// Replace special characters according to RFC 5545
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
