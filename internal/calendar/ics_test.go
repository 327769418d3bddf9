package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/cpbl-games/internal/game"
)

var stamp = time.Date(2025, 3, 1, 8, 30, 0, 0, time.UTC)

func TestGenerateICS(t *testing.T) {
	games := []Game{
		{
			Key:    game.NewKey(2025, "A", 12),
			Record: game.Record{Date: "2025-04-01", Teams: [2]string{"中信兄弟", "統一7ELEVEn獅"}},
		},
	}

	ics := GenerateICS(games, game.BaseURL, stamp)

	// Check required ICS fields
	requiredFields := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//CPBL Games//cpbl-games//EN",
		"BEGIN:VEVENT",
		"UID:2025-A-12@cpbl.com.tw",
		"DTSTAMP:20250301T083000Z",
		"DTSTART;VALUE=DATE:20250401",
		"DTEND;VALUE=DATE:20250402",
		"SUMMARY:中信兄弟 vs 統一7ELEVEn獅",
		"DESCRIPTION:CPBL A game #12",
		"URL:https://www.cpbl.com.tw/box/live?year=2025&KindCode=A&gameSno=12",
		"END:VEVENT",
		"END:VCALENDAR",
	}

	for _, field := range requiredFields {
		if !strings.Contains(ics, field) {
			t.Errorf("ICS missing required field: %s", field)
		}
	}

	// Check that lines end with \r\n
	if strings.Contains(strings.ReplaceAll(ics, "\r\n", ""), "\n") {
		t.Error("ICS should use \\r\\n line endings")
	}
}

func TestGenerateICS_MonthEnd(t *testing.T) {
	games := []Game{
		{Key: game.NewKey(2025, "A", 40), Record: game.Record{Date: "2025-04-30", Teams: [2]string{"樂天桃猿", "富邦悍將"}}},
	}

	ics := GenerateICS(games, game.BaseURL, stamp)
	if !strings.Contains(ics, "DTEND;VALUE=DATE:20250501") {
		t.Errorf("DTEND should roll into the next month:\n%s", ics)
	}
}

func TestGenerateICS_SkipsUnparseableDate(t *testing.T) {
	games := []Game{
		{Key: game.NewKey(2025, "A", 1), Record: game.Record{Date: "2025-13-40", Teams: [2]string{"a", "b"}}},
		{Key: game.NewKey(2025, "A", 2), Record: game.Record{Date: "2025-04-02", Teams: [2]string{"c", "d"}}},
	}

	ics := GenerateICS(games, game.BaseURL, stamp)

	if got := strings.Count(ics, "BEGIN:VEVENT"); got != 1 {
		t.Errorf("got %d events, want 1", got)
	}
	if strings.Contains(ics, "UID:2025-A-1@") {
		t.Error("game with unparseable date should be left out")
	}
}

func TestGenerateICS_Empty(t *testing.T) {
	ics := GenerateICS(nil, game.BaseURL, stamp)
	if strings.Contains(ics, "BEGIN:VEVENT") {
		t.Error("empty input should produce no events")
	}
	if !strings.HasPrefix(ics, "BEGIN:VCALENDAR\r\n") || !strings.HasSuffix(ics, "END:VCALENDAR\r\n") {
		t.Errorf("malformed calendar:\n%s", ics)
	}
}

func TestEscapeICS(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"simple", "simple"},
		{"a, b", "a\\, b"},
		{"a; b", "a\\; b"},
		{"back\\slash", "back\\\\slash"},
		{"line\nbreak", "line\\nbreak"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := escapeICS(tt.input); got != tt.want {
				t.Errorf("escapeICS(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
