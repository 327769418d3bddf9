package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pfrederiksen/cpbl-games/internal/calendar"
	"github.com/pfrederiksen/cpbl-games/internal/game"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatICS  OutputFormat = "ics"
)

// ParseOutputFormat validates a --format value
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatText, FormatICS:
		return f, nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be 'json', 'text' or 'ics')", s)
	}
}

// gameOutput is the single-game payload
type gameOutput struct {
	Date  string    `json:"date"`
	Teams [2]string `json:"teams"`
}

// writeJSON writes v indented with non-ASCII and HTML characters left as-is
func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// gameLine renders one game as "2025-04-01 A#12 left vs right"
func gameLine(g calendar.Game) string {
	teams := g.Record.Teams
	if g.Key.Kind == "" {
		return fmt.Sprintf("%s %s vs %s", g.Record.Date, teams[0], teams[1])
	}
	return fmt.Sprintf("%s %s#%d %s vs %s", g.Record.Date, g.Key.Kind, g.Key.Sno, teams[0], teams[1])
}

// writeText writes one line per game followed by a total
func writeText(w io.Writer, games []calendar.Game) error {
	if len(games) == 0 {
		_, err := fmt.Fprintln(w, "No games found.")
		return err
	}
	for _, g := range games {
		if _, err := fmt.Fprintln(w, gameLine(g)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\nTotal: %d games\n", len(games))
	return err
}

// monthGame and rangeGame expose scan entries as key/record pairs
func monthGame(e game.MonthEntry) calendar.Game {
	return calendar.Game{
		Key:    game.Key{Year: e.Year, Kind: e.KindCode, Sno: e.GameSno},
		Record: game.Record{Date: e.Date, Teams: e.Teams},
	}
}

func rangeGame(year int) func(game.RangeEntry) calendar.Game {
	return func(e game.RangeEntry) calendar.Game {
		return calendar.Game{
			Key:    game.Key{Year: year, Kind: e.KindCode, Sno: e.GameSno},
			Record: game.Record{Date: e.Date, Teams: e.Teams},
		}
	}
}

// output says where and how a command writes its result
type output struct {
	stdout  io.Writer
	path    string
	format  OutputFormat
	baseURL string
}

// writeEntries renders entries to o.path, or to stdout when the path is empty
func writeEntries[T any](o output, entries []T, asGame func(T) calendar.Game) (err error) {
	w := o.stdout
	if o.path != "" {
		f, cerr := os.Create(o.path)
		if cerr != nil {
			return fmt.Errorf("creating output file: %w", cerr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing output file: %w", cerr)
			}
		}()
		w = f
	}

	if entries == nil {
		entries = []T{}
	}

	if o.format == FormatJSON {
		return writeJSON(w, entries)
	}

	games := make([]calendar.Game, 0, len(entries))
	for _, e := range entries {
		games = append(games, asGame(e))
	}

	switch o.format {
	case FormatText:
		return writeText(w, games)
	case FormatICS:
		_, err := io.WriteString(w, calendar.GenerateICS(games, o.baseURL, time.Now()))
		return err
	default:
		return fmt.Errorf("unknown format: %s", o.format)
	}
}
