package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/cpbl-games/internal/calendar"
	"github.com/pfrederiksen/cpbl-games/internal/game"
	"github.com/pfrederiksen/cpbl-games/internal/logger"
)

// NewGameCmd creates the single-game command
func NewGameCmd() *cobra.Command {
	return newGameCmd(newApp())
}

func newGameCmd(a *app) *cobra.Command {
	var (
		flagURL  string
		flagYear int
		flagKind string
		flagSno  int
	)

	cmd := &cobra.Command{
		Use:   "cpbl-game",
		Short: "Fetch the date and teams of one CPBL game",
		Long: `Fetch one CPBL box page and print its date and the two team names.
The teams keep the page's left/right order; no home/away role is implied.

Give either --url or all of --year, --kind and --sno.`,
		Args: cobra.NoArgs,
	}

	cmd.Flags().StringVar(&flagURL, "url", "", "Full box page URL")
	cmd.Flags().IntVar(&flagYear, "year", 0, "Season year, e.g. 2025")
	cmd.Flags().StringVar(&flagKind, "kind", "", "Kind code, e.g. A")
	cmd.Flags().IntVar(&flagSno, "sno", 0, "Game number, e.g. 351")
	a.addFlags(cmd)

	cmd.RunE = a.run(func(cmd *cobra.Command) error {
		format, err := ParseOutputFormat(a.format)
		if err != nil {
			return err
		}

		var key game.Key
		url := flagURL
		if url == "" {
			if flagYear == 0 || flagKind == "" || flagSno == 0 {
				return errors.New("provide --url or all of --year, --kind and --sno")
			}
			key = game.NewKey(flagYear, flagKind, flagSno)
			if err := key.Validate(); err != nil {
				return err
			}
			url = game.BoxURL(a.cfg.BaseURL, key)
		} else if k, err := game.ParseBoxURL(url, 0, ""); err == nil {
			key = k
		}

		a.log.Debug("fetch game", logger.Fields{"url": url})
		rec, err := a.fetcher.FetchGame(cmd.Context(), url)
		if err != nil {
			if errors.Is(err, game.ErrNotFoundOrChanged) {
				return fmt.Errorf("parse failed, the game may not exist or the page layout changed: %w", err)
			}
			return err
		}

		out := cmd.OutOrStdout()
		g := calendar.Game{Key: key, Record: rec}
		switch format {
		case FormatText:
			_, err := fmt.Fprintln(out, gameLine(g))
			return err
		case FormatICS:
			_, err := io.WriteString(out, calendar.GenerateICS([]calendar.Game{g}, a.cfg.BaseURL, time.Now()))
			return err
		default:
			return writeJSON(out, gameOutput{Date: rec.Date, Teams: rec.Teams})
		}
	})

	return cmd
}
