package cli

import (
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/cpbl-games/internal/calendar"
	"github.com/pfrederiksen/cpbl-games/internal/filter"
	"github.com/pfrederiksen/cpbl-games/internal/logger"
)

// filterFlags are the output filters shared by both month commands
type filterFlags struct {
	teams        string
	days         string
	weekendsOnly bool
}

func (ff *filterFlags) add(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ff.teams, "team", "", "Keep games involving any of these teams (comma-separated)")
	cmd.Flags().StringVar(&ff.days, "days", "", "Keep games on these days of the month, e.g. 1-15")
	cmd.Flags().BoolVar(&ff.weekendsOnly, "weekends-only", false, "Keep only Saturday and Sunday games")
}

// build turns the flags into a Filter for year/month
func (ff *filterFlags) build(year, month int) (*filter.Filter, error) {
	f := filter.NewFilter()
	f.Teams = filter.ParseTeams(ff.teams)
	f.WeekendsOnly = ff.weekendsOnly
	if ff.days != "" {
		from, to, err := filter.ParseDayRange(ff.days, year, month)
		if err != nil {
			return nil, err
		}
		f.DateFrom, f.DateTo = from, to
	}
	return f, nil
}

// applyFilter drops entries f rejects and logs how many were removed
func applyFilter[T any](log *logger.Logger, f *filter.Filter, entries []T, asGame func(T) calendar.Game) []T {
	if f.IsEmpty() {
		return entries
	}
	kept := filter.Apply(f, entries, func(e T) (string, [2]string) {
		g := asGame(e)
		return g.Record.Date, g.Record.Teams
	})
	log.Info("filtered", logger.Fields{"filter": f.String(), "kept": len(kept), "dropped": len(entries) - len(kept)})
	return kept
}
