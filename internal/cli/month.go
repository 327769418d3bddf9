package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/cpbl-games/internal/game"
	"github.com/pfrederiksen/cpbl-games/internal/logger"
	"github.com/pfrederiksen/cpbl-games/internal/scan"
)

// defaultDelaySeconds mirrors scan.DefaultDelay for the --delay flag
var defaultDelaySeconds = scan.DefaultDelay.Seconds()

// NewMonthCmd creates the schedule-link month command
func NewMonthCmd() *cobra.Command {
	return newMonthCmd(newApp())
}

func newMonthCmd(a *app) *cobra.Command {
	var (
		flagYear   int
		flagMonth  int
		flagKind   string
		flagOutput string
		flagDelay  float64
		flagSort   string
		filters    filterFlags
	)

	cmd := &cobra.Command{
		Use:   "cpbl-month",
		Short: "Fetch every CPBL game linked from a month's schedule",
		Long: `Read the CPBL schedule page for a month, collect the box page links on it
and fetch the date and teams of each game in (year, kind, game number) order.
Any failed game aborts the run.`,
		Args: cobra.NoArgs,
	}

	cmd.Flags().IntVar(&flagYear, "year", 0, "Season year, e.g. 2025 (required)")
	cmd.Flags().IntVar(&flagMonth, "month", 0, "Month 1-12 (required)")
	cmd.Flags().StringVar(&flagKind, "kind", "A", "Kind code")
	cmd.Flags().StringVar(&flagOutput, "output", "", "Write the result to this file instead of stdout")
	cmd.Flags().Float64Var(&flagDelay, "delay", defaultDelaySeconds, "Seconds to wait after each game fetch")
	cmd.Flags().StringVar(&flagSort, "sort", "", "Reorder output by 'date' or 'sno' (default schedule key order)")
	filters.add(cmd)
	markRequired(cmd, "year", "month")
	a.addFlags(cmd)

	cmd.RunE = a.run(func(cmd *cobra.Command) error {
		format, err := ParseOutputFormat(a.format)
		if err != nil {
			return err
		}
		order, err := ParseSortOrder(flagSort)
		if err != nil {
			return err
		}
		if err := validateMonth(flagYear, flagMonth, flagDelay); err != nil {
			return err
		}
		f, err := filters.build(flagYear, flagMonth)
		if err != nil {
			return err
		}

		kind := game.NormalizeKind(flagKind)
		scanner := scan.NewMonthScanner(a.scraper, a.fetcher, a.scanConfig(flagDelay))
		entries, err := scanner.Scan(cmd.Context(), flagYear, flagMonth, kind)
		if err != nil {
			return err
		}
		entries = applyFilter(a.log, f, entries, monthGame)
		sortMonthEntries(entries, order)

		out := output{stdout: cmd.OutOrStdout(), path: flagOutput, format: format, baseURL: a.cfg.BaseURL}
		if err := writeEntries(out, entries, monthGame); err != nil {
			return err
		}
		if flagOutput != "" {
			a.log.Info("saved", logger.Fields{"path": flagOutput, "games": len(entries)})
		}
		return nil
	})

	return cmd
}

// validateMonth checks the flags shared by both month commands
func validateMonth(year, month int, delay float64) error {
	if year < game.FirstSeason {
		return fmt.Errorf("year %d before first season %d", year, game.FirstSeason)
	}
	if month < 1 || month > 12 {
		return fmt.Errorf("month %d out of range 1-12", month)
	}
	if delay < 0 {
		return fmt.Errorf("delay must not be negative, got %g", delay)
	}
	return nil
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
