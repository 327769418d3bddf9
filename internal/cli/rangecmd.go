package cli

import (
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/cpbl-games/internal/game"
	"github.com/pfrederiksen/cpbl-games/internal/logger"
	"github.com/pfrederiksen/cpbl-games/internal/scan"
)

// NewRangeCmd creates the range-scan month command
func NewRangeCmd() *cobra.Command {
	return newRangeCmd(newApp())
}

func newRangeCmd(a *app) *cobra.Command {
	var (
		flagYear     int
		flagMonth    int
		flagKind     string
		flagStartSno int
		flagEndSno   int
		flagDelay    float64
		flagOutput   string
		filters      filterFlags
	)

	cmd := &cobra.Command{
		Use:   "cpbl-month-range",
		Short: "Blind-scan a range of CPBL game numbers for one month",
		Long: `Probe every game number from --start-sno to --end-sno and keep the games
whose date falls in the target year and month. Missing or unreadable games
are skipped. Output is sorted by date, then game number.`,
		Args: cobra.NoArgs,
	}

	cmd.Flags().IntVar(&flagYear, "year", 0, "Season year, e.g. 2025 (required)")
	cmd.Flags().IntVar(&flagMonth, "month", 0, "Month 1-12 (required)")
	cmd.Flags().StringVar(&flagKind, "kind", "A", "Kind code")
	cmd.Flags().IntVar(&flagStartSno, "start-sno", scan.DefaultStartSno, "First game number to probe")
	cmd.Flags().IntVar(&flagEndSno, "end-sno", scan.DefaultEndSno, "Last game number to probe")
	cmd.Flags().Float64Var(&flagDelay, "delay", defaultDelaySeconds, "Seconds to wait after each game fetch")
	cmd.Flags().StringVar(&flagOutput, "output", "", "Write the result to this file instead of stdout")
	filters.add(cmd)
	markRequired(cmd, "year", "month")
	a.addFlags(cmd)

	cmd.RunE = a.run(func(cmd *cobra.Command) error {
		format, err := ParseOutputFormat(a.format)
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

		params := scan.RangeParams{
			Year:     flagYear,
			Month:    flagMonth,
			Kind:     game.NormalizeKind(flagKind),
			StartSno: flagStartSno,
			EndSno:   flagEndSno,
		}
		scanner := scan.NewRangeScanner(a.fetcher, a.scanConfig(flagDelay))
		entries, err := scanner.Scan(cmd.Context(), params)
		if err != nil {
			return err
		}

		asGame := rangeGame(flagYear)
		entries = applyFilter(a.log, f, entries, asGame)

		out := output{stdout: cmd.OutOrStdout(), path: flagOutput, format: format, baseURL: a.cfg.BaseURL}
		if err := writeEntries(out, entries, asGame); err != nil {
			return err
		}
		if flagOutput != "" {
			a.log.Info("saved", logger.Fields{"path": flagOutput, "games": len(entries)})
		}
		return nil
	})

	return cmd
}
