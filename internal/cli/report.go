package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"roteiro/internal/dateutil"
	"roteiro/internal/report"
)

func (a *App) reportCmd() *cobra.Command {
	var (
		date    string
		buckets bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the day's merged timeline",
		Long: `Show the rep's daily report: visits, open tasks and calendar
entries merged into one timeline sorted by start time, with prospect
insights attached to visits.`,
		Example: `  roteiro report
  roteiro report --date=tomorrow
  roteiro report --date=2025-09-01 --buckets`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rep, err := a.repID()
			if err != nil {
				return err
			}

			day, err := dateutil.ParseRelativeDate(date, dateutil.TruncateToDay(nowFunc()))
			if err != nil {
				return err
			}

			events, err := a.agg.DailyReport(context.Background(), rep, day)
			if err != nil {
				return fmt.Errorf("building report: %w", err)
			}

			if len(events) == 0 {
				fmt.Printf("Nothing scheduled for %s.\n", dateutil.DayKey(day))
				return nil
			}

			if buckets {
				renderBuckets(cmd.OutOrStdout(), day, report.Bucket(events))
				return nil
			}
			renderTimeline(cmd.OutOrStdout(), day, events)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Report date (YYYY-MM-DD, today, tomorrow; default: today)")
	cmd.Flags().BoolVar(&buckets, "buckets", false, "Group output by period of day")

	return cmd
}
