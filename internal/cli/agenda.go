package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"roteiro/internal/crm"
	"roteiro/internal/dateutil"
)

func (a *App) agendaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Manage calendar entries",
	}
	cmd.AddCommand(a.agendaAddCmd())
	cmd.AddCommand(a.agendaListCmd())
	return cmd
}

func (a *App) agendaAddCmd() *cobra.Command {
	var (
		date      string
		hhmm      string
		entryType string
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a calendar entry",
		Example: `  roteiro agenda add "Team meeting" --date=tomorrow --time=08:30
  roteiro agenda add "Warehouse inventory" --type=internal`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			rep, err := a.repID()
			if err != nil {
				return err
			}

			e, err := crm.NewCalendarEntry(rep, args[0], date, hhmm, entryType)
			if err != nil {
				return err
			}

			if err := a.store.CreateEntry(context.Background(), e); err != nil {
				return fmt.Errorf("creating calendar entry: %w", err)
			}
			a.agg.Invalidate(rep, e.Date)

			fmt.Printf("Created entry %s: %s on %s\n", e.ID, e.Title, dateutil.DayKey(e.Date))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Entry date (YYYY-MM-DD, default: today)")
	cmd.Flags().StringVar(&hhmm, "time", "", "Entry time (HH:MM)")
	cmd.Flags().StringVar(&entryType, "type", "", "Entry type (meeting, internal, personal, ...)")

	return cmd
}

func (a *App) agendaListCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the day's calendar entries",
		RunE: func(_ *cobra.Command, _ []string) error {
			rep, err := a.repID()
			if err != nil {
				return err
			}

			day, err := dateutil.ParseRelativeDate(date, dateutil.TruncateToDay(nowFunc()))
			if err != nil {
				return err
			}

			entries, err := a.store.ListEntries(context.Background(), rep, day)
			if err != nil {
				return fmt.Errorf("listing entries: %w", err)
			}
			if len(entries) == 0 {
				fmt.Printf("No calendar entries on %s.\n", dateutil.DayKey(day))
				return nil
			}

			for _, e := range entries {
				timeCol := "--:--"
				if e.Time != "" {
					timeCol = e.Time
				}
				fmt.Printf("  %s  %-7s %s\n", e.ID, timeCol, e.Title)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, today, tomorrow; default: today)")

	return cmd
}
