package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"roteiro/internal/crm"
	"roteiro/internal/dateutil"
)

func (a *App) visitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "visit",
		Short: "Manage visits",
	}
	cmd.AddCommand(a.visitAddCmd())
	cmd.AddCommand(a.visitListCmd())
	cmd.AddCommand(a.visitStatusCmd())
	return cmd
}

func (a *App) visitAddCmd() *cobra.Command {
	var (
		date  string
		start string
		end   string
		notes string
	)

	cmd := &cobra.Command{
		Use:   "add [prospect-id]",
		Short: "Schedule a visit to a prospect",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			rep, err := a.repID()
			if err != nil {
				return err
			}

			v, err := crm.NewVisit(rep, args[0], date, start, end)
			if err != nil {
				return err
			}
			v.Notes = notes

			ctx := context.Background()
			if err := a.store.CreateVisit(ctx, v); err != nil {
				return fmt.Errorf("creating visit: %w", err)
			}
			a.agg.Invalidate(rep, v.Date)

			fmt.Printf("Created visit %s on %s", v.ID, dateutil.DayKey(v.Date))
			if v.StartTime != "" {
				fmt.Printf(" at %s", v.StartTime)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Visit date (YYYY-MM-DD, default: today)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")

	return cmd
}

func (a *App) visitListCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the day's visits",
		RunE: func(_ *cobra.Command, _ []string) error {
			rep, err := a.repID()
			if err != nil {
				return err
			}

			day, err := dateutil.ParseRelativeDate(date, dateutil.TruncateToDay(nowFunc()))
			if err != nil {
				return err
			}

			visits, err := a.store.ListVisits(context.Background(), rep, day)
			if err != nil {
				return fmt.Errorf("listing visits: %w", err)
			}
			if len(visits) == 0 {
				fmt.Printf("No visits on %s.\n", dateutil.DayKey(day))
				return nil
			}

			for _, v := range visits {
				timeCol := "--:--"
				if v.StartTime != "" {
					timeCol = v.StartTime
				}
				fmt.Printf("  %s  %-7s %s%s\n", v.ID, timeCol, v.ProspectName(), statusSuffix(string(v.Status)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, today, tomorrow; default: today)")

	return cmd
}

func (a *App) visitStatusCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "status [visit-id] [status]",
		Short: "Update a visit's status",
		Long:  `Update a visit's status: scheduled, done, canceled, rescheduled, no_answer or absent.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			rep, err := a.repID()
			if err != nil {
				return err
			}

			status := crm.VisitStatus(args[1])
			if !status.Valid() {
				return crm.ErrInvalidStatus
			}

			if err := a.store.UpdateVisitStatus(context.Background(), args[0], status); err != nil {
				return fmt.Errorf("updating visit: %w", err)
			}

			day, err := dateutil.ParseRelativeDate(date, dateutil.TruncateToDay(nowFunc()))
			if err == nil {
				a.agg.Invalidate(rep, day)
			}

			fmt.Printf("Visit %s is now %s.\n", args[0], status)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date of the visit, used to refresh the report (default: today)")

	return cmd
}
