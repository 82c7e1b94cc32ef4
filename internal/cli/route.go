package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"roteiro/internal/dateutil"
	"roteiro/internal/route"
)

func (a *App) routeCmd() *cobra.Command {
	var (
		date string
		save string
	)

	cmd := &cobra.Command{
		Use:   "route",
		Short: "Order the day's visits into a travel route",
		Long: `Order the rep's visits for a day by explicit route rank, or by
start time when no ranks are set, and sum distance and travel time.`,
		Example: `  roteiro route
  roteiro route --date=tomorrow
  roteiro route --save=visit-id-1:1,visit-id-2:2`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rep, err := a.repID()
			if err != nil {
				return err
			}

			day, err := dateutil.ParseRelativeDate(date, dateutil.TruncateToDay(nowFunc()))
			if err != nil {
				return err
			}

			ctx := context.Background()

			if save != "" {
				ranks, err := parseRanks(save)
				if err != nil {
					return err
				}
				if err := a.store.SaveRouteRanks(ctx, ranks); err != nil {
					return fmt.Errorf("saving route ranks: %w", err)
				}
				a.agg.Invalidate(rep, day)
				fmt.Printf("Saved route ranks for %d visits.\n", len(ranks))
			}

			visits, err := a.store.ListVisits(ctx, rep, day)
			if err != nil {
				return fmt.Errorf("listing visits: %w", err)
			}
			if len(visits) == 0 {
				fmt.Printf("No visits on %s.\n", dateutil.DayKey(day))
				return nil
			}

			renderRoute(cmd.OutOrStdout(), day, route.Order(visits), route.Sum(visits))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Route date (YYYY-MM-DD, today, tomorrow; default: today)")
	cmd.Flags().StringVar(&save, "save", "", "Persist ranks before printing, as id:rank[,id:rank...]")

	return cmd
}

// parseRanks parses "id:rank,id:rank" into a rank map.
func parseRanks(s string) (map[string]int, error) {
	ranks := make(map[string]int)
	for _, pair := range strings.Split(s, ",") {
		id, rankStr, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok || id == "" {
			return nil, fmt.Errorf("invalid rank pair %q, want id:rank", pair)
		}
		rank, err := strconv.Atoi(rankStr)
		if err != nil {
			return nil, fmt.Errorf("invalid rank in %q: %w", pair, err)
		}
		ranks[id] = rank
	}
	return ranks, nil
}
