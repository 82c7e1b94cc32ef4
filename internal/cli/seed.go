package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"roteiro/internal/crm"
	"roteiro/internal/dateutil"
)

func (a *App) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "seed",
		Short:  "Load demo data for today",
		Hidden: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			rep, err := a.repID()
			if err != nil {
				return err
			}
			return a.seed(context.Background(), rep)
		},
	}
}

func (a *App) seed(ctx context.Context, rep string) error {
	today := dateutil.DayKey(dateutil.TruncateToDay(nowFunc()))

	prospects := []*crm.Prospect{
		{Name: "Mercado Bom Preço", Address: "Rua das Flores 120", Segment: "grocery", City: "Campinas"},
		{Name: "Farmácia Central", Address: "Av. Brasil 45", Segment: "pharmacy", City: "Campinas"},
		{Name: "Padaria Estrela", Address: "Rua XV de Novembro 8", Segment: "bakery", City: "Valinhos"},
	}
	for _, p := range prospects {
		if err := a.store.CreateProspect(ctx, p); err != nil {
			return fmt.Errorf("seeding prospect: %w", err)
		}
	}

	km := func(v float64) *float64 { return &v }
	min := func(v int) *int { return &v }

	visits := []*crm.Visit{
		{ProspectID: prospects[0].ID, OwnerID: rep, StartTime: "09:00", EndTime: "10:00", DistanceKM: km(12.5), TravelMinutes: min(25)},
		{ProspectID: prospects[1].ID, OwnerID: rep, StartTime: "11:30", DistanceKM: km(3.2), TravelMinutes: min(10)},
		{ProspectID: prospects[2].ID, OwnerID: rep, StartTime: "15:00", DistanceKM: km(18.0), TravelMinutes: min(35)},
	}
	for _, v := range visits {
		v.Status = crm.VisitScheduled
		v.Date, _ = dateutil.ParseDate(today)
		v.CreatedAt = time.Now()
		if err := a.store.CreateVisit(ctx, v); err != nil {
			return fmt.Errorf("seeding visit: %w", err)
		}
	}

	tasks := []struct{ title, hhmm, priority string }{
		{"Send updated price table", "08:30", "high"},
		{"Confirm Friday delivery", "14:00", "medium"},
		{"Prepare weekly numbers", "", "low"},
	}
	for _, spec := range tasks {
		t, err := crm.NewTask(rep, spec.title, today, spec.hhmm, spec.priority)
		if err != nil {
			return err
		}
		if err := a.store.CreateTask(ctx, t); err != nil {
			return fmt.Errorf("seeding task: %w", err)
		}
	}

	entry, err := crm.NewCalendarEntry(rep, "Team alignment call", today, "08:00", "meeting")
	if err != nil {
		return err
	}
	if err := a.store.CreateEntry(ctx, entry); err != nil {
		return fmt.Errorf("seeding calendar entry: %w", err)
	}

	in := &crm.Insight{
		ProspectID:          prospects[0].ID,
		Summary:             "Neighborhood grocery expanding its dry-goods aisle; owner buys weekly and is price sensitive.",
		RecommendedProducts: []string{"bulk rice and beans line", "house-brand cleaning kit"},
		ApproachTips:        []string{"Lead with the volume discount table", "Ask about the new second store"},
		GeneratedAt:         time.Now(),
	}
	if err := a.store.UpsertInsight(ctx, in); err != nil {
		return fmt.Errorf("seeding insight: %w", err)
	}

	fmt.Printf("Seeded %d prospects, %d visits, %d tasks and 1 calendar entry for %s.\n",
		len(prospects), len(visits), len(tasks), today)
	return nil
}
