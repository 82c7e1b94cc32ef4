package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"roteiro/internal/crm"
)

func newTestStore(t *testing.T) *SQLite {
	t.Helper()
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seedProspect(t *testing.T, s *SQLite, name string) *crm.Prospect {
	t.Helper()
	p := &crm.Prospect{Name: name, Address: "Rua A 1", Segment: "grocery", City: "Campinas"}
	if err := s.CreateProspect(context.Background(), p); err != nil {
		t.Fatalf("creating prospect: %v", err)
	}
	return p
}

func mustVisit(t *testing.T, s *SQLite, owner, prospectID, date, start string) *crm.Visit {
	t.Helper()
	v, err := crm.NewVisit(owner, prospectID, date, start, "")
	if err != nil {
		t.Fatalf("building visit: %v", err)
	}
	if err := s.CreateVisit(context.Background(), v); err != nil {
		t.Fatalf("creating visit: %v", err)
	}
	return v
}

func TestVisits(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := seedProspect(t, s, "Mercado Bom Preço")

	t.Run("create assigns id", func(t *testing.T) {
		v := mustVisit(t, s, "rep-1", p.ID, "2025-09-01", "09:00")
		if v.ID == "" {
			t.Error("expected an assigned id")
		}
	})

	t.Run("get denormalizes prospect", func(t *testing.T) {
		created := mustVisit(t, s, "rep-1", p.ID, "2025-09-02", "10:00")
		got, err := s.GetVisit(ctx, created.ID)
		if err != nil {
			t.Fatalf("getting visit: %v", err)
		}
		if got.Prospect == nil || got.Prospect.Name != "Mercado Bom Preço" {
			t.Errorf("prospect not denormalized: %+v", got.Prospect)
		}
		if got.StartTime != "10:00" {
			t.Errorf("unexpected start time %q", got.StartTime)
		}
	})

	t.Run("get missing", func(t *testing.T) {
		if _, err := s.GetVisit(ctx, "nope"); !errors.Is(err, crm.ErrVisitNotFound) {
			t.Errorf("expected ErrVisitNotFound, got %v", err)
		}
	})

	t.Run("list scopes by owner and date", func(t *testing.T) {
		day := "2025-09-10"
		mine := mustVisit(t, s, "rep-1", p.ID, day, "14:00")
		mustVisit(t, s, "rep-2", p.ID, day, "09:00")       // other owner
		mustVisit(t, s, "rep-1", p.ID, "2025-09-11", "09:00") // other day

		date, _ := time.Parse("2006-01-02", day)
		visits, err := s.ListVisits(ctx, "rep-1", date)
		if err != nil {
			t.Fatalf("listing visits: %v", err)
		}
		if len(visits) != 1 || visits[0].ID != mine.ID {
			t.Errorf("expected only rep-1's visit on %s, got %d", day, len(visits))
		}
	})

	t.Run("update status", func(t *testing.T) {
		v := mustVisit(t, s, "rep-1", p.ID, "2025-09-03", "09:00")
		if err := s.UpdateVisitStatus(ctx, v.ID, crm.VisitDone); err != nil {
			t.Fatalf("updating status: %v", err)
		}
		got, err := s.GetVisit(ctx, v.ID)
		if err != nil {
			t.Fatalf("getting visit: %v", err)
		}
		if got.Status != crm.VisitDone {
			t.Errorf("expected done, got %s", got.Status)
		}
	})

	t.Run("update status rejects unknown value", func(t *testing.T) {
		v := mustVisit(t, s, "rep-1", p.ID, "2025-09-04", "09:00")
		if err := s.UpdateVisitStatus(ctx, v.ID, crm.VisitStatus("lost")); !errors.Is(err, crm.ErrInvalidStatus) {
			t.Errorf("expected ErrInvalidStatus, got %v", err)
		}
	})

	t.Run("update missing visit", func(t *testing.T) {
		if err := s.UpdateVisitStatus(ctx, "nope", crm.VisitDone); !errors.Is(err, crm.ErrVisitNotFound) {
			t.Errorf("expected ErrVisitNotFound, got %v", err)
		}
	})

	t.Run("save route ranks", func(t *testing.T) {
		a := mustVisit(t, s, "rep-3", p.ID, "2025-09-05", "09:00")
		b := mustVisit(t, s, "rep-3", p.ID, "2025-09-05", "11:00")

		err := s.SaveRouteRanks(ctx, map[string]int{a.ID: 2, b.ID: 1})
		if err != nil {
			t.Fatalf("saving ranks: %v", err)
		}

		got, err := s.GetVisit(ctx, a.ID)
		if err != nil {
			t.Fatalf("getting visit: %v", err)
		}
		if got.RouteRank == nil || *got.RouteRank != 2 {
			t.Errorf("expected rank 2, got %v", got.RouteRank)
		}
	})

	t.Run("save ranks for missing visit rolls back", func(t *testing.T) {
		v := mustVisit(t, s, "rep-4", p.ID, "2025-09-06", "09:00")

		err := s.SaveRouteRanks(ctx, map[string]int{v.ID: 1, "nope": 2})
		if !errors.Is(err, crm.ErrVisitNotFound) {
			t.Fatalf("expected ErrVisitNotFound, got %v", err)
		}

		got, err := s.GetVisit(ctx, v.ID)
		if err != nil {
			t.Fatalf("getting visit: %v", err)
		}
		if got.RouteRank != nil {
			t.Errorf("expected rollback, got rank %v", *got.RouteRank)
		}
	})
}

func TestTasks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	day := "2025-09-01"
	date, _ := time.Parse("2006-01-02", day)

	add := func(title, hhmm string, status crm.TaskStatus) *crm.Task {
		t.Helper()
		task, err := crm.NewTask("rep-1", title, day, hhmm, "")
		if err != nil {
			t.Fatalf("building task: %v", err)
		}
		task.Status = status
		if err := s.CreateTask(ctx, task); err != nil {
			t.Fatalf("creating task: %v", err)
		}
		return task
	}

	add("pending one", "09:00", crm.TaskPending)
	add("in progress", "10:00", crm.TaskInProgress)
	add("already done", "11:00", crm.TaskDone)
	add("canceled", "12:00", crm.TaskCanceled)

	t.Run("status filter", func(t *testing.T) {
		tasks, err := s.ListTasks(ctx, "rep-1", date, crm.OpenTaskStatuses)
		if err != nil {
			t.Fatalf("listing tasks: %v", err)
		}
		if len(tasks) != 2 {
			t.Fatalf("expected 2 open tasks, got %d", len(tasks))
		}
		for _, task := range tasks {
			if task.Status != crm.TaskPending && task.Status != crm.TaskInProgress {
				t.Errorf("unexpected status %s", task.Status)
			}
		}
	})

	t.Run("empty filter returns all", func(t *testing.T) {
		tasks, err := s.ListTasks(ctx, "rep-1", date, nil)
		if err != nil {
			t.Fatalf("listing tasks: %v", err)
		}
		if len(tasks) != 4 {
			t.Errorf("expected 4 tasks, got %d", len(tasks))
		}
	})

	t.Run("ordered by time", func(t *testing.T) {
		tasks, err := s.ListTasks(ctx, "rep-1", date, nil)
		if err != nil {
			t.Fatalf("listing tasks: %v", err)
		}
		last := ""
		for _, task := range tasks {
			if task.Time < last {
				t.Errorf("tasks out of order: %s after %s", task.Time, last)
			}
			last = task.Time
		}
	})

	t.Run("update status", func(t *testing.T) {
		task := add("to finish", "15:00", crm.TaskPending)
		if err := s.UpdateTaskStatus(ctx, task.ID, crm.TaskDone); err != nil {
			t.Fatalf("updating status: %v", err)
		}

		open, err := s.ListTasks(ctx, "rep-1", date, crm.OpenTaskStatuses)
		if err != nil {
			t.Fatalf("listing tasks: %v", err)
		}
		for _, got := range open {
			if got.ID == task.ID {
				t.Error("finished task still listed as open")
			}
		}
	})

	t.Run("update missing task", func(t *testing.T) {
		if err := s.UpdateTaskStatus(ctx, "nope", crm.TaskDone); !errors.Is(err, crm.ErrTaskNotFound) {
			t.Errorf("expected ErrTaskNotFound, got %v", err)
		}
	})
}

func TestCalendarEntries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	date, _ := time.Parse("2006-01-02", "2025-09-01")

	e, err := crm.NewCalendarEntry("rep-1", "Team meeting", "2025-09-01", "08:30", "meeting")
	if err != nil {
		t.Fatalf("building entry: %v", err)
	}
	if err := s.CreateEntry(ctx, e); err != nil {
		t.Fatalf("creating entry: %v", err)
	}

	entries, err := s.ListEntries(ctx, "rep-1", date)
	if err != nil {
		t.Fatalf("listing entries: %v", err)
	}
	if len(entries) != 1 || entries[0].Title != "Team meeting" {
		t.Fatalf("unexpected entries %+v", entries)
	}
	if entries[0].Time != "08:30" {
		t.Errorf("unexpected time %q", entries[0].Time)
	}

	other, err := s.ListEntries(ctx, "rep-2", date)
	if err != nil {
		t.Fatalf("listing entries: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("expected no entries for rep-2, got %d", len(other))
	}
}

func TestInsights(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p1 := seedProspect(t, s, "Prospect One")
	p2 := seedProspect(t, s, "Prospect Two")

	in := &crm.Insight{
		ProspectID:          p1.ID,
		Summary:             "Price-sensitive weekly buyer.",
		RecommendedProducts: []string{"bulk line"},
		ApproachTips:        []string{"lead with discounts", "ask about the new store"},
		GeneratedAt:         time.Now(),
	}
	if err := s.UpsertInsight(ctx, in); err != nil {
		t.Fatalf("upserting insight: %v", err)
	}

	t.Run("batched list", func(t *testing.T) {
		got, err := s.ListInsights(ctx, []string{p1.ID, p2.ID})
		if err != nil {
			t.Fatalf("listing insights: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("expected 1 insight, got %d", len(got))
		}
		if got[0].ProspectID != p1.ID {
			t.Errorf("unexpected prospect %s", got[0].ProspectID)
		}
		if len(got[0].ApproachTips) != 2 {
			t.Errorf("tips not round-tripped: %v", got[0].ApproachTips)
		}
	})

	t.Run("empty id set", func(t *testing.T) {
		got, err := s.ListInsights(ctx, nil)
		if err != nil {
			t.Fatalf("listing insights: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})

	t.Run("upsert replaces", func(t *testing.T) {
		updated := *in
		updated.Summary = "Now a converted client."
		if err := s.UpsertInsight(ctx, &updated); err != nil {
			t.Fatalf("upserting insight: %v", err)
		}

		got, err := s.ListInsights(ctx, []string{p1.ID})
		if err != nil {
			t.Fatalf("listing insights: %v", err)
		}
		if len(got) != 1 || got[0].Summary != "Now a converted client." {
			t.Errorf("expected replaced summary, got %+v", got)
		}
	})
}

func TestProspectsAndOwners(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	t.Run("create requires name", func(t *testing.T) {
		err := s.CreateProspect(ctx, &crm.Prospect{})
		if !errors.Is(err, crm.ErrEmptyName) {
			t.Errorf("expected ErrEmptyName, got %v", err)
		}
	})

	t.Run("get", func(t *testing.T) {
		p := seedProspect(t, s, "Padaria Estrela")
		got, err := s.GetProspect(ctx, p.ID)
		if err != nil {
			t.Fatalf("getting prospect: %v", err)
		}
		if got.Name != "Padaria Estrela" || got.City != "Campinas" {
			t.Errorf("unexpected prospect %+v", got)
		}
	})

	t.Run("get missing", func(t *testing.T) {
		if _, err := s.GetProspect(ctx, "nope"); !errors.Is(err, crm.ErrProspectNotFound) {
			t.Errorf("expected ErrProspectNotFound, got %v", err)
		}
	})

	t.Run("list owners", func(t *testing.T) {
		p := seedProspect(t, s, "Mercearia Nova")
		mustVisit(t, s, "rep-a", p.ID, "2025-09-01", "09:00")

		task, err := crm.NewTask("rep-b", "call", "2025-09-01", "", "")
		if err != nil {
			t.Fatalf("building task: %v", err)
		}
		if err := s.CreateTask(ctx, task); err != nil {
			t.Fatalf("creating task: %v", err)
		}

		owners, err := s.ListOwners(ctx)
		if err != nil {
			t.Fatalf("listing owners: %v", err)
		}
		seen := make(map[string]bool)
		for _, o := range owners {
			seen[o] = true
		}
		if !seen["rep-a"] || !seen["rep-b"] {
			t.Errorf("expected rep-a and rep-b, got %v", owners)
		}
	})
}
