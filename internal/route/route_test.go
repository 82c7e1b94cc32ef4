package route

import (
	"testing"

	"roteiro/internal/crm"
)

func ptr[T any](v T) *T { return &v }

func TestOrder_ByExplicitRank(t *testing.T) {
	visits := []*crm.Visit{
		{ID: "v2", RouteRank: ptr(2)},
		{ID: "v1", RouteRank: ptr(1)},
		{ID: "v3", RouteRank: ptr(3)},
	}

	stops := Order(visits)
	for i, want := range []string{"v1", "v2", "v3"} {
		if stops[i].Visit.ID != want {
			t.Errorf("position %d: expected %s, got %s", i+1, want, stops[i].Visit.ID)
		}
		if stops[i].Position != i+1 {
			t.Errorf("expected position %d, got %d", i+1, stops[i].Position)
		}
	}
}

func TestOrder_RankWinsOverTime(t *testing.T) {
	// Ranked out of time order: rank must win.
	visits := []*crm.Visit{
		{ID: "morning", StartTime: "08:00", RouteRank: ptr(2)},
		{ID: "afternoon", StartTime: "15:00", RouteRank: ptr(1)},
	}

	stops := Order(visits)
	if stops[0].Visit.ID != "afternoon" || stops[1].Visit.ID != "morning" {
		t.Errorf("expected rank order [afternoon morning], got [%s %s]",
			stops[0].Visit.ID, stops[1].Visit.ID)
	}
}

func TestOrder_FallsBackToStartTime(t *testing.T) {
	// One missing rank disables rank ordering entirely.
	visits := []*crm.Visit{
		{ID: "late", StartTime: "16:00", RouteRank: ptr(1)},
		{ID: "early", StartTime: "07:30"},
	}

	stops := Order(visits)
	if stops[0].Visit.ID != "early" || stops[1].Visit.ID != "late" {
		t.Errorf("expected time order [early late], got [%s %s]",
			stops[0].Visit.ID, stops[1].Visit.ID)
	}
}

func TestOrder_NoKeysKeepsGivenOrder(t *testing.T) {
	visits := []*crm.Visit{
		{ID: "a"},
		{ID: "b"},
		{ID: "c"},
	}

	stops := Order(visits)
	for i, want := range []string{"a", "b", "c"} {
		if stops[i].Visit.ID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, stops[i].Visit.ID)
		}
	}
}

func TestOrder_DoesNotMutateInput(t *testing.T) {
	visits := []*crm.Visit{
		{ID: "v2", RouteRank: ptr(2)},
		{ID: "v1", RouteRank: ptr(1)},
	}

	Order(visits)
	if visits[0].ID != "v2" {
		t.Error("Order mutated its input slice")
	}
}

func TestSum(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		totals := Sum(nil)
		if totals.DistanceKM != 0 || totals.TravelMinutes != 0 {
			t.Errorf("expected zero totals, got %+v", totals)
		}
	})

	t.Run("missing fields count as zero", func(t *testing.T) {
		visits := []*crm.Visit{
			{ID: "a", DistanceKM: ptr(5.0)},
			{ID: "b", TravelMinutes: ptr(10)},
			{ID: "c"},
		}
		totals := Sum(visits)
		if totals.DistanceKM != 5.0 {
			t.Errorf("expected 5.0 km, got %v", totals.DistanceKM)
		}
		if totals.TravelMinutes != 10 {
			t.Errorf("expected 10 min, got %v", totals.TravelMinutes)
		}
	})

	t.Run("accumulates", func(t *testing.T) {
		visits := []*crm.Visit{
			{ID: "a", DistanceKM: ptr(12.5), TravelMinutes: ptr(25)},
			{ID: "b", DistanceKM: ptr(3.5), TravelMinutes: ptr(10)},
		}
		totals := Sum(visits)
		if totals.DistanceKM != 16.0 {
			t.Errorf("expected 16.0 km, got %v", totals.DistanceKM)
		}
		if totals.TravelMinutes != 35 {
			t.Errorf("expected 35 min, got %v", totals.TravelMinutes)
		}
	})
}
