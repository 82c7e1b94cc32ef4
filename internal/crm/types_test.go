package crm

import (
	"errors"
	"testing"
)

func TestNewVisit(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		v, err := NewVisit("rep-1", "p1", "2025-09-01", "09:00", "10:00")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v.Status != VisitScheduled {
			t.Errorf("expected scheduled status, got %s", v.Status)
		}
		if v.Date.Format("2006-01-02") != "2025-09-01" {
			t.Errorf("unexpected date %v", v.Date)
		}
	})

	t.Run("no times is allowed", func(t *testing.T) {
		if _, err := NewVisit("rep-1", "p1", "", "", ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("missing owner", func(t *testing.T) {
		if _, err := NewVisit("", "p1", "", "", ""); !errors.Is(err, ErrEmptyOwner) {
			t.Errorf("expected ErrEmptyOwner, got %v", err)
		}
	})

	t.Run("missing prospect", func(t *testing.T) {
		if _, err := NewVisit("rep-1", "", "", "", ""); !errors.Is(err, ErrEmptyProspect) {
			t.Errorf("expected ErrEmptyProspect, got %v", err)
		}
	})

	t.Run("bad time format", func(t *testing.T) {
		if _, err := NewVisit("rep-1", "p1", "", "9am", ""); !errors.Is(err, ErrInvalidTimeFormat) {
			t.Errorf("expected ErrInvalidTimeFormat, got %v", err)
		}
	})

	t.Run("end before start", func(t *testing.T) {
		if _, err := NewVisit("rep-1", "p1", "", "10:00", "09:00"); !errors.Is(err, ErrEndBeforeStart) {
			t.Errorf("expected ErrEndBeforeStart, got %v", err)
		}
	})
}

func TestNewTask(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		task, err := NewTask("rep-1", "Call supplier", "", "", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if task.Priority != PriorityMedium {
			t.Errorf("expected medium priority, got %s", task.Priority)
		}
		if task.Status != TaskPending {
			t.Errorf("expected pending status, got %s", task.Status)
		}
	})

	t.Run("blank title is allowed", func(t *testing.T) {
		// The report layer substitutes a fallback label.
		if _, err := NewTask("rep-1", "", "", "", ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("invalid priority", func(t *testing.T) {
		if _, err := NewTask("rep-1", "x", "", "", "urgent"); !errors.Is(err, ErrInvalidPriority) {
			t.Errorf("expected ErrInvalidPriority, got %v", err)
		}
	})

	t.Run("invalid time", func(t *testing.T) {
		if _, err := NewTask("rep-1", "x", "", "25:00", ""); !errors.Is(err, ErrInvalidTimeFormat) {
			t.Errorf("expected ErrInvalidTimeFormat, got %v", err)
		}
	})
}

func TestNewCalendarEntry(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		e, err := NewCalendarEntry("rep-1", "Team meeting", "2025-09-01", "08:30", "meeting")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e.Title != "Team meeting" {
			t.Errorf("unexpected title %q", e.Title)
		}
	})

	t.Run("requires title", func(t *testing.T) {
		if _, err := NewCalendarEntry("rep-1", "", "", "", ""); !errors.Is(err, ErrEmptyName) {
			t.Errorf("expected ErrEmptyName, got %v", err)
		}
	})
}

func TestStatusValid(t *testing.T) {
	for _, s := range []VisitStatus{VisitScheduled, VisitDone, VisitCanceled, VisitRescheduled, VisitNoAnswer, VisitAbsent} {
		if !s.Valid() {
			t.Errorf("expected %s to be valid", s)
		}
	}
	if VisitStatus("postponed").Valid() {
		t.Error("expected unknown visit status to be invalid")
	}

	for _, s := range []TaskStatus{TaskPending, TaskInProgress, TaskDone, TaskCanceled} {
		if !s.Valid() {
			t.Errorf("expected %s to be valid", s)
		}
	}
	if TaskStatus("waiting").Valid() {
		t.Error("expected unknown task status to be invalid")
	}
}

func TestStoreError(t *testing.T) {
	inner := errors.New("connection refused")
	err := &StoreError{Source: "tasks", Err: inner}

	if !errors.Is(err, inner) {
		t.Error("StoreError must unwrap to the inner error")
	}
	if err.Error() != "tasks store: connection refused" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
