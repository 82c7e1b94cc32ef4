// Package report builds the daily timeline for a rep: visits, open tasks
// and calendar entries merged into one ordered list, with stored prospect
// insights joined onto visits.
package report

import (
	"time"

	"roteiro/internal/crm"
)

// Kind tags the origin of a timeline event.
type Kind string

const (
	KindVisit    Kind = "visit"
	KindTask     Kind = "task"
	KindCalendar Kind = "calendar"
)

// TaskDetail carries the task-specific fields of an event.
type TaskDetail struct {
	Description string
	Priority    crm.Priority
	Type        string
	ClientName  string
}

// Event is one item on the unified daily timeline. StartTime and EndTime
// use "HH:MM"; an empty StartTime means the item is unscheduled.
// Prospect and Insight are set only for KindVisit, TaskDetail only for
// KindTask. Events are snapshots: changing the underlying record requires
// a fresh report.
type Event struct {
	ID         string
	Kind       Kind
	Title      string
	StartTime  string
	EndTime    string
	Date       time.Time
	Status     string
	Prospect   *crm.Prospect
	TaskDetail *TaskDetail
	Insight    *crm.Insight
}

// Unscheduled returns true if the event has no start time.
func (e Event) Unscheduled() bool {
	return e.StartTime == ""
}

// unscheduledSentinel sorts events without a start time after every
// scheduled event.
const unscheduledSentinel = "23:59"

// sortKey is the effective time used for ordering the timeline.
func (e Event) sortKey() string {
	if e.StartTime == "" {
		return unscheduledSentinel
	}
	return e.StartTime
}

func visitEvent(v *crm.Visit, in *crm.Insight) Event {
	return Event{
		ID:        v.ID,
		Kind:      KindVisit,
		Title:     "Visit: " + v.ProspectName(),
		StartTime: v.StartTime,
		EndTime:   v.EndTime,
		Date:      v.Date,
		Status:    string(v.Status),
		Prospect:  v.Prospect,
		Insight:   in,
	}
}

func calendarEvent(e *crm.CalendarEntry) Event {
	return Event{
		ID:        e.ID,
		Kind:      KindCalendar,
		Title:     e.Title,
		StartTime: e.Time,
		Date:      e.Date,
	}
}

func taskEvent(t *crm.Task) Event {
	title := t.Title
	if title == "" {
		title = "Task"
	}
	return Event{
		ID:        t.ID,
		Kind:      KindTask,
		Title:     title,
		StartTime: t.Time,
		Date:      t.DueDate,
		Status:    string(t.Status),
		TaskDetail: &TaskDetail{
			Description: t.Description,
			Priority:    t.Priority,
			Type:        t.Type,
			ClientName:  t.ClientName,
		},
	}
}
