// Package crm defines the core domain types for roteiro.
package crm

import (
	"errors"
	"fmt"
	"time"

	"roteiro/internal/dateutil"
)

// Validation errors.
var (
	ErrEmptyName         = errors.New("name cannot be empty")
	ErrEmptyOwner        = errors.New("owner id cannot be empty")
	ErrEmptyProspect     = errors.New("prospect id cannot be empty")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidPriority   = errors.New("priority must be 'low', 'medium' or 'high'")
	ErrEndBeforeStart    = errors.New("end time must be after start time")
	ErrInvalidTimeFormat = dateutil.ErrInvalidTimeFormat
)

// VisitStatus represents the state of a scheduled visit.
type VisitStatus string

const (
	VisitScheduled   VisitStatus = "scheduled"
	VisitDone        VisitStatus = "done"
	VisitCanceled    VisitStatus = "canceled"
	VisitRescheduled VisitStatus = "rescheduled"
	VisitNoAnswer    VisitStatus = "no_answer"
	VisitAbsent      VisitStatus = "absent"
)

// Valid returns true if the visit status is a known value.
func (s VisitStatus) Valid() bool {
	switch s {
	case VisitScheduled, VisitDone, VisitCanceled, VisitRescheduled, VisitNoAnswer, VisitAbsent:
		return true
	default:
		return false
	}
}

// TaskStatus represents the state of a task.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
	TaskCanceled   TaskStatus = "canceled"
)

// Valid returns true if the task status is a known value.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskDone, TaskCanceled:
		return true
	default:
		return false
	}
}

// OpenTaskStatuses are the statuses that count as today's work.
// Done and canceled tasks never show up in the daily report.
var OpenTaskStatuses = []TaskStatus{TaskPending, TaskInProgress}

// Priority represents task urgency.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Prospect is a sales lead not yet converted to a client.
type Prospect struct {
	ID      string
	Name    string
	Address string
	Segment string
	City    string
}

// Visit represents a scheduled in-person meeting with a prospect.
// StartTime and EndTime use "HH:MM"; EndTime may be empty.
// DistanceKM, TravelMinutes and RouteRank are optional route-planning
// fields; nil means not set.
type Visit struct {
	ID            string
	ProspectID    string
	Prospect      *Prospect // denormalized on reads
	OwnerID       string
	Date          time.Time
	StartTime     string
	EndTime       string
	Status        VisitStatus
	Notes         string
	DistanceKM    *float64
	TravelMinutes *int
	RouteRank     *int
	CreatedAt     time.Time
}

// NewVisit creates a Visit with validation. date can be empty (defaults
// to today) or YYYY-MM-DD. end may be empty for open-ended visits.
func NewVisit(ownerID, prospectID, date, start, end string) (*Visit, error) {
	if ownerID == "" {
		return nil, ErrEmptyOwner
	}
	if prospectID == "" {
		return nil, ErrEmptyProspect
	}

	d, err := dateutil.ParseDate(date)
	if err != nil {
		return nil, err
	}

	if start != "" {
		if err := dateutil.ValidateTime(start); err != nil {
			return nil, fmt.Errorf("start time: %w", err)
		}
	}
	if end != "" {
		if err := dateutil.ValidateTime(end); err != nil {
			return nil, fmt.Errorf("end time: %w", err)
		}
		if start != "" && end <= start {
			return nil, ErrEndBeforeStart
		}
	}

	return &Visit{
		ProspectID: prospectID,
		OwnerID:    ownerID,
		Date:       d,
		StartTime:  start,
		EndTime:    end,
		Status:     VisitScheduled,
		CreatedAt:  time.Now(),
	}, nil
}

// IsScheduled returns true if the visit has not been resolved yet.
func (v *Visit) IsScheduled() bool {
	return v.Status == VisitScheduled
}

// ProspectName returns the denormalized prospect name, if loaded.
func (v *Visit) ProspectName() string {
	if v.Prospect == nil {
		return ""
	}
	return v.Prospect.Name
}

// Task represents an action item assigned to a rep.
// Time uses "HH:MM" and may be empty for unscheduled tasks.
type Task struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	DueDate     time.Time
	Time        string
	Priority    Priority
	Type        string
	Status      TaskStatus
	ClientName  string
	CreatedAt   time.Time
}

// NewTask creates a Task with validation. date can be empty (defaults to
// today) or YYYY-MM-DD. hhmm may be empty.
func NewTask(ownerID, title, date, hhmm, priority string) (*Task, error) {
	if ownerID == "" {
		return nil, ErrEmptyOwner
	}

	d, err := dateutil.ParseDate(date)
	if err != nil {
		return nil, err
	}

	if hhmm != "" {
		if err := dateutil.ValidateTime(hhmm); err != nil {
			return nil, err
		}
	}

	p, err := parsePriority(priority)
	if err != nil {
		return nil, err
	}

	return &Task{
		OwnerID:   ownerID,
		Title:     title,
		DueDate:   d,
		Time:      hhmm,
		Priority:  p,
		Status:    TaskPending,
		CreatedAt: time.Now(),
	}, nil
}

func parsePriority(s string) (Priority, error) {
	switch s {
	case "", "medium":
		return PriorityMedium, nil
	case "low":
		return PriorityLow, nil
	case "high":
		return PriorityHigh, nil
	default:
		return "", ErrInvalidPriority
	}
}

// CalendarEntry is a free-form agenda item owned by a rep.
// Time uses "HH:MM" and may be empty.
type CalendarEntry struct {
	ID        string
	OwnerID   string
	Date      time.Time
	Time      string
	Title     string
	Type      string
	CreatedAt time.Time
}

// NewCalendarEntry creates a CalendarEntry with validation.
func NewCalendarEntry(ownerID, title, date, hhmm, entryType string) (*CalendarEntry, error) {
	if ownerID == "" {
		return nil, ErrEmptyOwner
	}
	if title == "" {
		return nil, ErrEmptyName
	}

	d, err := dateutil.ParseDate(date)
	if err != nil {
		return nil, err
	}

	if hhmm != "" {
		if err := dateutil.ValidateTime(hhmm); err != nil {
			return nil, err
		}
	}

	return &CalendarEntry{
		OwnerID:   ownerID,
		Date:      d,
		Time:      hhmm,
		Title:     title,
		Type:      entryType,
		CreatedAt: time.Now(),
	}, nil
}

// Insight holds AI-generated advisory notes about a prospect.
type Insight struct {
	ProspectID          string
	Summary             string
	RecommendedProducts []string
	ApproachTips        []string
	GeneratedAt         time.Time
}
