package crm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Domain errors.
var (
	ErrNotAuthenticated = errors.New("no authenticated rep")
	ErrVisitNotFound    = errors.New("visit not found")
	ErrTaskNotFound     = errors.New("task not found")
	ErrProspectNotFound = errors.New("prospect not found")
)

// StoreError reports a failed fetch or write against one of the backing
// stores. Source names the store ("visits", "tasks", "calendar", "insights").
type StoreError struct {
	Source string
	Err    error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s store: %v", e.Source, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// VisitStore defines persistence for visits.
type VisitStore interface {
	// CreateVisit adds a new visit.
	CreateVisit(ctx context.Context, v *Visit) error

	// GetVisit retrieves a visit by ID, with its prospect denormalized.
	// Returns ErrVisitNotFound if no such visit exists.
	GetVisit(ctx context.Context, id string) (*Visit, error)

	// ListVisits returns the owner's visits on exactly the given date,
	// with prospects denormalized.
	ListVisits(ctx context.Context, ownerID string, date time.Time) ([]*Visit, error)

	// UpdateVisitStatus transitions a visit to the given status.
	UpdateVisitStatus(ctx context.Context, id string, status VisitStatus) error

	// SaveRouteRanks persists explicit route positions for a set of visits.
	// The map is visit id -> rank.
	SaveRouteRanks(ctx context.Context, ranks map[string]int) error
}

// TaskStore defines persistence for tasks.
type TaskStore interface {
	// CreateTask adds a new task.
	CreateTask(ctx context.Context, t *Task) error

	// ListTasks returns the owner's tasks due on exactly the given date,
	// restricted to the given statuses. An empty status set means all.
	ListTasks(ctx context.Context, ownerID string, date time.Time, statuses []TaskStatus) ([]*Task, error)

	// UpdateTaskStatus transitions a task to the given status.
	UpdateTaskStatus(ctx context.Context, id string, status TaskStatus) error
}

// CalendarStore defines persistence for calendar entries.
type CalendarStore interface {
	// CreateEntry adds a new calendar entry.
	CreateEntry(ctx context.Context, e *CalendarEntry) error

	// ListEntries returns the owner's entries on exactly the given date.
	ListEntries(ctx context.Context, ownerID string, date time.Time) ([]*CalendarEntry, error)
}

// InsightStore defines persistence for prospect insights.
type InsightStore interface {
	// UpsertInsight stores or replaces the insight for a prospect.
	UpsertInsight(ctx context.Context, in *Insight) error

	// ListInsights returns the stored insights for the given prospect ids
	// in one batch. Prospects without an insight are simply absent from
	// the result.
	ListInsights(ctx context.Context, prospectIDs []string) ([]*Insight, error)
}

// ProspectStore defines persistence for prospects.
type ProspectStore interface {
	// CreateProspect adds a new prospect.
	CreateProspect(ctx context.Context, p *Prospect) error

	// GetProspect retrieves a prospect by ID.
	// Returns ErrProspectNotFound if no such prospect exists.
	GetProspect(ctx context.Context, id string) (*Prospect, error)

	// ListOwners returns the distinct rep ids that own any visit or task.
	ListOwners(ctx context.Context) ([]string, error)
}
