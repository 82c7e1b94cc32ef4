package report

import (
	"context"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"roteiro/internal/crm"
)

// DefaultCacheTTL is the freshness window for memoized reports.
const DefaultCacheTTL = 30 * time.Second

// Aggregator assembles the daily report from the four backing stores.
// Safe for concurrent use.
type Aggregator struct {
	visits   crm.VisitStore
	tasks    crm.TaskStore
	calendar crm.CalendarStore
	insights crm.InsightStore
	cache    *resultCache
	logger   *zap.Logger
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithCacheTTL overrides the default memoization window. A zero or
// negative TTL disables caching.
func WithCacheTTL(ttl time.Duration) Option {
	return func(a *Aggregator) { a.cache = newResultCache(ttl) }
}

// WithLogger attaches a logger for fetch diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Aggregator) { a.logger = logger }
}

// NewAggregator creates an Aggregator over the given stores.
func NewAggregator(visits crm.VisitStore, tasks crm.TaskStore, calendar crm.CalendarStore, insights crm.InsightStore, opts ...Option) *Aggregator {
	a := &Aggregator{
		visits:   visits,
		tasks:    tasks,
		calendar: calendar,
		insights: insights,
		cache:    newResultCache(DefaultCacheTTL),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// DailyReport returns the rep's merged timeline for the given date,
// sorted by start time with unscheduled items last. Ties keep source
// order: visits, then calendar entries, then tasks.
//
// The three store fetches run concurrently; if any of them fails the
// whole call fails with a *crm.StoreError — a report silently missing
// one source would be worse than an explicit error. Results are
// memoized per (rep, date) for the cache TTL.
func (a *Aggregator) DailyReport(ctx context.Context, repID string, date time.Time) ([]Event, error) {
	if strings.TrimSpace(repID) == "" {
		return nil, crm.ErrNotAuthenticated
	}

	if events, ok := a.cache.get(repID, date); ok {
		a.logger.Debug("daily report served from cache",
			zap.String("rep", repID), zap.Time("date", date))
		return events, nil
	}

	var (
		visits  []*crm.Visit
		entries []*crm.CalendarEntry
		tasks   []*crm.Task
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		vs, err := a.visits.ListVisits(gctx, repID, date)
		if err != nil {
			return &crm.StoreError{Source: "visits", Err: err}
		}
		visits = vs
		return nil
	})
	g.Go(func() error {
		es, err := a.calendar.ListEntries(gctx, repID, date)
		if err != nil {
			return &crm.StoreError{Source: "calendar", Err: err}
		}
		entries = es
		return nil
	})
	g.Go(func() error {
		ts, err := a.tasks.ListTasks(gctx, repID, date, crm.OpenTaskStatuses)
		if err != nil {
			return &crm.StoreError{Source: "tasks", Err: err}
		}
		tasks = ts
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	insights, err := a.insightsByProspect(ctx, visits)
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(visits)+len(entries)+len(tasks))
	for _, v := range visits {
		events = append(events, visitEvent(v, insights[v.ProspectID]))
	}
	for _, e := range entries {
		events = append(events, calendarEvent(e))
	}
	for _, t := range tasks {
		events = append(events, taskEvent(t))
	}

	slices.SortStableFunc(events, func(a, b Event) int {
		return strings.Compare(a.sortKey(), b.sortKey())
	})

	a.cache.put(repID, date, events)
	a.logger.Debug("daily report assembled",
		zap.String("rep", repID),
		zap.Time("date", date),
		zap.Int("visits", len(visits)),
		zap.Int("entries", len(entries)),
		zap.Int("tasks", len(tasks)))

	return events, nil
}

// insightsByProspect fetches insights for every distinct prospect on the
// visit list in one batched call and indexes them by prospect id.
func (a *Aggregator) insightsByProspect(ctx context.Context, visits []*crm.Visit) (map[string]*crm.Insight, error) {
	if len(visits) == 0 {
		return nil, nil
	}

	seen := make(map[string]bool, len(visits))
	ids := make([]string, 0, len(visits))
	for _, v := range visits {
		if v.ProspectID == "" || seen[v.ProspectID] {
			continue
		}
		seen[v.ProspectID] = true
		ids = append(ids, v.ProspectID)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	stored, err := a.insights.ListInsights(ctx, ids)
	if err != nil {
		return nil, &crm.StoreError{Source: "insights", Err: err}
	}

	byProspect := make(map[string]*crm.Insight, len(stored))
	for _, in := range stored {
		byProspect[in.ProspectID] = in
	}
	return byProspect, nil
}

// Invalidate drops the memoized report for a (rep, date) pair. Write
// paths call this so the next report reflects the change.
func (a *Aggregator) Invalidate(repID string, date time.Time) {
	a.cache.invalidate(repID, date)
}
