package report

import (
	"sync"
	"time"

	"roteiro/internal/dateutil"
)

// resultCache memoizes report results per (rep, date) for a short
// freshness window, to absorb rapid repeated calls for the same day.
type resultCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry
}

type cacheEntry struct {
	events   []Event
	storedAt time.Time
}

func newResultCache(ttl time.Duration) *resultCache {
	return &resultCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

func cacheKey(repID string, date time.Time) string {
	return repID + "|" + dateutil.DayKey(date)
}

func (c *resultCache) get(repID string, date time.Time) ([]Event, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[cacheKey(repID, date)]
	if !ok || c.now().Sub(e.storedAt) > c.ttl {
		return nil, false
	}
	return e.events, true
}

func (c *resultCache) put(repID string, date time.Time, events []Event) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(repID, date)] = cacheEntry{events: events, storedAt: c.now()}
}

func (c *resultCache) invalidate(repID string, date time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, cacheKey(repID, date))
}
