// Package route orders a day's visits into a travel plan and sums the
// plan's distance and time.
package route

import (
	"slices"
	"strings"

	"roteiro/internal/crm"
)

// Stop is one visit on the day's route.
type Stop struct {
	Visit    *crm.Visit
	Position int // 1-based position after ordering
}

// Totals accumulates the route's distance and travel time.
type Totals struct {
	DistanceKM    float64
	TravelMinutes int
}

// Order returns the visits as route stops in display order. If every
// visit carries an explicit route rank, rank wins; otherwise visits are
// ordered by start time (lexical compare is valid for fixed-width
// HH:MM). Visits with neither keep their given relative order. Never
// fails.
func Order(visits []*crm.Visit) []Stop {
	ordered := make([]*crm.Visit, len(visits))
	copy(ordered, visits)

	if allRanked(ordered) {
		slices.SortStableFunc(ordered, func(a, b *crm.Visit) int {
			return *a.RouteRank - *b.RouteRank
		})
	} else {
		slices.SortStableFunc(ordered, func(a, b *crm.Visit) int {
			return strings.Compare(a.StartTime, b.StartTime)
		})
	}

	stops := make([]Stop, len(ordered))
	for i, v := range ordered {
		stops[i] = Stop{Visit: v, Position: i + 1}
	}
	return stops
}

func allRanked(visits []*crm.Visit) bool {
	if len(visits) == 0 {
		return false
	}
	for _, v := range visits {
		if v.RouteRank == nil {
			return false
		}
	}
	return true
}

// Sum accumulates distance and travel time over the visits. Missing
// fields contribute zero.
func Sum(visits []*crm.Visit) Totals {
	var t Totals
	for _, v := range visits {
		if v.DistanceKM != nil {
			t.DistanceKM += *v.DistanceKM
		}
		if v.TravelMinutes != nil {
			t.TravelMinutes += *v.TravelMinutes
		}
	}
	return t
}
