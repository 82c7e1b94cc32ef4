package report

import "strconv"

// Buckets partitions a day's events by time of day. Every event lands in
// exactly one bucket; order within a bucket is inherited from the input.
type Buckets struct {
	Morning     []Event // 06:00–11:59
	Afternoon   []Event // 12:00–17:59
	Evening     []Event // 18:00–05:59, wrapping past midnight
	Unscheduled []Event // no start time
}

// Len returns the total number of bucketed events.
func (b Buckets) Len() int {
	return len(b.Morning) + len(b.Afternoon) + len(b.Evening) + len(b.Unscheduled)
}

// Bucket partitions events by the hour of their start time. Events
// without a start time (or with one that does not parse) are
// unscheduled, regardless of kind.
func Bucket(events []Event) Buckets {
	var b Buckets
	for _, e := range events {
		hour, ok := startHour(e)
		switch {
		case !ok:
			b.Unscheduled = append(b.Unscheduled, e)
		case hour >= 6 && hour < 12:
			b.Morning = append(b.Morning, e)
		case hour >= 12 && hour < 18:
			b.Afternoon = append(b.Afternoon, e)
		default:
			b.Evening = append(b.Evening, e)
		}
	}
	return b
}

func startHour(e Event) (int, bool) {
	if len(e.StartTime) != 5 || e.StartTime[2] != ':' {
		return 0, false
	}
	hour, err := strconv.Atoi(e.StartTime[:2])
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	return hour, true
}
