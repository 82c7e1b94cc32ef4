package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"roteiro/internal/crm"
	"roteiro/internal/dateutil"
	"roteiro/internal/report"
	"roteiro/internal/route"
)

// nowFunc is swapped in tests.
var nowFunc = time.Now

var (
	heading   = color.New(color.Bold)
	dimmed    = color.New(color.Faint)
	doneColor = color.New(color.FgGreen)
	badColor  = color.New(color.FgRed)
	warnColor = color.New(color.FgYellow)
)

func renderTimeline(w io.Writer, day time.Time, events []report.Event) {
	heading.Fprintf(w, "Daily report — %s\n\n", dateutil.DayKey(day))
	for _, e := range events {
		renderEvent(w, e)
	}
}

func renderBuckets(w io.Writer, day time.Time, b report.Buckets) {
	heading.Fprintf(w, "Daily report — %s\n", dateutil.DayKey(day))
	for _, section := range []struct {
		name   string
		events []report.Event
	}{
		{"Morning", b.Morning},
		{"Afternoon", b.Afternoon},
		{"Evening", b.Evening},
		{"Unscheduled", b.Unscheduled},
	} {
		if len(section.events) == 0 {
			continue
		}
		heading.Fprintf(w, "\n%s\n", section.name)
		for _, e := range section.events {
			renderEvent(w, e)
		}
	}
}

func renderEvent(w io.Writer, e report.Event) {
	timeCol := "--:--"
	if e.StartTime != "" {
		timeCol = e.StartTime
	}
	if e.EndTime != "" {
		timeCol += "-" + e.EndTime
	}

	fmt.Fprintf(w, "  %-11s  %-8s  %s%s\n", timeCol, e.Kind, e.Title, statusSuffix(e.Status))

	if e.Prospect != nil && e.Prospect.City != "" {
		dimmed.Fprintf(w, "               %s, %s\n", e.Prospect.Address, e.Prospect.City)
	}
	if e.TaskDetail != nil && e.TaskDetail.Priority == crm.PriorityHigh {
		warnColor.Fprintf(w, "               high priority\n")
	}
	if e.Insight != nil {
		dimmed.Fprintf(w, "               insight: %s\n", e.Insight.Summary)
		for _, tip := range e.Insight.ApproachTips {
			dimmed.Fprintf(w, "               - %s\n", tip)
		}
	}
}

func statusSuffix(status string) string {
	switch status {
	case "":
		return ""
	case string(crm.VisitDone):
		return " " + doneColor.Sprintf("[%s]", status)
	case string(crm.VisitCanceled), string(crm.VisitNoAnswer), string(crm.VisitAbsent):
		return " " + badColor.Sprintf("[%s]", status)
	default:
		return fmt.Sprintf(" [%s]", status)
	}
}

func renderRoute(w io.Writer, day time.Time, stops []route.Stop, totals route.Totals) {
	heading.Fprintf(w, "Route — %s\n\n", dateutil.DayKey(day))
	for _, stop := range stops {
		v := stop.Visit
		timeCol := "--:--"
		if v.StartTime != "" {
			timeCol = v.StartTime
		}
		fmt.Fprintf(w, "  %2d. %-7s %s", stop.Position, timeCol, v.ProspectName())
		if v.Prospect != nil && v.Prospect.City != "" {
			dimmed.Fprintf(w, " (%s)", v.Prospect.City)
		}
		if v.DistanceKM != nil {
			dimmed.Fprintf(w, "  %.1f km", *v.DistanceKM)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)
	heading.Fprintf(w, "Total: %.1f km, %d min travel\n", totals.DistanceKM, totals.TravelMinutes)
}
