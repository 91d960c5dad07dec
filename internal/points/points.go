package points

import (
	"sort"
	"time"

	"github.com/ysato/pointbook/internal/models"
)

// Compute converts hours to points at the activity's rate. No rounding;
// the display layer formats to one decimal.
func Compute(a models.Activity, hours float64) float64 {
	return a.PointsPerHour * hours
}

// WeekStart returns the most recent Monday on or before t, at midnight
// in t's location.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -offset)
}

// TotalFor sums points over all rows for the child.
func TotalFor(events []models.PointEvent, child string) float64 {
	var sum float64
	for _, e := range events {
		if e.Child == child {
			sum += e.Points
		}
	}
	return sum
}

// TodayFor sums points for the child on the given date.
func TodayFor(events []models.PointEvent, child, today string) float64 {
	var sum float64
	for _, e := range events {
		if e.Child == child && e.Date == today {
			sum += e.Points
		}
	}
	return sum
}

// WeekFor sums points for the child from the Monday of today's week
// onward. Dates in ledger format compare correctly as strings; rows
// with unparseable dates are skipped.
func WeekFor(events []models.PointEvent, child string, today time.Time) float64 {
	start := WeekStart(today).Format(models.DateLayout)
	var sum float64
	for _, e := range events {
		if e.Child != child || e.Date < start {
			continue
		}
		if _, err := e.Day(); err != nil {
			continue
		}
		sum += e.Points
	}
	return sum
}

// SeriesPoint is one bucket of an aggregated series.
type SeriesPoint struct {
	Date   string
	Points float64
}

// DailySeries sums the child's points per calendar date, restricted to
// dates on or after since, sorted ascending. Rows with unparseable
// dates are skipped. Callers use a trailing 14-day window
// (since = today - 13 days).
func DailySeries(events []models.PointEvent, child string, since time.Time) []SeriesPoint {
	cutoff := since.Format(models.DateLayout)
	byDay := make(map[string]float64)
	for _, e := range events {
		if e.Child != child || e.Date < cutoff {
			continue
		}
		if _, err := e.Day(); err != nil {
			continue
		}
		byDay[e.Date] += e.Points
	}
	return sortSeries(byDay)
}

// WeeklySeries sums the child's points per Monday-aligned week across
// the full history. Rows with unparseable dates are skipped.
func WeeklySeries(events []models.PointEvent, child string) []SeriesPoint {
	byWeek := make(map[string]float64)
	for _, e := range events {
		if e.Child != child {
			continue
		}
		day, err := e.Day()
		if err != nil {
			continue
		}
		start := WeekStart(day).Format(models.DateLayout)
		byWeek[start] += e.Points
	}
	return sortSeries(byWeek)
}

// PenaltiesFor returns the child's negative-point rows, most recent
// date first.
func PenaltiesFor(events []models.PointEvent, child string) []models.PointEvent {
	var out []models.PointEvent
	for _, e := range events {
		if e.Child == child && e.Penalty() {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}

func sortSeries(buckets map[string]float64) []SeriesPoint {
	out := make([]SeriesPoint, 0, len(buckets))
	for date, pts := range buckets {
		out = append(out, SeriesPoint{Date: date, Points: pts})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}
