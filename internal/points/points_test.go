package points

import (
	"testing"
	"time"

	"github.com/ysato/pointbook/internal/models"
)

func TestCompute(t *testing.T) {
	a := models.Activity{Category: models.CategoryStudy, Name: "算数", PointsPerHour: 10.0}

	if got := Compute(a, 0.5); got != 5.0 {
		t.Errorf("Compute(10.0, 0.5) = %v, want 5.0", got)
	}
}

func TestCompute_Linear(t *testing.T) {
	a := models.Activity{Category: models.CategoryChore, Name: "皿洗い", PointsPerHour: 12.5}

	for _, h := range []float64{0.25, 0.5, 1, 2.75} {
		if got, want := Compute(a, 2*h), 2*Compute(a, h); got != want {
			t.Errorf("Compute(a, 2*%v) = %v, want %v", h, got, want)
		}
	}
}

func TestWeekStart(t *testing.T) {
	cases := []struct {
		date string
		want string
	}{
		{"2025-12-29", "2025-12-29"}, // Monday maps to itself
		{"2025-12-30", "2025-12-29"}, // Tuesday
		{"2026-01-04", "2025-12-29"}, // Sunday, end of the same week
		{"2026-01-05", "2026-01-05"}, // next Monday
	}

	for _, c := range cases {
		day, err := time.Parse(models.DateLayout, c.date)
		if err != nil {
			t.Fatalf("parse %s: %v", c.date, err)
		}
		if got := WeekStart(day).Format(models.DateLayout); got != c.want {
			t.Errorf("WeekStart(%s) = %s, want %s", c.date, got, c.want)
		}
	}
}

func TestTodayFor_StudyScenario(t *testing.T) {
	// Empty ledger, child A, 0.5h of 算数 at the pinned study rate.
	a := models.Activity{Category: models.CategoryStudy, Name: "算数", PointsPerHour: 10.0}
	today := "2026-01-07"

	pts := Compute(a, 0.5)
	events := []models.PointEvent{{
		Date: today, Child: "A", Category: a.Category, Task: a.Name, Hours: 0.5, Points: pts,
	}}

	if pts != 5.0 {
		t.Errorf("points = %v, want 5.0", pts)
	}
	if got := TodayFor(events, "A", today); got != 5.0 {
		t.Errorf("TodayFor = %v, want 5.0", got)
	}
}

func TestTotalFor_FiltersByChild(t *testing.T) {
	events := []models.PointEvent{
		{Date: "2026-01-05", Child: "A", Points: 5},
		{Date: "2026-01-05", Child: "B", Points: 7},
		{Date: "2026-01-06", Child: "A", Points: -2},
	}

	if got := TotalFor(events, "A"); got != 3 {
		t.Errorf("TotalFor(A) = %v, want 3", got)
	}
	if got := TotalFor(events, "B"); got != 7 {
		t.Errorf("TotalFor(B) = %v, want 7", got)
	}
}

func TestWeekFor(t *testing.T) {
	// Wednesday 2026-01-07; the week starts Monday 2026-01-05.
	today, _ := time.Parse(models.DateLayout, "2026-01-07")
	events := []models.PointEvent{
		{Date: "2026-01-04", Child: "A", Points: 100}, // previous week
		{Date: "2026-01-05", Child: "A", Points: 5},
		{Date: "2026-01-07", Child: "A", Points: 2},
		{Date: "2026-01-06", Child: "B", Points: 9},
		{Date: "bogus", Child: "A", Points: 50}, // sorts above ISO dates, skipped
	}

	if got := WeekFor(events, "A", today); got != 7 {
		t.Errorf("WeekFor = %v, want 7", got)
	}
}

func TestDailySeries_WindowAndOrder(t *testing.T) {
	since, _ := time.Parse(models.DateLayout, "2026-01-01")
	events := []models.PointEvent{
		{Date: "2025-12-31", Child: "A", Points: 50}, // outside window
		{Date: "2026-01-03", Child: "A", Points: 2},
		{Date: "2026-01-01", Child: "A", Points: 1},
		{Date: "2026-01-03", Child: "A", Points: 4},
		{Date: "2026-01-02", Child: "B", Points: 9},
		{Date: "bogus", Child: "A", Points: 99}, // sorts above ISO dates, skipped
	}

	series := DailySeries(events, "A", since)

	if len(series) != 2 {
		t.Fatalf("series length = %d, want 2", len(series))
	}
	if series[0].Date != "2026-01-01" || series[0].Points != 1 {
		t.Errorf("series[0] = %+v", series[0])
	}
	if series[1].Date != "2026-01-03" || series[1].Points != 6 {
		t.Errorf("series[1] = %+v", series[1])
	}
}

func TestWeeklySeries(t *testing.T) {
	events := []models.PointEvent{
		{Date: "2025-12-30", Child: "A", Points: 3}, // week of 2025-12-29
		{Date: "2026-01-04", Child: "A", Points: 4}, // same week
		{Date: "2026-01-05", Child: "A", Points: 5}, // week of 2026-01-05
		{Date: "bogus", Child: "A", Points: 99},     // skipped
	}

	series := WeeklySeries(events, "A")

	if len(series) != 2 {
		t.Fatalf("series length = %d, want 2", len(series))
	}
	if series[0].Date != "2025-12-29" || series[0].Points != 7 {
		t.Errorf("series[0] = %+v", series[0])
	}
	if series[1].Date != "2026-01-05" || series[1].Points != 5 {
		t.Errorf("series[1] = %+v", series[1])
	}
}

func TestPenaltiesFor(t *testing.T) {
	events := []models.PointEvent{
		{Date: "2026-01-02", Child: "A", Category: models.CategoryPenalty, Task: "けんか", Points: -3},
		{Date: "2026-01-05", Child: "A", Category: models.CategoryPenalty, Task: "宿題忘れ", Points: -1},
		{Date: "2026-01-03", Child: "A", Points: 5},
		{Date: "2026-01-04", Child: "B", Category: models.CategoryPenalty, Points: -9},
	}

	got := PenaltiesFor(events, "A")

	if len(got) != 2 {
		t.Fatalf("penalties length = %d, want 2", len(got))
	}
	if got[0].Date != "2026-01-05" || got[1].Date != "2026-01-02" {
		t.Errorf("penalties not date-descending: %v, %v", got[0].Date, got[1].Date)
	}
}
