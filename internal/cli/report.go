package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/ysato/pointbook/internal/models"
	"github.com/ysato/pointbook/internal/points"
)

// ReportCmd prints a child's point summary: totals, the trailing
// two-week daily series, weekly sums, penalties, and the row history.
type ReportCmd struct {
	Child   string `arg:"" help:"Child name."`
	History int    `short:"n" help:"History rows to show (0 = all)." default:"20"`
}

func (c *ReportCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if err := requireChild(ctx, c.Child); err != nil {
		return err
	}

	events, err := ctx.Store.Events()
	if err != nil {
		return err
	}

	now := time.Now()
	today := now.Format(models.DateLayout)

	fmt.Printf("Points for %s\n\n", c.Child)
	fmt.Printf("  Total:     %s\n", formatPoints(points.TotalFor(events, c.Child)))
	fmt.Printf("  Today:     %s\n", formatPoints(points.TodayFor(events, c.Child, today)))
	fmt.Printf("  This week: %s (from %s)\n", formatPoints(points.WeekFor(events, c.Child, now)),
		points.WeekStart(now).Format(models.DateLayout))

	daily := points.DailySeries(events, c.Child, now.AddDate(0, 0, -13))
	if len(daily) > 0 {
		fmt.Printf("\nLast 14 days:\n")
		printSeries(daily)
	}

	weekly := points.WeeklySeries(events, c.Child)
	if len(weekly) > 0 {
		fmt.Printf("\nPer week (Monday start):\n")
		printSeries(weekly)
	}

	penalties := points.PenaltiesFor(events, c.Child)
	if len(penalties) > 0 {
		fmt.Printf("\nPenalties:\n")
		for _, e := range penalties {
			fmt.Printf("  %s  %-20s %s\n", e.Date, e.Task, formatPoints(e.Points))
		}
	}

	c.printHistory(events)
	return nil
}

func (c *ReportCmd) printHistory(events []models.PointEvent) {
	type row struct {
		index int
		event models.PointEvent
	}
	var rows []row
	for i, e := range events {
		if e.Child == c.Child {
			rows = append(rows, row{index: i, event: e})
		}
	}
	if len(rows) == 0 {
		fmt.Println("\nNo entries yet.")
		return
	}

	// Most recent first. Indices stay valid for 'pointbook delete'.
	fmt.Printf("\nHistory (index, date, category, task, hours, points):\n")
	shown := 0
	for i := len(rows) - 1; i >= 0; i-- {
		if c.History > 0 && shown >= c.History {
			fmt.Printf("  ... %d more\n", i+1)
			break
		}
		r := rows[i]
		fmt.Printf("  [%3d] %s  %-8s %-20s %s  %s\n",
			r.index, r.event.Date, r.event.Category, r.event.Task,
			formatHours(r.event.Hours), formatPoints(r.event.Points))
		shown++
	}
}

// printSeries renders a small ASCII bar chart, one bar per bucket.
func printSeries(series []points.SeriesPoint) {
	var max float64
	for _, p := range series {
		if p.Points > max {
			max = p.Points
		}
	}
	for _, p := range series {
		width := 0
		if max > 0 && p.Points > 0 {
			width = int(p.Points / max * 30)
			if width == 0 {
				width = 1
			}
		}
		fmt.Printf("  %s  %6.1f  %s\n", p.Date, p.Points, strings.Repeat("█", width))
	}
}
