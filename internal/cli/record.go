package cli

import (
	"fmt"

	apperrors "github.com/ysato/pointbook/internal/errors"
	"github.com/ysato/pointbook/internal/models"
	"github.com/ysato/pointbook/internal/points"
	"github.com/ysato/pointbook/internal/validation"
)

type RecordCmd struct {
	Child    string  `arg:"" help:"Child name."`
	Task     string  `arg:"" help:"Activity name."`
	Hours    float64 `arg:"" help:"Hours spent (e.g. 0.5 = 30 minutes)."`
	Category string  `short:"c" help:"Activity category." default:"お手伝い"`
	Date     string  `short:"d" help:"Entry date (YYYY-MM-DD), defaults to today."`
}

func (c *RecordCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if err := requireChild(ctx, c.Child); err != nil {
		return err
	}
	if err := validation.Category(c.Category); err != nil {
		return err
	}
	if err := validation.Hours(c.Hours, false); err != nil {
		return err
	}

	date := c.Date
	if date == "" {
		date = models.Today()
	}
	if err := validation.Date(date); err != nil {
		return err
	}

	cfg, err := ctx.Store.Config()
	if err != nil {
		return err
	}
	activity, ok := cfg.FindActivity(c.Category, c.Task)
	if !ok {
		return apperrors.Validationf("no activity %q in category %q, add it first with 'pointbook activity add'", c.Task, c.Category)
	}

	pts := points.Compute(activity, c.Hours)
	event := models.PointEvent{
		Date:     date,
		Child:    c.Child,
		Category: activity.Category,
		Task:     activity.Name,
		Hours:    c.Hours,
		Points:   pts,
	}
	if err := ctx.Store.Append(event); err != nil {
		return err
	}

	fmt.Printf("Recorded %s: %s (%s) +%s\n", c.Child, activity.Name, formatHours(c.Hours), formatPoints(pts))
	return nil
}
