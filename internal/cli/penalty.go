package cli

import (
	"fmt"

	apperrors "github.com/ysato/pointbook/internal/errors"
	"github.com/ysato/pointbook/internal/models"
	"github.com/ysato/pointbook/internal/validation"
)

// PenaltyCmd records a parent-gated deduction: a zero-hour row with
// negative points under the penalty category.
type PenaltyCmd struct {
	Child    string  `arg:"" help:"Child name."`
	Points   float64 `arg:"" help:"Points to deduct (positive number)."`
	Reason   string  `arg:"" help:"Why the penalty applies."`
	Date     string  `short:"d" help:"Entry date (YYYY-MM-DD), defaults to today."`
	Password string  `short:"p" help:"Parent password (prompted when omitted)."`
}

func (c *PenaltyCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if err := requireParent(ctx, c.Password); err != nil {
		return err
	}
	if err := requireChild(ctx, c.Child); err != nil {
		return err
	}
	if c.Points <= 0 {
		return apperrors.Validationf("penalty points must be positive")
	}
	reason, err := validation.Name(c.Reason)
	if err != nil {
		return err
	}

	date := c.Date
	if date == "" {
		date = models.Today()
	}
	if err := validation.Date(date); err != nil {
		return err
	}

	event := models.PointEvent{
		Date:     date,
		Child:    c.Child,
		Category: models.CategoryPenalty,
		Task:     reason,
		Hours:    0,
		Points:   -c.Points,
	}
	if err := ctx.Store.Append(event); err != nil {
		return err
	}

	fmt.Printf("Recorded penalty for %s: %s (-%s)\n", c.Child, reason, formatPoints(c.Points))
	return nil
}
