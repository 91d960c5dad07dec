package cli

import (
	"fmt"

	apperrors "github.com/ysato/pointbook/internal/errors"
)

// UndoCmd removes the child's most recent ledger row (the maximum index
// among their rows). A child with no rows is a warning, not a failure.
type UndoCmd struct {
	Child string `arg:"" help:"Child name."`
}

func (c *UndoCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if err := requireChild(ctx, c.Child); err != nil {
		return err
	}

	removed, err := ctx.Store.UndoLatest(c.Child)
	if err != nil {
		if apperrors.IsNotFound(err) {
			fmt.Printf("Warning: %v\n", err)
			return nil
		}
		return err
	}

	fmt.Printf("Removed %s: %s on %s (%s)\n", removed.Child, removed.Task, removed.Date, formatPoints(removed.Points))
	return nil
}

// DeleteCmd removes one ledger row by its index in the current load.
// Indices come from 'pointbook report' output.
type DeleteCmd struct {
	Index    int    `arg:"" help:"Row index from the report listing."`
	Password string `short:"p" help:"Parent password (prompted when omitted)."`
}

func (c *DeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if err := requireParent(ctx, c.Password); err != nil {
		return err
	}

	events, err := ctx.Store.Events()
	if err != nil {
		return err
	}
	if c.Index < 0 || c.Index >= len(events) {
		fmt.Printf("Warning: no row at index %d\n", c.Index)
		return nil
	}
	target := events[c.Index]

	if err := ctx.Store.DeleteEvent(c.Index); err != nil {
		return err
	}

	fmt.Printf("Deleted row %d: %s %s on %s (%s)\n", c.Index, target.Child, target.Task, target.Date, formatPoints(target.Points))
	return nil
}
