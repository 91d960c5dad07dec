package cli

import (
	"fmt"

	"github.com/ysato/pointbook/internal/validation"
)

type ActivityCmd struct {
	Add    ActivityAddCmd    `cmd:"" help:"Add an activity."`
	Remove ActivityRemoveCmd `cmd:"" help:"Remove an activity by id."`
	List   ActivityListCmd   `cmd:"" help:"List configured activities."`
}

type ActivityAddCmd struct {
	Name     string  `arg:"" help:"Activity name."`
	Category string  `short:"c" help:"Category." default:"お手伝い"`
	Rate     float64 `short:"r" help:"Points per hour (study rate is fixed)." default:"10"`
	Password string  `short:"p" help:"Parent password (prompted when omitted)."`
}

func (c *ActivityAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if err := requireParent(ctx, c.Password); err != nil {
		return err
	}
	if err := validation.Category(c.Category); err != nil {
		return err
	}

	cfg, err := ctx.Store.Config()
	if err != nil {
		return err
	}
	activity, err := cfg.AddActivity(c.Category, c.Name, c.Rate)
	if err != nil {
		return err
	}
	if err := ctx.Store.SaveConfig(cfg); err != nil {
		return err
	}

	fmt.Printf("Added activity %d: %s / %s (%.1f pt/h)\n", activity.ID, activity.Category, activity.Name, activity.PointsPerHour)
	return nil
}

type ActivityRemoveCmd struct {
	ID       int    `arg:"" help:"Activity id from 'activity list'."`
	Password string `short:"p" help:"Parent password (prompted when omitted)."`
}

func (c *ActivityRemoveCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if err := requireParent(ctx, c.Password); err != nil {
		return err
	}

	cfg, err := ctx.Store.Config()
	if err != nil {
		return err
	}
	cfg.RemoveActivity(c.ID)
	if err := ctx.Store.SaveConfig(cfg); err != nil {
		return err
	}

	fmt.Printf("Removed activity %d (if it existed)\n", c.ID)
	return nil
}

type ActivityListCmd struct{}

func (c *ActivityListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	cfg, err := ctx.Store.Config()
	if err != nil {
		return err
	}

	fmt.Printf("%4s  %-8s  %-20s  %s\n", "ID", "category", "name", "pt/h")
	for _, t := range cfg.Tasks {
		fmt.Printf("%4d  %-8s  %-20s  %.1f\n", t.ID, t.Category, t.Name, t.PointsPerHour)
	}
	return nil
}
