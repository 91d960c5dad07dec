package cli

import (
	"fmt"
)

type ChildCmd struct {
	Add    ChildAddCmd    `cmd:"" help:"Register a child."`
	Remove ChildRemoveCmd `cmd:"" help:"Remove a child."`
	List   ChildListCmd   `cmd:"" help:"List registered children."`
}

type ChildAddCmd struct {
	Name     string `arg:"" help:"Child name."`
	Password string `short:"p" help:"Parent password (prompted when omitted)."`
}

func (c *ChildAddCmd) Run(ctx *Context) error {
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
	if err := cfg.AddChild(c.Name); err != nil {
		return err
	}
	if err := ctx.Store.SaveConfig(cfg); err != nil {
		return err
	}

	fmt.Printf("Added child: %s\n", c.Name)
	return nil
}

type ChildRemoveCmd struct {
	Name     string `arg:"" help:"Child name."`
	Password string `short:"p" help:"Parent password (prompted when omitted)."`
}

func (c *ChildRemoveCmd) Run(ctx *Context) error {
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
	if err := cfg.RemoveChild(c.Name); err != nil {
		return err
	}
	if err := ctx.Store.SaveConfig(cfg); err != nil {
		return err
	}

	// Ledger rows for the removed child stay; children and ledger are
	// independent.
	fmt.Printf("Removed child: %s\n", c.Name)
	return nil
}

type ChildListCmd struct{}

func (c *ChildListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	cfg, err := ctx.Store.Config()
	if err != nil {
		return err
	}
	for _, name := range cfg.Children {
		fmt.Println(name)
	}
	return nil
}
