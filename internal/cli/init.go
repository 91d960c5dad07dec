package cli

import "fmt"

type InitCmd struct{}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}

	cfg, err := ctx.Store.Config()
	if err != nil {
		return err
	}

	fmt.Printf("Initialized pointbook storage at %s\n", ctx.Store.DataPath())
	fmt.Printf("Children: %v\n", cfg.Children)
	fmt.Printf("Activities: %d (change the parent password with 'pointbook passwd')\n", len(cfg.Tasks))
	return nil
}
