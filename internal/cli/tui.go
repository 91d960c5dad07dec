package cli

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ysato/pointbook/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	model, err := tui.NewModel(ctx.Store, ctx.Session)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
