package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"

	apperrors "github.com/ysato/pointbook/internal/errors"
)

// PasswdCmd changes the parent password. The current password gates the
// change; the new one is entered twice.
type PasswdCmd struct {
	Password string `short:"p" help:"Current parent password (prompted when omitted)."`
}

func (c *PasswdCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if err := requireParent(ctx, c.Password); err != nil {
		return err
	}

	var newPwd, confirm string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("New password").
				EchoMode(huh.EchoModePassword).
				Value(&newPwd),
			huh.NewInput().
				Title("Repeat new password").
				EchoMode(huh.EchoModePassword).
				Value(&confirm),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	if newPwd != confirm {
		return apperrors.Validationf("passwords do not match")
	}

	cfg, err := ctx.Store.Config()
	if err != nil {
		return err
	}
	if err := cfg.SetParentPassword(newPwd); err != nil {
		return err
	}
	if err := ctx.Store.SaveConfig(cfg); err != nil {
		return err
	}

	fmt.Println("Parent password changed.")
	return nil
}
