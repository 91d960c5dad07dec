package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"

	apperrors "github.com/ysato/pointbook/internal/errors"
	"github.com/ysato/pointbook/internal/session"
	"github.com/ysato/pointbook/internal/storage"
)

type Context struct {
	Store   storage.Provider
	Session *session.Session
}

// requireParent checks the parent password before a gated command runs.
// An empty password triggers an interactive prompt. The store must be
// loaded.
func requireParent(ctx *Context, password string) error {
	cfg, err := ctx.Store.Config()
	if err != nil {
		return err
	}

	if password == "" {
		prompt := huh.NewInput().
			Title("Parent password").
			EchoMode(huh.EchoModePassword).
			Value(&password)
		if err := prompt.Run(); err != nil {
			return err
		}
	}

	if password != cfg.ParentPassword {
		return apperrors.Validationf("parent password does not match")
	}
	return nil
}

// requireChild verifies the child is registered before touching the
// ledger on their behalf.
func requireChild(ctx *Context, name string) error {
	cfg, err := ctx.Store.Config()
	if err != nil {
		return err
	}
	if !cfg.HasChild(name) {
		return apperrors.Validationf("child %q is not registered", name)
	}
	return nil
}

func formatPoints(pts float64) string {
	return fmt.Sprintf("%.1f pt", pts)
}

func formatHours(hours float64) string {
	return fmt.Sprintf("%.2f h", hours)
}
