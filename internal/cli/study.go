package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"

	apperrors "github.com/ysato/pointbook/internal/errors"
	"github.com/ysato/pointbook/internal/session"
)

// StudyCmd runs an interactive study-buffer session: minutes accumulate
// in 15-minute steps per subject and are converted to ledger rows on
// flush. The buffer lives only for this process; quitting without a
// flush discards it.
type StudyCmd struct {
	Child string `arg:"" help:"Child name."`
}

const (
	studyActionFlush = "__flush"
	studyActionReset = "__reset"
	studyActionQuit  = "__quit"
)

func (c *StudyCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if err := requireChild(ctx, c.Child); err != nil {
		return err
	}

	for {
		choice, err := c.pickSubject(ctx)
		if err != nil {
			return err
		}

		switch choice {
		case studyActionQuit:
			return nil
		case studyActionReset:
			ctx.Session.Reset(c.Child)
			fmt.Println("Buffer cleared.")
		case studyActionFlush:
			if err := c.flush(ctx); err != nil {
				if apperrors.IsNotFound(err) {
					fmt.Println("Nothing to flush.")
					continue
				}
				return err
			}
			return nil
		default:
			if err := c.adjust(ctx, choice); err != nil {
				return err
			}
		}
	}
}

func (c *StudyCmd) pickSubject(ctx *Context) (string, error) {
	var opts []huh.Option[string]
	for _, subject := range ctx.Session.Subjects(c.Child) {
		minutes := ctx.Session.Minutes(c.Child, subject)
		label := fmt.Sprintf("%s (%d min)", subject, minutes)
		opts = append(opts, huh.NewOption(label, subject))
	}
	opts = append(opts,
		huh.NewOption("Flush to ledger", studyActionFlush),
		huh.NewOption("Reset buffer", studyActionReset),
		huh.NewOption("Quit without saving", studyActionQuit),
	)

	var choice string
	sel := huh.NewSelect[string]().
		Title(fmt.Sprintf("Study session for %s", c.Child)).
		Options(opts...).
		Value(&choice)
	if err := sel.Run(); err != nil {
		return "", err
	}
	return choice, nil
}

func (c *StudyCmd) adjust(ctx *Context, subject string) error {
	minutes := ctx.Session.Minutes(c.Child, subject)

	opts := []huh.Option[string]{
		huh.NewOption(fmt.Sprintf("+%d minutes", session.StepMinutes), "add"),
	}
	if minutes >= session.StepMinutes {
		opts = append(opts, huh.NewOption(fmt.Sprintf("-%d minutes", session.StepMinutes), "sub"))
	}
	opts = append(opts, huh.NewOption("Back", "back"))

	var action string
	sel := huh.NewSelect[string]().
		Title(fmt.Sprintf("%s: %d min", subject, minutes)).
		Options(opts...).
		Value(&action)
	if err := sel.Run(); err != nil {
		return err
	}

	switch action {
	case "add":
		ctx.Session.Increment(c.Child, subject)
	case "sub":
		ctx.Session.Decrement(c.Child, subject)
	}
	return nil
}

func (c *StudyCmd) flush(ctx *Context) error {
	cfg, err := ctx.Store.Config()
	if err != nil {
		return err
	}
	events, err := ctx.Session.Flush(c.Child, cfg)
	if err != nil {
		return err
	}
	if err := ctx.Store.Append(events...); err != nil {
		return err
	}

	var total float64
	for _, e := range events {
		fmt.Printf("Recorded %s: %s (%s) +%s\n", e.Child, e.Task, formatHours(e.Hours), formatPoints(e.Points))
		total += e.Points
	}
	fmt.Printf("Flushed %d entries, +%s\n", len(events), formatPoints(total))
	return nil
}
