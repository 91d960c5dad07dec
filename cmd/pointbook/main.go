package main

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/ysato/pointbook/internal/cli"
	apperrors "github.com/ysato/pointbook/internal/errors"
	"github.com/ysato/pointbook/internal/logger"
	"github.com/ysato/pointbook/internal/session"
	"github.com/ysato/pointbook/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Data    string `help:"Data path: a directory for the flat-file store, or a .db file for SQLite." type:"path" default:"~/.config/pointbook" env:"POINTBOOK_DATA"`
	Debug   bool   `help:"Verbose logging to stderr." env:"POINTBOOK_DEBUG"`

	Init     cli.InitCmd     `cmd:"" help:"Initialize pointbook storage."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Record   cli.RecordCmd   `cmd:"" help:"Record a chore or study entry."`
	Study    cli.StudyCmd    `cmd:"" help:"Run an interactive study-buffer session."`
	Penalty  cli.PenaltyCmd  `cmd:"" help:"Record a point deduction (parent)."`
	Undo     cli.UndoCmd     `cmd:"" help:"Undo a child's most recent entry."`
	Delete   cli.DeleteCmd   `cmd:"" help:"Delete a ledger row by index (parent)."`
	Report   cli.ReportCmd   `cmd:"" help:"Show a child's point summary."`
	Child    cli.ChildCmd    `cmd:"" help:"Manage children (parent)."`
	Activity cli.ActivityCmd `cmd:"" help:"Manage activities (parent)."`
	Passwd   cli.PasswdCmd   `cmd:"" help:"Change the parent password."`
	Backup   cli.BackupCmd   `cmd:"" help:"Snapshot the data files."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run diagnostics."`
}

func main() {
	// A .env next to the binary can set POINTBOOK_DATA / POINTBOOK_DEBUG.
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name("pointbook"),
		kong.Description("Household chore and study point tracker"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.3.0"},
	)

	logDir := CLI.Data
	if strings.HasSuffix(CLI.Data, ".db") {
		logDir = filepath.Dir(CLI.Data)
	}
	if err := logger.Init(logger.Config{Debug: CLI.Debug, DataDir: logDir}); err != nil {
		apperrors.Fatalf("failed to initialize logging: %v", err)
	}

	var store storage.Provider
	if strings.HasSuffix(CLI.Data, ".db") {
		store = storage.NewSQLiteStore(CLI.Data)
	} else {
		store = storage.NewFileStore(CLI.Data)
	}
	appCtx := &cli.Context{
		Store:   store,
		Session: session.New(),
	}

	err := ctx.Run(appCtx)
	store.Close()
	apperrors.Fatal(err)
}
