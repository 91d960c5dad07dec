package cli

import (
	"fmt"
	"path/filepath"

	"github.com/ysato/pointbook/internal/backup"
)

type BackupCmd struct {
	List bool `short:"l" help:"List existing backups instead of creating one."`
}

func (c *BackupCmd) Run(ctx *Context) error {
	mgr := newBackupManager(ctx)

	if c.List {
		backups, err := mgr.ListBackups()
		if err != nil {
			return err
		}
		if len(backups) == 0 {
			fmt.Println("No backups yet.")
			return nil
		}
		for _, b := range backups {
			fmt.Printf("%s  %s\n", b.Timestamp.Format("2006-01-02 15:04:05"), b.Path)
		}
		return nil
	}

	path, err := mgr.CreateBackup()
	if err != nil {
		return err
	}
	fmt.Printf("Backup created: %s\n", path)
	return nil
}

// newBackupManager picks the snapshot set for the active medium: the
// two flat files for a data directory, the database file otherwise.
func newBackupManager(ctx *Context) *backup.Manager {
	path := ctx.Store.DataPath()
	if filepath.Ext(path) == ".db" {
		return backup.NewManager(filepath.Dir(path), filepath.Base(path))
	}
	return backup.NewManager(path, "config.json", "logs.csv")
}
