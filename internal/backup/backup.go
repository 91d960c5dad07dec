package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	// MaxBackups is the maximum number of backups to keep
	MaxBackups = 14
	// BackupDirName is the name of the backup directory
	BackupDirName = "backups"
	// BackupPrefix is the prefix for backup snapshot directories
	BackupPrefix = "pointbook-"
)

// Info contains information about one backup snapshot
type Info struct {
	Path      string
	Timestamp time.Time
}

// Manager snapshots the data files (config.json and logs.csv, or the
// SQLite database) into timestamped directories with rotation.
type Manager struct {
	dataDir   string
	backupDir string
	files     []string
}

// NewManager creates a manager for the given data directory. files are
// the names of the files to snapshot, relative to dataDir.
func NewManager(dataDir string, files ...string) *Manager {
	return &Manager{
		dataDir:   dataDir,
		backupDir: filepath.Join(dataDir, BackupDirName),
		files:     files,
	}
}

// BackupDir returns the backup directory path
func (m *Manager) BackupDir() string {
	return m.backupDir
}

// CreateBackup snapshots the data files into a new timestamped
// directory and rotates old snapshots. Missing source files are
// skipped; a snapshot with no files is an error.
func (m *Manager) CreateBackup() (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	dest := filepath.Join(m.backupDir, BackupPrefix+timestamp)
	if err := os.MkdirAll(dest, 0700); err != nil {
		return "", fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	copied := 0
	for _, name := range m.files {
		src := filepath.Join(m.dataDir, name)
		if _, err := os.Stat(src); os.IsNotExist(err) {
			continue
		}
		if err := copyFile(src, filepath.Join(dest, name)); err != nil {
			return "", fmt.Errorf("failed to copy %s: %w", name, err)
		}
		copied++
	}
	if copied == 0 {
		os.RemoveAll(dest)
		return "", fmt.Errorf("no data files to back up in %s", m.dataDir)
	}

	if err := m.rotate(); err != nil {
		return "", err
	}
	return dest, nil
}

// ListBackups returns the snapshots, newest first.
func (m *Manager) ListBackups() ([]Info, error) {
	entries, err := os.ReadDir(m.backupDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), BackupPrefix) {
			continue
		}
		stamp := strings.TrimPrefix(entry.Name(), BackupPrefix)
		ts, err := time.Parse("20060102-150405", stamp)
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Path:      filepath.Join(m.backupDir, entry.Name()),
			Timestamp: ts,
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

func (m *Manager) rotate() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	for i := MaxBackups; i < len(backups); i++ {
		if err := os.RemoveAll(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup: %w", err)
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
