package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	apperrors "github.com/ysato/pointbook/internal/errors"
	"github.com/ysato/pointbook/internal/logger"
	"github.com/ysato/pointbook/internal/models"
)

const (
	configFileName = "config.json"
	ledgerFileName = "logs.csv"
)

var ledgerHeader = []string{"date", "child", "category", "task", "hours", "points"}

// FileStore keeps the configuration in config.json and the ledger in
// logs.csv under one data directory. Both are rewritten wholesale on
// every mutation.
type FileStore struct {
	dir    string
	config *models.Config
	events []models.PointEvent
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) configPath() string { return filepath.Join(s.dir, configFileName) }
func (s *FileStore) ledgerPath() string { return filepath.Join(s.dir, ledgerFileName) }

func (s *FileStore) Init() error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if _, err := os.Stat(s.configPath()); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.configPath())
	}
	return s.Load()
}

// Load reads both files, creating the config from defaults when it is
// missing and normalizing it afterwards. Normalization is persisted
// only when it changed something, so loading twice without external
// edits writes nothing.
func (s *FileStore) Load() error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := s.loadConfig(); err != nil {
		return err
	}
	return s.loadLedger()
}

func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) loadConfig() error {
	data, err := os.ReadFile(s.configPath())
	if os.IsNotExist(err) {
		cfg := models.DefaultConfig()
		models.Normalize(&cfg)
		s.config = &cfg
		logger.Info("config missing, writing defaults", "path", s.configPath())
		return s.saveConfig()
	}
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	cfg := models.Config{}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	changed := models.Normalize(&cfg)
	s.config = &cfg
	if changed {
		logger.Info("config normalized", "path", s.configPath())
		return s.saveConfig()
	}
	return nil
}

func (s *FileStore) loadLedger() error {
	f, err := os.Open(s.ledgerPath())
	if os.IsNotExist(err) {
		s.events = []models.PointEvent{}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open ledger: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to parse ledger: %w", err)
	}

	events := make([]models.PointEvent, 0, len(records))
	for i, rec := range records {
		if i == 0 && len(rec) > 0 && rec[0] == ledgerHeader[0] {
			continue
		}
		if len(rec) != len(ledgerHeader) {
			return fmt.Errorf("ledger row %d has %d columns, want %d", i+1, len(rec), len(ledgerHeader))
		}
		hours, err := strconv.ParseFloat(rec[4], 64)
		if err != nil {
			return fmt.Errorf("ledger row %d: invalid hours %q: %w", i+1, rec[4], err)
		}
		pts, err := strconv.ParseFloat(rec[5], 64)
		if err != nil {
			return fmt.Errorf("ledger row %d: invalid points %q: %w", i+1, rec[5], err)
		}
		events = append(events, models.PointEvent{
			Date:     rec[0],
			Child:    rec[1],
			Category: rec[2],
			Task:     rec[3],
			Hours:    hours,
			Points:   pts,
		})
	}
	s.events = events
	return nil
}

func (s *FileStore) saveConfig() error {
	data, err := json.MarshalIndent(s.config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(s.configPath(), data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (s *FileStore) saveLedger() error {
	f, err := os.Create(s.ledgerPath())
	if err != nil {
		return fmt.Errorf("failed to write ledger: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(ledgerHeader); err != nil {
		return fmt.Errorf("failed to write ledger header: %w", err)
	}
	for _, e := range s.events {
		rec := []string{
			e.Date,
			e.Child,
			e.Category,
			e.Task,
			strconv.FormatFloat(e.Hours, 'g', -1, 64),
			strconv.FormatFloat(e.Points, 'g', -1, 64),
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("failed to write ledger row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush ledger: %w", err)
	}
	return f.Close()
}

func (s *FileStore) Config() (models.Config, error) {
	if s.config == nil {
		return models.Config{}, fmt.Errorf("storage not loaded")
	}
	return *s.config, nil
}

func (s *FileStore) SaveConfig(cfg models.Config) error {
	if s.config == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.config = &cfg
	return s.saveConfig()
}

func (s *FileStore) Events() ([]models.PointEvent, error) {
	if s.events == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	out := make([]models.PointEvent, len(s.events))
	copy(out, s.events)
	return out, nil
}

func (s *FileStore) Append(events ...models.PointEvent) error {
	if s.events == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.events = append(s.events, events...)
	return s.saveLedger()
}

// DeleteEvent removes the row at index. An absent index is a silent
// no-op; verifying the index is the caller's responsibility.
func (s *FileStore) DeleteEvent(index int) error {
	if s.events == nil {
		return fmt.Errorf("storage not loaded")
	}
	if index < 0 || index >= len(s.events) {
		return nil
	}
	s.events = append(s.events[:index], s.events[index+1:]...)
	return s.saveLedger()
}

// UndoLatest removes the row with the maximum index among the child's
// rows and returns it.
func (s *FileStore) UndoLatest(child string) (models.PointEvent, error) {
	if s.events == nil {
		return models.PointEvent{}, fmt.Errorf("storage not loaded")
	}
	latest := -1
	for i, e := range s.events {
		if e.Child == child {
			latest = i
		}
	}
	if latest < 0 {
		return models.PointEvent{}, apperrors.NotFoundf("no ledger rows for %s", child)
	}
	removed := s.events[latest]
	s.events = append(s.events[:latest], s.events[latest+1:]...)
	return removed, s.saveLedger()
}

func (s *FileStore) DataPath() string {
	return s.dir
}
