package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	apperrors "github.com/ysato/pointbook/internal/errors"
	"github.com/ysato/pointbook/internal/logger"
	"github.com/ysato/pointbook/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS config (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	document TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	date TEXT NOT NULL,
	child TEXT NOT NULL,
	category TEXT NOT NULL,
	task TEXT NOT NULL,
	hours REAL NOT NULL,
	points REAL NOT NULL
);
`

// SQLiteStore is the embedded-database medium behind the same Provider
// contract as FileStore. The config stays a single JSON document so
// normalization has one source of truth; events live in a table whose
// insert order defines the row index.
type SQLiteStore struct {
	path   string
	db     *sql.DB
	config *models.Config
	events []models.PointEvent
	ids    []int64 // event rowids in load order, parallel to events
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init() error {
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}
	return s.Load()
}

func (s *SQLiteStore) Load() error {
	if s.db == nil {
		dir := filepath.Dir(s.path)
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
		db, err := sql.Open("sqlite", s.path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		if _, err := db.Exec(schema); err != nil {
			db.Close()
			return fmt.Errorf("failed to create schema: %w", err)
		}
		s.db = db
	}

	if err := s.loadConfig(); err != nil {
		return err
	}
	return s.loadEvents()
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) loadConfig() error {
	var doc string
	err := s.db.QueryRow(`SELECT document FROM config WHERE id = 1`).Scan(&doc)
	if err == sql.ErrNoRows {
		cfg := models.DefaultConfig()
		models.Normalize(&cfg)
		s.config = &cfg
		logger.Info("config missing, writing defaults", "path", s.path)
		return s.saveConfig()
	}
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	cfg := models.Config{}
	if err := json.Unmarshal([]byte(doc), &cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	changed := models.Normalize(&cfg)
	s.config = &cfg
	if changed {
		logger.Info("config normalized", "path", s.path)
		return s.saveConfig()
	}
	return nil
}

func (s *SQLiteStore) loadEvents() error {
	rows, err := s.db.Query(`SELECT id, date, child, category, task, hours, points FROM events ORDER BY id ASC`)
	if err != nil {
		return fmt.Errorf("failed to read events: %w", err)
	}
	defer rows.Close()

	var events []models.PointEvent
	var ids []int64
	for rows.Next() {
		var id int64
		var e models.PointEvent
		if err := rows.Scan(&id, &e.Date, &e.Child, &e.Category, &e.Task, &e.Hours, &e.Points); err != nil {
			return fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read events: %w", err)
	}
	if events == nil {
		events = []models.PointEvent{}
	}
	s.events = events
	s.ids = ids
	return nil
}

func (s *SQLiteStore) saveConfig() error {
	doc, err := json.MarshalIndent(s.config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO config (id, document) VALUES (1, ?)
		 ON CONFLICT (id) DO UPDATE SET document = excluded.document`,
		string(doc),
	)
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Config() (models.Config, error) {
	if s.config == nil {
		return models.Config{}, fmt.Errorf("storage not loaded")
	}
	return *s.config, nil
}

func (s *SQLiteStore) SaveConfig(cfg models.Config) error {
	if s.config == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.config = &cfg
	return s.saveConfig()
}

func (s *SQLiteStore) Events() ([]models.PointEvent, error) {
	if s.events == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	out := make([]models.PointEvent, len(s.events))
	copy(out, s.events)
	return out, nil
}

func (s *SQLiteStore) Append(events ...models.PointEvent) error {
	if s.events == nil {
		return fmt.Errorf("storage not loaded")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var newIDs []int64
	for _, e := range events {
		result, err := tx.Exec(
			`INSERT INTO events (date, child, category, task, hours, points) VALUES (?, ?, ?, ?, ?, ?)`,
			e.Date, e.Child, e.Category, e.Task, e.Hours, e.Points,
		)
		if err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}
		newIDs = append(newIDs, id)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	s.events = append(s.events, events...)
	s.ids = append(s.ids, newIDs...)
	return nil
}

func (s *SQLiteStore) DeleteEvent(index int) error {
	if s.events == nil {
		return fmt.Errorf("storage not loaded")
	}
	if index < 0 || index >= len(s.events) {
		return nil
	}
	return s.deleteAt(index)
}

func (s *SQLiteStore) UndoLatest(child string) (models.PointEvent, error) {
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
	return removed, s.deleteAt(latest)
}

func (s *SQLiteStore) deleteAt(index int) error {
	if _, err := s.db.Exec(`DELETE FROM events WHERE id = ?`, s.ids[index]); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	s.events = append(s.events[:index], s.events[index+1:]...)
	s.ids = append(s.ids[:index], s.ids[index+1:]...)
	return nil
}

func (s *SQLiteStore) DataPath() string {
	return s.path
}
