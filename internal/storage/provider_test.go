package storage

import (
	"testing"

	apperrors "github.com/ysato/pointbook/internal/errors"
	"github.com/ysato/pointbook/internal/models"
)

// runProviderContract exercises the Provider behavior both media must
// share. newStore returns a fresh, unloaded provider over dir so each
// subtest can reopen the same data and cover persistence across loads.
func runProviderContract(t *testing.T, newStore func(dir string) Provider) {
	t.Helper()

	mustLoad := func(t *testing.T, s Provider) {
		t.Helper()
		if err := s.Load(); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
	}

	t.Run("LoadCreatesDefaults", func(t *testing.T) {
		s := newStore(t.TempDir())
		defer s.Close()
		mustLoad(t, s)

		cfg, err := s.Config()
		if err != nil {
			t.Fatalf("Config failed: %v", err)
		}
		if cfg.ParentPassword == "" {
			t.Error("default config has no parent password")
		}
		if len(cfg.Children) == 0 {
			t.Error("default config has no children")
		}
		for _, name := range models.StudySubjects {
			if _, ok := cfg.FindActivity(models.CategoryStudy, name); !ok {
				t.Errorf("study subject %s missing after load", name)
			}
		}
		for _, name := range models.ChorePresets {
			if _, ok := cfg.FindActivity(models.CategoryChore, name); !ok {
				t.Errorf("chore preset %s missing after load", name)
			}
		}

		events, err := s.Events()
		if err != nil {
			t.Fatalf("Events failed: %v", err)
		}
		if len(events) != 0 {
			t.Errorf("fresh ledger has %d rows", len(events))
		}
	})

	t.Run("StudyRatesPinnedOnEveryLoad", func(t *testing.T) {
		dir := t.TempDir()
		s := newStore(dir)
		mustLoad(t, s)

		cfg, _ := s.Config()
		for i := range cfg.Tasks {
			if cfg.Tasks[i].Category == models.CategoryStudy {
				cfg.Tasks[i].PointsPerHour = 42.0
			}
		}
		if err := s.SaveConfig(cfg); err != nil {
			t.Fatalf("SaveConfig failed: %v", err)
		}
		s.Close()

		s2 := newStore(dir)
		defer s2.Close()
		mustLoad(t, s2)
		cfg2, _ := s2.Config()
		for _, a := range cfg2.Tasks {
			if a.Category == models.CategoryStudy && a.PointsPerHour != models.StudyRate {
				t.Errorf("study activity %q rate = %v after reload, want %v", a.Name, a.PointsPerHour, models.StudyRate)
			}
		}
	})

	t.Run("AppendPersistsAcrossLoads", func(t *testing.T) {
		dir := t.TempDir()
		s := newStore(dir)
		mustLoad(t, s)

		event := models.PointEvent{
			Date: "2026-01-07", Child: "Aちゃん", Category: models.CategoryStudy,
			Task: "算数", Hours: 0.5, Points: 5.0,
		}
		if err := s.Append(event); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
		s.Close()

		s2 := newStore(dir)
		defer s2.Close()
		mustLoad(t, s2)
		events, err := s2.Events()
		if err != nil {
			t.Fatalf("Events failed: %v", err)
		}
		if len(events) != 1 {
			t.Fatalf("events length = %d, want 1", len(events))
		}
		if events[0] != event {
			t.Errorf("reloaded event = %+v, want %+v", events[0], event)
		}
	})

	t.Run("DeleteEventAbsentIndexIsNoop", func(t *testing.T) {
		s := newStore(t.TempDir())
		defer s.Close()
		mustLoad(t, s)

		if err := s.DeleteEvent(99); err != nil {
			t.Errorf("DeleteEvent(99) on empty ledger: %v", err)
		}
		if err := s.DeleteEvent(-1); err != nil {
			t.Errorf("DeleteEvent(-1): %v", err)
		}
	})

	t.Run("DeleteEventByIndex", func(t *testing.T) {
		s := newStore(t.TempDir())
		defer s.Close()
		mustLoad(t, s)

		for _, task := range []string{"one", "two", "three"} {
			if err := s.Append(models.PointEvent{Date: "2026-01-07", Child: "Aちゃん", Category: models.CategoryChore, Task: task, Hours: 1, Points: 10}); err != nil {
				t.Fatalf("Append failed: %v", err)
			}
		}

		if err := s.DeleteEvent(1); err != nil {
			t.Fatalf("DeleteEvent failed: %v", err)
		}

		events, _ := s.Events()
		if len(events) != 2 {
			t.Fatalf("events length = %d, want 2", len(events))
		}
		if events[0].Task != "one" || events[1].Task != "three" {
			t.Errorf("wrong row deleted: %s, %s", events[0].Task, events[1].Task)
		}
	})

	t.Run("UndoLatest", func(t *testing.T) {
		s := newStore(t.TempDir())
		defer s.Close()
		mustLoad(t, s)

		rows := []models.PointEvent{
			{Date: "2026-01-05", Child: "Aちゃん", Category: models.CategoryChore, Task: "皿洗い", Hours: 1, Points: 10},
			{Date: "2026-01-06", Child: "Bくん", Category: models.CategoryChore, Task: "そうじ", Hours: 1, Points: 10},
			{Date: "2026-01-07", Child: "Aちゃん", Category: models.CategoryStudy, Task: "算数", Hours: 0.5, Points: 5},
			{Date: "2026-01-07", Child: "Bくん", Category: models.CategoryStudy, Task: "国語", Hours: 0.5, Points: 5},
		}
		if err := s.Append(rows...); err != nil {
			t.Fatalf("Append failed: %v", err)
		}

		removed, err := s.UndoLatest("Aちゃん")
		if err != nil {
			t.Fatalf("UndoLatest failed: %v", err)
		}
		if removed.Task != "算数" {
			t.Errorf("removed %q, want the latest Aちゃん row 算数", removed.Task)
		}

		events, _ := s.Events()
		if len(events) != 3 {
			t.Fatalf("events length = %d, want 3", len(events))
		}
		// Other children's rows untouched, order preserved.
		if events[0].Task != "皿洗い" || events[1].Task != "そうじ" || events[2].Task != "国語" {
			t.Errorf("unexpected remaining rows: %+v", events)
		}
	})

	t.Run("UndoLatestNoRows", func(t *testing.T) {
		s := newStore(t.TempDir())
		defer s.Close()
		mustLoad(t, s)

		_, err := s.UndoLatest("Cさん")
		if !apperrors.IsNotFound(err) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
	})

	t.Run("SaveConfigRoundTrip", func(t *testing.T) {
		dir := t.TempDir()
		s := newStore(dir)
		mustLoad(t, s)

		cfg, _ := s.Config()
		if err := cfg.AddChild("Cさん"); err != nil {
			t.Fatalf("AddChild failed: %v", err)
		}
		if err := s.SaveConfig(cfg); err != nil {
			t.Fatalf("SaveConfig failed: %v", err)
		}
		s.Close()

		s2 := newStore(dir)
		defer s2.Close()
		mustLoad(t, s2)
		cfg2, _ := s2.Config()
		if !cfg2.HasChild("Cさん") {
			t.Error("added child lost across reload")
		}
	})
}
