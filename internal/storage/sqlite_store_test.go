package storage

import (
	"path/filepath"
	"testing"

	"github.com/ysato/pointbook/internal/models"
)

func TestSQLiteStore_ProviderContract(t *testing.T) {
	runProviderContract(t, func(dir string) Provider {
		return NewSQLiteStore(filepath.Join(dir, "pointbook.db"))
	})
}

func TestSQLiteStore_InitRefusesExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pointbook.db")

	s := NewSQLiteStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("first Init failed: %v", err)
	}
	s.Close()

	s2 := NewSQLiteStore(path)
	if err := s2.Init(); err == nil {
		t.Fatal("second Init succeeded, want error")
	}
}

// Deleting a middle row must not shift which database rows later
// index-based deletes hit.
func TestSQLiteStore_IndexStableAfterDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pointbook.db")
	s := NewSQLiteStore(path)
	defer s.Close()
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	for _, task := range []string{"a", "b", "c", "d"} {
		if err := s.Append(models.PointEvent{Date: "2026-01-07", Child: "Aちゃん", Category: models.CategoryChore, Task: task, Hours: 1, Points: 10}); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	if err := s.DeleteEvent(1); err != nil { // drops "b"
		t.Fatalf("DeleteEvent failed: %v", err)
	}
	if err := s.DeleteEvent(1); err != nil { // drops "c", now at index 1
		t.Fatalf("DeleteEvent failed: %v", err)
	}

	events, _ := s.Events()
	if len(events) != 2 || events[0].Task != "a" || events[1].Task != "d" {
		t.Fatalf("remaining rows = %+v, want a and d", events)
	}

	// The database agrees after a cold reload.
	s.Close()
	s2 := NewSQLiteStore(path)
	defer s2.Close()
	if err := s2.Load(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	events2, _ := s2.Events()
	if len(events2) != 2 || events2[0].Task != "a" || events2[1].Task != "d" {
		t.Fatalf("reloaded rows = %+v, want a and d", events2)
	}
}

func TestSQLiteStore_AppendBatchIsAtomicOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pointbook.db")
	s := NewSQLiteStore(path)
	defer s.Close()
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	batch := []models.PointEvent{
		{Date: "2026-01-07", Child: "Aちゃん", Category: models.CategoryStudy, Task: "算数", Hours: 0.25, Points: 2.5},
		{Date: "2026-01-07", Child: "Aちゃん", Category: models.CategoryStudy, Task: "国語", Hours: 0.5, Points: 5},
	}
	if err := s.Append(batch...); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	s.Close()
	s2 := NewSQLiteStore(path)
	defer s2.Close()
	if err := s2.Load(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	events, _ := s2.Events()
	if len(events) != 2 {
		t.Fatalf("events length = %d, want 2", len(events))
	}
	if events[0].Task != "算数" || events[1].Task != "国語" {
		t.Errorf("insert order not preserved: %+v", events)
	}
}
