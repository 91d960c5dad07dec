package models

import (
	"encoding/json"
	"testing"
)

func TestNormalize_LegacyChoreLabel(t *testing.T) {
	cfg := Config{
		Tasks: []Activity{
			{ID: 1, Category: "おてつだい", Name: "皿洗い", PointsPerHour: 10},
		},
	}

	changed := Normalize(&cfg)

	if !changed {
		t.Fatal("expected Normalize to report a change")
	}
	if cfg.Tasks[0].Category != CategoryChore {
		t.Errorf("legacy label not remapped: %q", cfg.Tasks[0].Category)
	}
}

func TestNormalize_StudyRatesPinned(t *testing.T) {
	cfg := Config{
		Tasks: []Activity{
			{ID: 1, Category: CategoryStudy, Name: "算数", PointsPerHour: 15.0},
			{ID: 2, Category: CategoryChore, Name: "皿洗い", PointsPerHour: 12.0},
		},
	}

	Normalize(&cfg)

	for _, a := range cfg.Tasks {
		if a.Category == CategoryStudy && a.PointsPerHour != StudyRate {
			t.Errorf("study activity %q rate = %v, want %v", a.Name, a.PointsPerHour, StudyRate)
		}
	}
	if a, _ := cfg.FindActivity(CategoryChore, "皿洗い"); a.PointsPerHour != 12.0 {
		t.Errorf("chore rate changed: %v", a.PointsPerHour)
	}
}

func TestNormalize_StudySubjectForcedIntoStudyCategory(t *testing.T) {
	cfg := Config{
		Tasks: []Activity{
			{ID: 1, Category: CategoryChore, Name: "国語", PointsPerHour: 12.0},
		},
	}

	Normalize(&cfg)

	a, ok := cfg.FindActivity(CategoryStudy, "国語")
	if !ok {
		t.Fatal("国語 not moved to the study category")
	}
	if a.PointsPerHour != StudyRate {
		t.Errorf("moved subject rate = %v, want %v", a.PointsPerHour, StudyRate)
	}
}

func TestNormalize_PresetsExistExactlyOnce(t *testing.T) {
	cfg := Config{}

	Normalize(&cfg)

	checkOnce := func(category string, names []string) {
		for _, name := range names {
			count := 0
			for _, a := range cfg.Tasks {
				if a.Category == category && a.Name == name {
					count++
				}
			}
			if count != 1 {
				t.Errorf("%s/%s appears %d times, want 1", category, name, count)
			}
		}
	}
	checkOnce(CategoryStudy, StudySubjects)
	checkOnce(CategoryChore, ChorePresets)
}

func TestNormalize_StudySubjectCollisionDropsDuplicate(t *testing.T) {
	// AddActivity allows 国語 as a chore because the duplicate check is
	// per (category, name); the category forcing must not turn that
	// into two (勉強, 国語) entries.
	cfg := Config{
		Tasks: []Activity{
			{ID: 1, Category: CategoryStudy, Name: "国語", PointsPerHour: StudyRate},
			{ID: 2, Category: CategoryChore, Name: "国語", PointsPerHour: 5.0},
		},
	}

	changed := Normalize(&cfg)

	if !changed {
		t.Fatal("expected Normalize to report a change")
	}
	count := 0
	for _, a := range cfg.Tasks {
		if a.Category == CategoryStudy && a.Name == "国語" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("(勉強, 国語) appears %d times, want 1", count)
	}
	if _, ok := cfg.FindActivity(CategoryChore, "国語"); ok {
		t.Error("chore copy of 国語 survived normalization")
	}

	if Normalize(&cfg) {
		t.Error("second Normalize reported a change")
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	cfg := DefaultConfig()

	Normalize(&cfg)

	if Normalize(&cfg) {
		t.Error("second Normalize reported a change")
	}
}

func TestNormalize_UniqueIDs(t *testing.T) {
	cfg := Config{
		Tasks: []Activity{{ID: 5, Category: CategoryChore, Name: "皿洗い", PointsPerHour: 10}},
	}

	Normalize(&cfg)

	seen := make(map[int]bool)
	for _, a := range cfg.Tasks {
		if seen[a.ID] {
			t.Errorf("duplicate activity id %d", a.ID)
		}
		seen[a.ID] = true
	}
}

func TestNormalize_BadRates(t *testing.T) {
	cfg := Config{
		Tasks: []Activity{
			{ID: 1, Category: CategoryChore, Name: "皿洗い", PointsPerHour: -3},
			{ID: 2, Category: CategoryChore, Name: "そうじ", PointsPerHour: 0},
		},
	}

	Normalize(&cfg)

	for _, a := range cfg.Tasks {
		if a.PointsPerHour <= 0 {
			t.Errorf("activity %q kept non-positive rate %v", a.Name, a.PointsPerHour)
		}
	}
}

func TestActivityUnmarshal_StringRate(t *testing.T) {
	raw := `{"id": 1, "category": "勉強", "name": "算数", "points_per_hour": "12.5"}`

	var a Activity
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if a.PointsPerHour != 12.5 {
		t.Errorf("string rate parsed to %v, want 12.5", a.PointsPerHour)
	}
}

func TestActivityUnmarshal_GarbageRateDefaults(t *testing.T) {
	raw := `{"id": 1, "category": "勉強", "name": "算数", "points_per_hour": "lots"}`

	var a Activity
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if a.PointsPerHour != StudyRate {
		t.Errorf("garbage rate parsed to %v, want %v", a.PointsPerHour, StudyRate)
	}
}
