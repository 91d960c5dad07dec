package models

import (
	"encoding/json"
	"strconv"
	"strings"

	apperrors "github.com/ysato/pointbook/internal/errors"
)

// Category labels. The data files predate this program and are written
// in Japanese; the labels are part of the on-disk format, not UI text.
const (
	CategoryChore   = "お手伝い"
	CategoryStudy   = "勉強"
	CategoryPenalty = "ペナルティ"
)

// legacyChoreLabel is the old hiragana spelling remapped on every load.
const legacyChoreLabel = "おてつだい"

// StudyRate is the fixed points-per-hour for study activities. User
// supplied rates for the study category are overridden with this value.
const StudyRate = 10.0

// StudySubjects always exist in the config after a load.
var StudySubjects = []string{"算数", "国語", "理科", "社会", "英語"}

// ChorePresets are chore activities seeded into every config.
var ChorePresets = []string{"皿洗い", "洗濯物をたたむ", "そうじ", "ゴミ出し"}

// Activity is a named, rated chore or study task.
type Activity struct {
	ID            int     `json:"id"`
	Category      string  `json:"category"`
	Name          string  `json:"name"`
	PointsPerHour float64 `json:"points_per_hour"`
}

// UnmarshalJSON accepts the rate as either a JSON number or a quoted
// decimal string. Old config files produced by hand edits carry both;
// anything unparseable falls back to StudyRate.
func (a *Activity) UnmarshalJSON(data []byte) error {
	type alias struct {
		ID            int             `json:"id"`
		Category      string          `json:"category"`
		Name          string          `json:"name"`
		PointsPerHour json.RawMessage `json:"points_per_hour"`
	}
	var aux alias
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	a.ID = aux.ID
	a.Category = aux.Category
	a.Name = aux.Name
	a.PointsPerHour = parseRate(aux.PointsPerHour)
	return nil
}

func parseRate(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return StudyRate
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f
		}
	}
	return StudyRate
}

// Config is the full contents of the configuration document. It is
// loaded once per session, mutated in place, and persisted after every
// mutation.
type Config struct {
	ParentPassword string     `json:"parent_password"`
	Children       []string   `json:"children"`
	Tasks          []Activity `json:"tasks"`
}

// DefaultConfig is the document written when none exists yet.
func DefaultConfig() Config {
	return Config{
		ParentPassword: "otetsudai123",
		Children:       []string{"Aちゃん", "Bくん"},
		Tasks: []Activity{
			{ID: 1, Category: CategoryChore, Name: "皿洗い", PointsPerHour: 10.0},
			{ID: 2, Category: CategoryChore, Name: "洗濯物をたたむ", PointsPerHour: 10.0},
			{ID: 3, Category: CategoryStudy, Name: "算数", PointsPerHour: StudyRate},
			{ID: 4, Category: CategoryStudy, Name: "国語", PointsPerHour: StudyRate},
		},
	}
}

// NextID returns the next activity id: max existing id + 1, or 1 when
// the task list is empty.
func (c *Config) NextID() int {
	next := 1
	for _, t := range c.Tasks {
		if t.ID >= next {
			next = t.ID + 1
		}
	}
	return next
}

// FindActivity looks up an activity by (category, name).
func (c *Config) FindActivity(category, name string) (Activity, bool) {
	for _, t := range c.Tasks {
		if t.Category == category && t.Name == name {
			return t, true
		}
	}
	return Activity{}, false
}

// HasChild reports whether name is a registered child.
func (c *Config) HasChild(name string) bool {
	for _, ch := range c.Children {
		if ch == name {
			return true
		}
	}
	return false
}

// AddChild appends a child name. The name must be non-empty after
// trimming and not already registered.
func (c *Config) AddChild(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperrors.Validationf("child name must not be empty")
	}
	if c.HasChild(name) {
		return apperrors.Validationf("child %q is already registered", name)
	}
	c.Children = append(c.Children, name)
	return nil
}

// RemoveChild deletes a child name. At least one child must remain;
// ledger rows for the removed child are left untouched, the children
// list and the ledger are independent.
func (c *Config) RemoveChild(name string) error {
	if !c.HasChild(name) {
		return apperrors.NotFoundf("child %q is not registered", name)
	}
	if len(c.Children) <= 1 {
		return apperrors.Validationf("at least one child is required")
	}
	kept := make([]string, 0, len(c.Children)-1)
	for _, ch := range c.Children {
		if ch != name {
			kept = append(kept, ch)
		}
	}
	c.Children = kept
	return nil
}

// AddActivity registers a new activity and returns it. Study-category
// rates are pinned to StudyRate regardless of the supplied rate.
func (c *Config) AddActivity(category, name string, rate float64) (Activity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Activity{}, apperrors.Validationf("activity name must not be empty")
	}
	if _, ok := c.FindActivity(category, name); ok {
		return Activity{}, apperrors.Validationf("activity %q already exists in category %q", name, category)
	}
	if category == CategoryStudy {
		rate = StudyRate
	}
	a := Activity{ID: c.NextID(), Category: category, Name: name, PointsPerHour: rate}
	c.Tasks = append(c.Tasks, a)
	return a, nil
}

// RemoveActivity deletes the activity with the given id. Absent ids are
// a no-op.
func (c *Config) RemoveActivity(id int) {
	kept := make([]Activity, 0, len(c.Tasks))
	for _, t := range c.Tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	c.Tasks = kept
}

// SetParentPassword replaces the parent password.
func (c *Config) SetParentPassword(pw string) error {
	if pw == "" {
		return apperrors.Validationf("password must not be empty")
	}
	c.ParentPassword = pw
	return nil
}
