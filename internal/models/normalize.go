package models

import "math"

// Normalize applies the one-time migration and invariant pass run on
// every config load:
//
//  1. remap the legacy chore category spelling to the current label
//  2. force any activity named after a fixed study subject into the
//     study category
//  3. replace non-finite or non-positive rates with StudyRate
//  4. pin study-category rates to exactly StudyRate
//  5. drop later duplicates of a (category, name) pair, such as a
//     remapped study subject colliding with an existing study entry
//  6. seed any missing study subject or chore preset with the next
//     available id
//
// It reports whether anything changed so callers persist only when
// needed; running it twice without external edits changes nothing.
func Normalize(c *Config) bool {
	changed := false

	for i := range c.Tasks {
		t := &c.Tasks[i]

		if t.Category == legacyChoreLabel {
			t.Category = CategoryChore
			changed = true
		}

		if isStudySubject(t.Name) && t.Category != CategoryStudy {
			t.Category = CategoryStudy
			changed = true
		}

		if math.IsNaN(t.PointsPerHour) || math.IsInf(t.PointsPerHour, 0) || t.PointsPerHour <= 0 {
			t.PointsPerHour = StudyRate
			changed = true
		}

		if t.Category == CategoryStudy && t.PointsPerHour != StudyRate {
			t.PointsPerHour = StudyRate
			changed = true
		}
	}

	seen := make(map[string]bool, len(c.Tasks))
	kept := c.Tasks[:0]
	for _, t := range c.Tasks {
		key := t.Category + "\x00" + t.Name
		if seen[key] {
			changed = true
			continue
		}
		seen[key] = true
		kept = append(kept, t)
	}
	c.Tasks = kept

	for _, name := range StudySubjects {
		if _, ok := c.FindActivity(CategoryStudy, name); !ok {
			c.Tasks = append(c.Tasks, Activity{
				ID:            c.NextID(),
				Category:      CategoryStudy,
				Name:          name,
				PointsPerHour: StudyRate,
			})
			changed = true
		}
	}

	for _, name := range ChorePresets {
		if _, ok := c.FindActivity(CategoryChore, name); !ok {
			c.Tasks = append(c.Tasks, Activity{
				ID:            c.NextID(),
				Category:      CategoryChore,
				Name:          name,
				PointsPerHour: StudyRate,
			})
			changed = true
		}
	}

	return changed
}

func isStudySubject(name string) bool {
	for _, s := range StudySubjects {
		if s == name {
			return true
		}
	}
	return false
}
