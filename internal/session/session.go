package session

import (
	"sort"

	"github.com/google/uuid"

	apperrors "github.com/ysato/pointbook/internal/errors"
	"github.com/ysato/pointbook/internal/models"
)

// StepMinutes is the fixed increment of the study buffer.
const StepMinutes = 15

// Session is the explicit per-session context: the parent-login flag
// and the per-child study buffers. It lives for one process and is
// never persisted; buffered minutes are lost when the session ends.
type Session struct {
	ID      string
	Parent  bool
	buffers map[string]map[string]int // child -> subject -> minutes
}

// New creates a fresh session.
func New() *Session {
	return &Session{
		ID:      uuid.New().String(),
		buffers: make(map[string]map[string]int),
	}
}

// Minutes returns the buffered minutes for a child's subject.
func (s *Session) Minutes(child, subject string) int {
	return s.buffers[child][subject]
}

// Increment adds one step to the child's subject. Unbounded above.
func (s *Session) Increment(child, subject string) {
	if s.buffers[child] == nil {
		s.buffers[child] = make(map[string]int)
	}
	s.buffers[child][subject] += StepMinutes
}

// Decrement subtracts one step, clamped at zero. Callers check the
// current value before offering the action.
func (s *Session) Decrement(child, subject string) {
	cur := s.buffers[child][subject]
	if cur < StepMinutes {
		return
	}
	s.buffers[child][subject] = cur - StepMinutes
}

// Reset clears all subjects for the child.
func (s *Session) Reset(child string) {
	delete(s.buffers, child)
}

// Subjects returns the child's buffered subject names, fixed study
// subjects first in their canonical order, any extras sorted after.
func (s *Session) Subjects(child string) []string {
	buf := s.buffers[child]
	var out []string
	seen := make(map[string]bool)
	for _, name := range models.StudySubjects {
		out = append(out, name)
		seen[name] = true
	}
	var extras []string
	for name := range buf {
		if !seen[name] {
			extras = append(extras, name)
		}
	}
	sort.Strings(extras)
	return append(out, extras...)
}

// Flush converts every subject with buffered minutes into one
// today-dated PointEvent and clears the buffer. The rate comes from the
// config's study activity for the subject, defaulting to the pinned
// study rate when the subject is missing. A NotFoundError signals that
// nothing was buffered.
func (s *Session) Flush(child string, cfg models.Config) ([]models.PointEvent, error) {
	buf := s.buffers[child]

	var events []models.PointEvent
	for _, subject := range s.Subjects(child) {
		minutes := buf[subject]
		if minutes <= 0 {
			continue
		}
		rate := models.StudyRate
		if a, ok := cfg.FindActivity(models.CategoryStudy, subject); ok {
			rate = a.PointsPerHour
		}
		hours := float64(minutes) / 60.0
		events = append(events, models.PointEvent{
			Date:     models.Today(),
			Child:    child,
			Category: models.CategoryStudy,
			Task:     subject,
			Hours:    hours,
			Points:   rate * hours,
		})
	}

	if len(events) == 0 {
		return nil, apperrors.NotFoundf("no study minutes buffered for %s", child)
	}

	s.Reset(child)
	return events, nil
}
