package models

import "time"

// DateLayout is the calendar-date format used in the ledger file.
const DateLayout = "2006-01-02"

// PointEvent is one ledger row: hours spent and points earned (or
// deducted) by a child on a date. Rows are identified by their position
// in the loaded ledger; the index is stable only within a single load.
type PointEvent struct {
	Date     string // YYYY-MM-DD
	Child    string
	Category string
	Task     string
	Hours    float64
	Points   float64
}

// Day parses the event date.
func (e PointEvent) Day() (time.Time, error) {
	return time.Parse(DateLayout, e.Date)
}

// Penalty reports whether the row is a deduction. Penalties are
// distinguished by negative points, not a typed flag.
func (e PointEvent) Penalty() bool {
	return e.Points < 0
}

// Today returns the current calendar date in ledger format.
func Today() string {
	return time.Now().Format(DateLayout)
}
