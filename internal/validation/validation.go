package validation

import (
	"strings"
	"time"

	apperrors "github.com/ysato/pointbook/internal/errors"
	"github.com/ysato/pointbook/internal/models"
)

// MaxHours caps a single entry at one full day.
const MaxHours = 24.0

// Name trims s and fails when nothing remains.
func Name(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", apperrors.Validationf("name must not be empty")
	}
	return s, nil
}

// Hours checks an hours value. Zero is only valid for penalty rows,
// which carry points without time spent.
func Hours(h float64, allowZero bool) error {
	if h < 0 {
		return apperrors.Validationf("hours must not be negative")
	}
	if h == 0 && !allowZero {
		return apperrors.Validationf("hours must be greater than zero")
	}
	if h > MaxHours {
		return apperrors.Validationf("hours must be at most %.0f", MaxHours)
	}
	return nil
}

// Date checks a YYYY-MM-DD calendar date string.
func Date(s string) error {
	if _, err := time.Parse(models.DateLayout, s); err != nil {
		return apperrors.Validationf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return nil
}

// Category checks a ledger category label.
func Category(label string) error {
	switch label {
	case models.CategoryChore, models.CategoryStudy, models.CategoryPenalty:
		return nil
	}
	return apperrors.Validationf("unknown category %q", label)
}
