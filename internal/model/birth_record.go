// Package model defines domain entities for the application.
package model

import (
	"fmt"
	"time"
)

// DateLayout is the ISO calendar date format used on the wire and in every store.
const DateLayout = "2006-01-02"

// BirthRecord is the single persisted entity: one date of birth per username.
type BirthRecord struct {
	Username    string    `json:"username"`
	DateOfBirth time.Time `json:"dateOfBirth"`
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string into a date at midnight UTC.
// Out-of-range days such as 2021-02-30 are rejected.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// CivilDate drops the clock and zone from t, keeping the calendar date it has
// in its own location, and returns it at midnight UTC.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
