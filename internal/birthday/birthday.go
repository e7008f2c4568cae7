// Package birthday computes the distance to the next occurrence of a birthday.
//
// All inputs are calendar dates at midnight UTC (see model.CivilDate), so
// subtraction never crosses a DST transition and always yields whole days.
package birthday

import (
	"fmt"
	"time"
)

const day = 24 * time.Hour

// Next returns the next occurrence of dob's month and day on or after today.
//
// A Feb 29 birthday in a non-leap year normalises to Mar 1, which is how
// time.Date treats the out-of-range day.
func Next(dob, today time.Time) time.Time {
	candidate := time.Date(today.Year(), dob.Month(), dob.Day(), 0, 0, 0, 0, time.UTC)
	if candidate.Before(today) {
		candidate = time.Date(today.Year()+1, dob.Month(), dob.Day(), 0, 0, 0, 0, time.UTC)
	}
	return candidate
}

// DaysUntil returns the number of whole days from today to the next birthday.
// Zero means the birthday is today.
func DaysUntil(dob, today time.Time) int {
	return int(Next(dob, today).Sub(today) / day)
}

// Message renders the greeting returned by the read endpoint.
func Message(username string, days int) string {
	if days == 0 {
		return fmt.Sprintf("Hello, %s! Happy birthday!", username)
	}
	return fmt.Sprintf("Hello, %s! Your birthday is in %d day(s)", username, days)
}
