package service

import (
	"bytes"
	"encoding/json"
	"regexp"
	"time"

	"github.com/birthdayapi/birthdayapi/internal/model"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z]+$`)

// ValidateUsername accepts one or more ASCII letters and nothing else.
func ValidateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

// ParseDateOfBirth validates a write payload of the form
// {"dateOfBirth":"YYYY-MM-DD"} and returns the date, which must fall strictly
// before today. today must be a civil date (see model.CivilDate).
func ParseDateOfBirth(body []byte, today time.Time) (time.Time, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil || payload == nil {
		return time.Time{}, ErrInvalidJSON
	}

	raw, ok := payload["dateOfBirth"]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return time.Time{}, ErrMissingDateOfBirth
	}

	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}

	dob, err := model.ParseDate(value)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}

	if !dob.Before(today) {
		return time.Time{}, ErrDateNotInPast
	}

	return dob, nil
}
