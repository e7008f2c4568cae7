// Package service provides business logic for the application.
package service

import (
	"errors"
	"fmt"
)

// ValidationError reports client input that broke a rule. Message is safe to
// return to the caller; Rule is a stable label for metrics.
type ValidationError struct {
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validation errors, one per rule, checked in this order.
var (
	ErrInvalidUsername    = &ValidationError{Rule: "invalid_username", Message: "username must contain only letters"}
	ErrInvalidJSON        = &ValidationError{Rule: "invalid_json", Message: "invalid JSON"}
	ErrMissingDateOfBirth = &ValidationError{Rule: "missing_date_of_birth", Message: "missing dateOfBirth field"}
	ErrInvalidDateFormat  = &ValidationError{Rule: "invalid_date_format", Message: "invalid date format"}
	ErrDateNotInPast      = &ValidationError{Rule: "date_not_in_past", Message: "date of birth must be before today"}
)

// ErrUserNotFound is returned when no date of birth is stored for a username.
var ErrUserNotFound = errors.New("user not found")

// StorageError wraps a backend failure. Its message is never shown to clients.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
