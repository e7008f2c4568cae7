// Package metrics provides lightweight hooks for instrumentation.
package metrics

import (
	"io"
	"time"
)

// Storage operation labels.
const (
	OpUpsert = "upsert"
	OpFetch  = "fetch"
)

// Recorder captures metric events for the application.
type Recorder interface {
	// Write path
	IncBirthdaySaved()
	// Read path; birthdayToday distinguishes greetings from countdowns.
	IncGreetingServed(birthdayToday bool)
	// Rejected input, labelled by the violated rule.
	IncValidationFailure(rule string)

	// Storage
	IncStorageError(op string)
	ObserveStorageDuration(op string, duration time.Duration)
}

// Exposer writes metrics in Prometheus text exposition format.
type Exposer interface {
	WritePrometheus(w io.Writer)
}
