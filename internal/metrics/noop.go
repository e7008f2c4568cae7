package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncBirthdaySaved is a no-op.
func (n *NoopRecorder) IncBirthdaySaved() {}

// IncGreetingServed is a no-op.
func (n *NoopRecorder) IncGreetingServed(birthdayToday bool) {}

// IncValidationFailure is a no-op.
func (n *NoopRecorder) IncValidationFailure(rule string) {}

// IncStorageError is a no-op.
func (n *NoopRecorder) IncStorageError(op string) {}

// ObserveStorageDuration is a no-op.
func (n *NoopRecorder) ObserveStorageDuration(op string, duration time.Duration) {}
