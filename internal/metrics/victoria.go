package metrics

import (
	"fmt"
	"io"
	"time"

	vm "github.com/VictoriaMetrics/metrics"
)

// VictoriaRecorder records into a VictoriaMetrics set and exposes it in
// Prometheus format.
type VictoriaRecorder struct {
	set *vm.Set
}

// NewVictoria returns a Recorder backed by its own metrics set.
func NewVictoria() *VictoriaRecorder {
	return &VictoriaRecorder{set: vm.NewSet()}
}

// IncBirthdaySaved increments birthday_saves_total.
func (v *VictoriaRecorder) IncBirthdaySaved() {
	v.set.GetOrCreateCounter("birthday_saves_total").Inc()
}

// IncGreetingServed increments birthday_greetings_total by kind.
func (v *VictoriaRecorder) IncGreetingServed(birthdayToday bool) {
	kind := "countdown"
	if birthdayToday {
		kind = "birthday"
	}
	v.set.GetOrCreateCounter(fmt.Sprintf(`birthday_greetings_total{kind=%q}`, kind)).Inc()
}

// IncValidationFailure increments birthday_validation_failures_total by rule.
func (v *VictoriaRecorder) IncValidationFailure(rule string) {
	v.set.GetOrCreateCounter(fmt.Sprintf(`birthday_validation_failures_total{rule=%q}`, rule)).Inc()
}

// IncStorageError increments birthday_storage_errors_total by operation.
func (v *VictoriaRecorder) IncStorageError(op string) {
	v.set.GetOrCreateCounter(fmt.Sprintf(`birthday_storage_errors_total{op=%q}`, op)).Inc()
}

// ObserveStorageDuration updates the birthday_storage_duration_seconds histogram.
func (v *VictoriaRecorder) ObserveStorageDuration(op string, duration time.Duration) {
	v.set.GetOrCreateHistogram(fmt.Sprintf(`birthday_storage_duration_seconds{op=%q}`, op)).Update(duration.Seconds())
}

// WritePrometheus writes all recorded metrics.
func (v *VictoriaRecorder) WritePrometheus(w io.Writer) {
	v.set.WritePrometheus(w)
}
