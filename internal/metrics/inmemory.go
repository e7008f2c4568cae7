package metrics

import (
	"sync"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	BirthdaysSaved     uint64
	GreetingsServed    uint64
	BirthdayGreetings  uint64
	ValidationFailures map[string]uint64
	StorageErrors      map[string]uint64
	StorageCalls       map[string]uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	mu   sync.Mutex
	snap Snapshot
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{snap: Snapshot{
		ValidationFailures: make(map[string]uint64),
		StorageErrors:      make(map[string]uint64),
		StorageCalls:       make(map[string]uint64),
	}}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := m.snap
	out.ValidationFailures = copyCounts(m.snap.ValidationFailures)
	out.StorageErrors = copyCounts(m.snap.StorageErrors)
	out.StorageCalls = copyCounts(m.snap.StorageCalls)
	return out
}

// IncBirthdaySaved increments the saved counter.
func (m *InMemoryRecorder) IncBirthdaySaved() {
	m.mu.Lock()
	m.snap.BirthdaysSaved++
	m.mu.Unlock()
}

// IncGreetingServed increments the greeting counters.
func (m *InMemoryRecorder) IncGreetingServed(birthdayToday bool) {
	m.mu.Lock()
	m.snap.GreetingsServed++
	if birthdayToday {
		m.snap.BirthdayGreetings++
	}
	m.mu.Unlock()
}

// IncValidationFailure increments the counter for rule.
func (m *InMemoryRecorder) IncValidationFailure(rule string) {
	m.mu.Lock()
	m.snap.ValidationFailures[rule]++
	m.mu.Unlock()
}

// IncStorageError increments the error counter for op.
func (m *InMemoryRecorder) IncStorageError(op string) {
	m.mu.Lock()
	m.snap.StorageErrors[op]++
	m.mu.Unlock()
}

// ObserveStorageDuration counts a storage call for op.
func (m *InMemoryRecorder) ObserveStorageDuration(op string, duration time.Duration) {
	m.mu.Lock()
	m.snap.StorageCalls[op]++
	m.mu.Unlock()
}

func copyCounts(in map[string]uint64) map[string]uint64 {
	out := make(map[string]uint64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
