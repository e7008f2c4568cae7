package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/birthdayapi/birthdayapi/internal/metrics"
	"github.com/birthdayapi/birthdayapi/internal/storage"
	"github.com/birthdayapi/birthdayapi/internal/storage/memory"
	"github.com/birthdayapi/birthdayapi/internal/testutil"
)

type failingStore struct {
	err error
}

func (f failingStore) Upsert(context.Context, string, time.Time) error { return f.err }
func (f failingStore) Fetch(context.Context, string) (time.Time, error) {
	return time.Time{}, f.err
}
func (f failingStore) Ping(context.Context) error { return f.err }
func (f failingStore) Close() error               { return nil }

func newTestService(t *testing.T, store storage.Store, now time.Time) (*BirthdayService, *metrics.InMemoryRecorder) {
	t.Helper()
	recorder := metrics.NewInMemory()
	svc := NewBirthdayService(store,
		WithClock(testutil.FixedClock(now)),
		WithMetrics(recorder),
	)
	return svc, recorder
}

func TestSaveAndGreet(t *testing.T) {
	ctx := context.Background()
	svc, recorder := newTestService(t, memory.New(), time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC))

	if err := svc.SaveDateOfBirth(ctx, "alice", []byte(`{"dateOfBirth":"1990-05-17"}`)); err != nil {
		t.Fatalf("save: %v", err)
	}

	greeting, err := svc.GetGreeting(ctx, "alice")
	if err != nil {
		t.Fatalf("greet: %v", err)
	}
	if greeting.DaysUntil != 7 {
		t.Errorf("expected 7 days, got %d", greeting.DaysUntil)
	}
	if greeting.Message != "Hello, alice! Your birthday is in 7 day(s)" {
		t.Errorf("unexpected message: %s", greeting.Message)
	}

	snap := recorder.Snapshot()
	if snap.BirthdaysSaved != 1 || snap.GreetingsServed != 1 {
		t.Errorf("unexpected counters: %+v", snap)
	}
	if snap.StorageCalls[metrics.OpUpsert] != 1 || snap.StorageCalls[metrics.OpFetch] != 1 {
		t.Errorf("unexpected storage calls: %+v", snap.StorageCalls)
	}
}

func TestGreetOnBirthday(t *testing.T) {
	ctx := context.Background()
	svc, recorder := newTestService(t, memory.New(), time.Date(2024, 5, 17, 8, 0, 0, 0, time.UTC))

	if err := svc.SaveDateOfBirth(ctx, "bob", []byte(`{"dateOfBirth":"1990-05-17"}`)); err != nil {
		t.Fatalf("save: %v", err)
	}

	greeting, err := svc.GetGreeting(ctx, "bob")
	if err != nil {
		t.Fatalf("greet: %v", err)
	}
	if greeting.Message != "Hello, bob! Happy birthday!" {
		t.Errorf("unexpected message: %s", greeting.Message)
	}
	if recorder.Snapshot().BirthdayGreetings != 1 {
		t.Error("expected birthday greeting to be counted")
	}
}

func TestSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, memory.New(), time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC))

	for _, body := range []string{`{"dateOfBirth":"1990-01-01"}`, `{"dateOfBirth":"1990-05-11"}`} {
		if err := svc.SaveDateOfBirth(ctx, "carol", []byte(body)); err != nil {
			t.Fatalf("save %s: %v", body, err)
		}
	}

	greeting, err := svc.GetGreeting(ctx, "carol")
	if err != nil {
		t.Fatalf("greet: %v", err)
	}
	if greeting.DaysUntil != 1 {
		t.Errorf("expected latest write to win with 1 day, got %d", greeting.DaysUntil)
	}
}

func TestTodayUsesLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	svc := NewBirthdayService(memory.New(),
		WithClock(testutil.FixedClock(time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC))),
		WithLocation(tokyo),
	)

	if got := svc.Today(); !got.Equal(testutil.Date(2024, 3, 11)) {
		t.Fatalf("expected 2024-03-11, got %v", got)
	}
}

func TestSaveValidationOrder(t *testing.T) {
	svc, recorder := newTestService(t, memory.New(), time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC))

	// Username is checked before the body.
	err := svc.SaveDateOfBirth(context.Background(), "bad1", []byte(`not json`))
	if !errors.Is(err, ErrInvalidUsername) {
		t.Fatalf("expected ErrInvalidUsername, got %v", err)
	}
	if recorder.Snapshot().ValidationFailures["invalid_username"] != 1 {
		t.Error("expected validation failure to be counted")
	}
}

func TestGetGreetingErrors(t *testing.T) {
	ctx := context.Background()
	backendErr := errors.New("connection refused")

	t.Run("invalid_username", func(t *testing.T) {
		svc, _ := newTestService(t, memory.New(), time.Now())
		if _, err := svc.GetGreeting(ctx, "x-y"); !errors.Is(err, ErrInvalidUsername) {
			t.Fatalf("expected ErrInvalidUsername, got %v", err)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		svc, recorder := newTestService(t, memory.New(), time.Now())
		if _, err := svc.GetGreeting(ctx, "nobody"); !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
		if recorder.Snapshot().StorageErrors[metrics.OpFetch] != 0 {
			t.Error("not found must not count as a storage error")
		}
	})

	t.Run("storage_failure", func(t *testing.T) {
		svc, recorder := newTestService(t, failingStore{err: backendErr}, time.Now())
		_, err := svc.GetGreeting(ctx, "alice")

		var storageErr *StorageError
		if !errors.As(err, &storageErr) || storageErr.Op != metrics.OpFetch {
			t.Fatalf("expected fetch StorageError, got %v", err)
		}
		if !errors.Is(err, backendErr) {
			t.Fatalf("expected wrapped backend error, got %v", err)
		}
		if recorder.Snapshot().StorageErrors[metrics.OpFetch] != 1 {
			t.Error("expected storage error to be counted")
		}
	})
}

func TestSaveStorageFailure(t *testing.T) {
	backendErr := errors.New("throttled")
	svc, _ := newTestService(t, failingStore{err: backendErr}, time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC))

	err := svc.SaveDateOfBirth(context.Background(), "alice", []byte(`{"dateOfBirth":"1990-01-01"}`))

	var storageErr *StorageError
	if !errors.As(err, &storageErr) || storageErr.Op != metrics.OpUpsert {
		t.Fatalf("expected upsert StorageError, got %v", err)
	}
}
