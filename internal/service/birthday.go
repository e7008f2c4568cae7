package service

import (
	"context"
	"errors"
	"time"

	"github.com/birthdayapi/birthdayapi/internal/birthday"
	"github.com/birthdayapi/birthdayapi/internal/metrics"
	"github.com/birthdayapi/birthdayapi/internal/model"
	"github.com/birthdayapi/birthdayapi/internal/storage"
)

// Greeting is the result of a read.
type Greeting struct {
	Username  string
	DaysUntil int
	Message   string
}

// BirthdayService validates input, persists dates of birth and computes
// greetings. It holds no mutable state besides the injected store.
type BirthdayService struct {
	store    storage.Store
	now      func() time.Time
	location *time.Location
	metrics  metrics.Recorder
}

// Option customises a BirthdayService.
type Option func(*BirthdayService)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *BirthdayService) { s.now = now }
}

// WithLocation sets the zone whose calendar date counts as "today".
func WithLocation(loc *time.Location) Option {
	return func(s *BirthdayService) { s.location = loc }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(recorder metrics.Recorder) Option {
	return func(s *BirthdayService) { s.metrics = recorder }
}

// NewBirthdayService creates a BirthdayService over store. Defaults: wall
// clock, UTC, no-op metrics.
func NewBirthdayService(store storage.Store, opts ...Option) *BirthdayService {
	s := &BirthdayService{
		store:    store,
		now:      time.Now,
		location: time.UTC,
		metrics:  metrics.NewNoop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today returns the current calendar date in the service location.
func (s *BirthdayService) Today() time.Time {
	return model.CivilDate(s.now().In(s.location))
}

// SaveDateOfBirth validates username and body, then upserts the record.
func (s *BirthdayService) SaveDateOfBirth(ctx context.Context, username string, body []byte) error {
	if err := ValidateUsername(username); err != nil {
		return s.rejected(err)
	}

	dob, err := ParseDateOfBirth(body, s.Today())
	if err != nil {
		return s.rejected(err)
	}

	start := time.Now()
	err = s.store.Upsert(ctx, username, dob)
	s.metrics.ObserveStorageDuration(metrics.OpUpsert, time.Since(start))
	if err != nil {
		s.metrics.IncStorageError(metrics.OpUpsert)
		return &StorageError{Op: metrics.OpUpsert, Err: err}
	}

	s.metrics.IncBirthdaySaved()
	return nil
}

// GetGreeting loads the date of birth for username and builds the greeting.
func (s *BirthdayService) GetGreeting(ctx context.Context, username string) (*Greeting, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, s.rejected(err)
	}

	start := time.Now()
	dob, err := s.store.Fetch(ctx, username)
	s.metrics.ObserveStorageDuration(metrics.OpFetch, time.Since(start))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		s.metrics.IncStorageError(metrics.OpFetch)
		return nil, &StorageError{Op: metrics.OpFetch, Err: err}
	}

	days := birthday.DaysUntil(dob, s.Today())
	s.metrics.IncGreetingServed(days == 0)

	return &Greeting{
		Username:  username,
		DaysUntil: days,
		Message:   birthday.Message(username, days),
	}, nil
}

func (s *BirthdayService) rejected(err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		s.metrics.IncValidationFailure(verr.Rule)
	}
	return err
}
