// Package memory provides a process-local Store, used by tests and by
// STORAGE_BACKEND=memory for throwaway runs.
package memory

import (
	"context"
	"time"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/birthdayapi/birthdayapi/internal/model"
	"github.com/birthdayapi/birthdayapi/internal/storage"
)

// Store keeps birth records in a concurrent map.
type Store struct {
	records *xsync.MapOf[string, model.BirthRecord]
}

// New creates an empty Store.
func New() *Store {
	return &Store{records: xsync.NewMapOf[string, model.BirthRecord]()}
}

// Upsert stores dob for username, replacing any previous value.
func (s *Store) Upsert(ctx context.Context, username string, dob time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.records.Store(username, model.BirthRecord{Username: username, DateOfBirth: dob})
	return nil
}

// Fetch returns the date of birth for username.
func (s *Store) Fetch(ctx context.Context, username string) (time.Time, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, err
	}
	rec, ok := s.records.Load(username)
	if !ok {
		return time.Time{}, storage.ErrNotFound
	}
	return rec.DateOfBirth, nil
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	return s.records.Size()
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

var _ storage.Store = (*Store)(nil)
