// Package storage defines the persistence contract for birth records.
//
// Every backend offers the same semantics: Upsert unconditionally overwrites
// the stored date for a username (last write wins) and Fetch reports a missing
// username with ErrNotFound rather than a failure.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Fetch when no record exists for a username.
var ErrNotFound = errors.New("record not found")

// Store persists one date of birth per username.
type Store interface {
	// Upsert inserts or replaces the date of birth for username.
	Upsert(ctx context.Context, username string, dob time.Time) error
	// Fetch returns the stored date of birth, or ErrNotFound.
	Fetch(ctx context.Context, username string) (time.Time, error)
	// Ping checks backend connectivity.
	Ping(ctx context.Context) error
	// Close releases backend resources.
	Close() error
}
