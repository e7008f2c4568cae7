// Package storagetest holds behaviour checks shared by every storage.Store
// implementation.
package storagetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/birthdayapi/birthdayapi/internal/storage"
)

// Run exercises the Store contract against s. Usernames are derived from
// prefix so that runs against shared backends do not collide.
func Run(t *testing.T, s storage.Store, prefix string) {
	t.Helper()

	t.Run("fetch missing returns ErrNotFound", func(t *testing.T) {
		_, err := s.Fetch(context.Background(), prefix+"Nobody")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("upsert then fetch", func(t *testing.T) {
		ctx := context.Background()
		username := prefix + "Alice"
		dob := date(1990, time.January, 1)

		if err := s.Upsert(ctx, username, dob); err != nil {
			t.Fatalf("upsert: %v", err)
		}

		got, err := s.Fetch(ctx, username)
		if err != nil {
			t.Fatalf("fetch: %v", err)
		}
		if !got.Equal(dob) {
			t.Fatalf("expected %v, got %v", dob, got)
		}
	})

	t.Run("second upsert overwrites", func(t *testing.T) {
		ctx := context.Background()
		username := prefix + "Bob"

		if err := s.Upsert(ctx, username, date(1980, time.March, 3)); err != nil {
			t.Fatalf("first upsert: %v", err)
		}
		second := date(1985, time.July, 14)
		if err := s.Upsert(ctx, username, second); err != nil {
			t.Fatalf("second upsert: %v", err)
		}

		got, err := s.Fetch(ctx, username)
		if err != nil {
			t.Fatalf("fetch: %v", err)
		}
		if !got.Equal(second) {
			t.Fatalf("expected overwritten date %v, got %v", second, got)
		}
	})

	t.Run("usernames are case sensitive", func(t *testing.T) {
		ctx := context.Background()
		lower := prefix + "carol"
		upper := prefix + "CAROL"

		if err := s.Upsert(ctx, lower, date(2001, time.September, 9)); err != nil {
			t.Fatalf("upsert: %v", err)
		}
		if _, err := s.Fetch(ctx, upper); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("expected ErrNotFound for %q, got %v", upper, err)
		}
	})

	t.Run("ping", func(t *testing.T) {
		if err := s.Ping(context.Background()); err != nil {
			t.Fatalf("ping: %v", err)
		}
	})
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
