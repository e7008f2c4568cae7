// Package redisstore provides a Store on Redis, for deployments that use a
// managed Redis service as their key-value store. Each user is a hash at
// "user:<username>" with a single "dateOfBirth" field.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/birthdayapi/birthdayapi/internal/cache"
	"github.com/birthdayapi/birthdayapi/internal/model"
	"github.com/birthdayapi/birthdayapi/internal/storage"
)

const (
	keyPrefix = "user:"
	dobField  = "dateOfBirth"
)

// Store persists birth records in Redis hashes without expiry.
type Store struct {
	cache *cache.Cache
}

// New wraps a connected cache.
func New(c *cache.Cache) *Store {
	return &Store{cache: c}
}

func key(username string) string {
	return keyPrefix + username
}

// Upsert overwrites the dateOfBirth field for username.
func (s *Store) Upsert(ctx context.Context, username string, dob time.Time) error {
	if err := s.cache.Client().HSet(ctx, key(username), dobField, model.FormatDate(dob)).Err(); err != nil {
		return fmt.Errorf("redis hset failed: %w", err)
	}
	return nil
}

// Fetch reads the dateOfBirth field for username.
func (s *Store) Fetch(ctx context.Context, username string) (time.Time, error) {
	raw, err := s.cache.Client().HGet(ctx, key(username), dobField).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, storage.ErrNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("redis hget failed: %w", err)
	}

	dob, err := model.ParseDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("decode stored date: %w", err)
	}
	return dob, nil
}

// Ping checks Redis connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.cache.Ping(ctx)
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.cache.Close()
}

var _ storage.Store = (*Store)(nil)
