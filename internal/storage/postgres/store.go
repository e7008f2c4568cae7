// Package postgres provides a Store on PostgreSQL via a pgx connection pool.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/birthdayapi/birthdayapi/internal/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	username      TEXT PRIMARY KEY,
	date_of_birth DATE NOT NULL
)`

// Store persists birth records in the users table.
type Store struct {
	pool *pgxpool.Pool
}

// New connects to databaseURL and ensures the users table exists.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure users table: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Upsert inserts the row or replaces its date of birth.
func (s *Store) Upsert(ctx context.Context, username string, dob time.Time) error {
	query := `
		INSERT INTO users (username, date_of_birth)
		VALUES ($1, $2)
		ON CONFLICT (username) DO UPDATE SET date_of_birth = EXCLUDED.date_of_birth
	`

	if _, err := s.pool.Exec(ctx, query, username, dob); err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

// Fetch looks up the date of birth for username.
func (s *Store) Fetch(ctx context.Context, username string) (time.Time, error) {
	query := `
		SELECT date_of_birth
		FROM users
		WHERE username = $1
	`

	var dob time.Time
	err := s.pool.QueryRow(ctx, query, username).Scan(&dob)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, storage.ErrNotFound
		}
		return time.Time{}, fmt.Errorf("failed to fetch user: %w", err)
	}

	return time.Date(dob.Year(), dob.Month(), dob.Day(), 0, 0, 0, 0, time.UTC), nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

var _ storage.Store = (*Store)(nil)
