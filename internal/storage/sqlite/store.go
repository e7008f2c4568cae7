// Package sqlite provides the embedded single-file Store used for local
// development.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/birthdayapi/birthdayapi/internal/model"
	"github.com/birthdayapi/birthdayapi/internal/storage"
	"github.com/birthdayapi/birthdayapi/internal/storage/sqlite/migrations"
	"github.com/birthdayapi/birthdayapi/internal/storage/sqlitemigrate"
)

// Store persists birth records in a SQLite file.
type Store struct {
	sqlDB *sql.DB
}

// Open opens (creating if needed) the SQLite file at path and applies migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage path is required")
	}

	dsn := "file:" + filepath.Clean(path) +
		"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if err := sqlitemigrate.Apply(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{sqlDB: sqlDB}, nil
}

// Upsert replaces the row for username.
func (s *Store) Upsert(ctx context.Context, username string, dob time.Time) error {
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT OR REPLACE INTO users (username, date_of_birth) VALUES (?, ?)`,
		username, model.FormatDate(dob),
	)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

// Fetch looks up the date of birth for username.
func (s *Store) Fetch(ctx context.Context, username string) (time.Time, error) {
	var raw string
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT date_of_birth FROM users WHERE username = ?`,
		username,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, storage.ErrNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("fetch user: %w", err)
	}

	dob, err := model.ParseDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("decode stored date: %w", err)
	}
	return dob, nil
}

// Ping checks the database handle.
func (s *Store) Ping(ctx context.Context) error {
	return s.sqlDB.PingContext(ctx)
}

// Close releases the SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

var _ storage.Store = (*Store)(nil)
