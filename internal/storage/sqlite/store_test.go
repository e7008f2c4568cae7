package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/birthdayapi/birthdayapi/internal/storage/storagetest"
)

func TestStore_Contract(t *testing.T) {
	storagetest.Run(t, openTempStore(t), "")
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "users.db")
	dob := time.Date(1996, 4, 20, 0, 0, 0, 0, time.UTC)

	first, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := first.Upsert(ctx, "piotr", dob); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = second.Close() })

	got, err := second.Fetch(ctx, "piotr")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !got.Equal(dob) {
		t.Fatalf("expected %v, got %v", dob, got)
	}
}

func TestStore_StoresISODateText(t *testing.T) {
	ctx := context.Background()
	store := openTempStore(t)

	if err := store.Upsert(ctx, "alice", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	var raw string
	if err := store.sqlDB.QueryRow(`SELECT date_of_birth FROM users WHERE username = ?`, "alice").Scan(&raw); err != nil {
		t.Fatalf("query raw: %v", err)
	}
	if raw != "1990-01-01" {
		t.Fatalf("expected ISO date text, got %q", raw)
	}
}

func TestOpen_RequiresPath(t *testing.T) {
	if _, err := Open(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func openTempStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "users.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}
