// Package testutil holds helpers shared by package tests.
package testutil

import (
	"os"
	"strconv"
	"sync/atomic"
	"testing"
	"time"
)

var usernameSeq atomic.Int64

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

// UniqueUsername returns a letters-only username that is unique per call,
// for tests that share a live backend.
func UniqueUsername(prefix string) string {
	digits := strconv.FormatInt(time.Now().UnixNano(), 10) + strconv.FormatInt(usernameSeq.Add(1), 10)
	letters := make([]byte, len(digits))
	for i := 0; i < len(digits); i++ {
		letters[i] = 'a' + (digits[i] - '0')
	}
	return prefix + string(letters)
}

// Date returns a calendar date at midnight UTC.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FixedClock returns a clock function that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
