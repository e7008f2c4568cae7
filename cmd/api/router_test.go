package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/birthdayapi/birthdayapi/internal/config"
	"github.com/birthdayapi/birthdayapi/internal/metrics"
	"github.com/birthdayapi/birthdayapi/internal/service"
	"github.com/birthdayapi/birthdayapi/internal/storage/memory"
	"github.com/birthdayapi/birthdayapi/internal/testutil"
)

type testApp struct {
	handler http.Handler
	store   *memory.Store
}

func newTestApp(t *testing.T, now time.Time) *testApp {
	t.Helper()

	cfg := &config.Config{
		Environment:        "development",
		MaxRequestBodySize: 1 << 10,
	}
	store := memory.New()
	recorder := metrics.NewVictoria()
	svc := service.NewBirthdayService(store,
		service.WithClock(testutil.FixedClock(now)),
		service.WithMetrics(recorder),
	)

	return &testApp{
		handler: setupRouter(routerDeps{
			cfg:     cfg,
			logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
			service: svc,
			store:   store,
			exposer: recorder,
		}),
		store: store,
	}
}

func (a *testApp) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func jsonField(t *testing.T, rec *httptest.ResponseRecorder, field string) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode %q: %v", rec.Body.String(), err)
	}
	return body[field]
}

func TestRouter_WriteThenRead(t *testing.T) {
	app := newTestApp(t, time.Date(1990, 1, 2, 12, 0, 0, 0, time.UTC))

	rec := app.do(t, http.MethodPut, "/hello/alice", `{"dateOfBirth":"1990-01-01"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", rec.Body.String())
	}

	rec = app.do(t, http.MethodGet, "/hello/alice", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := jsonField(t, rec, "message"); got != "Hello, alice! Your birthday is in 364 day(s)" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestRouter_LeapSpan(t *testing.T) {
	app := newTestApp(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))

	app.do(t, http.MethodPut, "/hello/alice", `{"dateOfBirth":"1990-01-01"}`)

	rec := app.do(t, http.MethodGet, "/hello/alice", "")
	if got := jsonField(t, rec, "message"); got != "Hello, alice! Your birthday is in 365 day(s)" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestRouter_BirthdayToday(t *testing.T) {
	app := newTestApp(t, time.Date(2024, 7, 4, 23, 59, 0, 0, time.UTC))

	app.do(t, http.MethodPut, "/hello/Sam", `{"dateOfBirth":"1980-07-04"}`)

	rec := app.do(t, http.MethodGet, "/hello/Sam", "")
	if got := jsonField(t, rec, "message"); got != "Hello, Sam! Happy birthday!" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestRouter_SecondWriteOverwrites(t *testing.T) {
	app := newTestApp(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	app.do(t, http.MethodPut, "/hello/bob", `{"dateOfBirth":"1990-01-01"}`)
	app.do(t, http.MethodPut, "/hello/bob", `{"dateOfBirth":"1990-03-11"}`)

	rec := app.do(t, http.MethodGet, "/hello/bob", "")
	if got := jsonField(t, rec, "message"); got != "Hello, bob! Your birthday is in 10 day(s)" {
		t.Errorf("unexpected message %q", got)
	}
	if app.store.Len() != 1 {
		t.Errorf("expected one record, got %d", app.store.Len())
	}
}

func TestRouter_Rejections(t *testing.T) {
	app := newTestApp(t, time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		name      string
		method    string
		path      string
		body      string
		wantCode  int
		wantError string
	}{
		{"put digits in username", http.MethodPut, "/hello/john123", `{"dateOfBirth":"1990-01-01"}`, 400, "username must contain only letters"},
		{"get digits in username", http.MethodGet, "/hello/john123", "", 400, "username must contain only letters"},
		{"malformed json", http.MethodPut, "/hello/alice", `{"dateOfBirth":`, 400, "invalid JSON"},
		{"missing field", http.MethodPut, "/hello/alice", `{"dob":"1990-01-01"}`, 400, "missing dateOfBirth field"},
		{"bad date", http.MethodPut, "/hello/alice", `{"dateOfBirth":"1990/01/01"}`, 400, "invalid date format"},
		{"today", http.MethodPut, "/hello/alice", `{"dateOfBirth":"2024-05-17"}`, 400, "date of birth must be before today"},
		{"future", http.MethodPut, "/hello/alice", `{"dateOfBirth":"2099-01-01"}`, 400, "date of birth must be before today"},
		{"unknown user", http.MethodGet, "/hello/nobody", "", 404, "user not found"},
		{"unknown route", http.MethodGet, "/goodbye/alice", "", 404, "Resource not found"},
		{"unsupported method", http.MethodPost, "/hello/alice", `{"dateOfBirth":"1990-01-01"}`, 404, "Resource not found"},
		{"body too large", http.MethodPut, "/hello/alice", `{"dateOfBirth":"1990-01-01","pad":"` + strings.Repeat("x", 2048) + `"}`, 413, "request body too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(t, tt.method, tt.path, tt.body)
			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d: %s", tt.wantCode, rec.Code, rec.Body.String())
			}
			if got := jsonField(t, rec, "error"); got != tt.wantError {
				t.Errorf("expected error %q, got %q", tt.wantError, got)
			}
		})
	}

	if app.store.Len() != 0 {
		t.Fatalf("rejected writes must not persist, store has %d records", app.store.Len())
	}
}

func TestRouter_HealthAndObservability(t *testing.T) {
	app := newTestApp(t, time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC))

	rec := app.do(t, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := jsonField(t, rec, "status"); got != "UP" {
		t.Errorf("expected status UP, got %q", got)
	}
	if got := jsonField(t, rec, "environment"); got != "development" {
		t.Errorf("expected environment development, got %q", got)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("expected security headers")
	}

	rec = app.do(t, http.MethodGet, "/readyz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected readyz 200, got %d", rec.Code)
	}

	app.do(t, http.MethodPut, "/hello/alice", `{"dateOfBirth":"1990-01-01"}`)
	app.do(t, http.MethodPut, "/hello/alice", `not json`)

	rec = app.do(t, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected metrics 200, got %d", rec.Code)
	}
	for _, want := range []string{
		"birthday_saves_total 1",
		`birthday_validation_failures_total{rule="invalid_json"} 1`,
	} {
		if !strings.Contains(rec.Body.String(), want) {
			t.Errorf("expected %q in metrics output:\n%s", want, rec.Body.String())
		}
	}
}
