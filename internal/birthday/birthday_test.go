package birthday

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDaysUntil(t *testing.T) {
	tests := []struct {
		name  string
		dob   time.Time
		today time.Time
		want  int
	}{
		{"same day", date(1990, 5, 17), date(2024, 5, 17), 0},
		{"later this year", date(1990, 5, 17), date(2024, 5, 10), 7},
		{"already passed rolls over", date(1990, 5, 17), date(2023, 5, 18), 365},
		{"rollover without leap day", date(1990, 5, 17), date(2024, 5, 18), 364},
		{"day after birth", date(1990, 1, 1), date(1990, 1, 2), 364},
		{"day after birth before leap year", date(1991, 1, 1), date(1991, 1, 2), 364},
		{"span containing Feb 29", date(1990, 1, 1), date(2024, 1, 2), 365},
		{"new year eve", date(1990, 1, 1), date(2023, 12, 31), 1},
		{"december birthday in january", date(1985, 12, 31), date(2024, 1, 1), 365},
		{"leap birthday in leap year", date(2000, 2, 29), date(2024, 2, 1), 28},
		{"leap birthday on the day", date(2000, 2, 29), date(2024, 2, 29), 0},
		{"leap birthday observed on Mar 1", date(2000, 2, 29), date(2023, 2, 28), 1},
		{"leap birthday Mar 1 is today", date(2000, 2, 29), date(2023, 3, 1), 0},
		{"leap birthday after Mar 1 waits for leap year", date(2000, 2, 29), date(2023, 3, 2), 364},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := DaysUntil(test.dob, test.today)
			if got != test.want {
				t.Fatalf("expected %d days, got %d", test.want, got)
			}
		})
	}
}

func TestNext_RollsToFollowingYear(t *testing.T) {
	got := Next(date(1990, 3, 1), date(2024, 6, 1))
	want := date(2025, 3, 1)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNext_SameDayStaysThisYear(t *testing.T) {
	got := Next(date(1990, 6, 1), date(2024, 6, 1))
	want := date(2024, 6, 1)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestMessage(t *testing.T) {
	if got := Message("alice", 0); got != "Hello, alice! Happy birthday!" {
		t.Errorf("unexpected birthday message: %s", got)
	}
	if got := Message("bob", 12); got != "Hello, bob! Your birthday is in 12 day(s)" {
		t.Errorf("unexpected countdown message: %s", got)
	}
}
