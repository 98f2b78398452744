package utils

import (
	"testing"
	"time"
)

func TestDateAt(t *testing.T) {
	loc, err := time.LoadLocation("America/Panama")
	if err != nil {
		t.Fatalf("load zone: %v", err)
	}

	got, err := DateAt(loc, "2026-01-05", "09:00")
	if err != nil {
		t.Fatalf("DateAt: %v", err)
	}

	// Panama is UTC-5 year round.
	want := time.Date(2026, 1, 5, 14, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DateAt = %v, want %v", got, want)
	}

	if _, err := DateAt(loc, "2026-13-40", "09:00"); err == nil {
		t.Error("expected error for invalid date")
	}
}

func TestWeekdayAt(t *testing.T) {
	// 2026-01-04 is a Sunday, 2026-01-05 a Monday.
	tests := []struct {
		date string
		want int
	}{
		{"2026-01-04", 0},
		{"2026-01-05", 1},
		{"2026-01-10", 6},
	}

	for _, tt := range tests {
		got, err := WeekdayAt(time.UTC, tt.date)
		if err != nil {
			t.Fatalf("WeekdayAt(%s): %v", tt.date, err)
		}
		if got != tt.want {
			t.Errorf("WeekdayAt(%s) = %d, want %d", tt.date, got, tt.want)
		}
	}
}

func TestWeekdayAtZoneSensitive(t *testing.T) {
	// Late evening in Panama is already the next day in UTC; the weekday
	// must follow the workspace zone, not the process zone.
	loc, err := time.LoadLocation("America/Panama")
	if err != nil {
		t.Fatalf("load zone: %v", err)
	}

	got, err := WeekdayAt(loc, "2026-01-05")
	if err != nil {
		t.Fatalf("WeekdayAt: %v", err)
	}
	if got != 1 {
		t.Errorf("WeekdayAt = %d, want 1", got)
	}
}

func TestDayBounds(t *testing.T) {
	start, end, err := DayBounds(time.UTC, "2026-01-05")
	if err != nil {
		t.Fatalf("DayBounds: %v", err)
	}

	if !start.Equal(time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v", start)
	}
	if !end.Equal(time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("end = %v", end)
	}
	if end.Sub(start) != 24*time.Hour {
		t.Errorf("span = %v", end.Sub(start))
	}
}
