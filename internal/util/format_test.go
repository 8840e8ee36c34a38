package util

import (
	"testing"
	"time"
)

func TestFormatTimeRange(t *testing.T) {
	start := time.Date(2026, 8, 24, 18, 0, 0, 0, time.UTC)

	if got := FormatTimeRange(start, 120); got != "18:00–20:00" {
		t.Errorf("got %q", got)
	}
	if got := FormatTimeRange(start, 0); got != "18:00–20:00" {
		t.Errorf("missing duration should default to two hours, got %q", got)
	}
	if got := FormatTimeRange(start, 90); got != "18:00–19:30" {
		t.Errorf("got %q", got)
	}
	if got := FormatTimeRange(time.Time{}, 120); got != "Unscheduled" {
		t.Errorf("got %q", got)
	}
	// window crossing midnight
	late := time.Date(2026, 8, 24, 23, 30, 0, 0, time.UTC)
	if got := FormatTimeRange(late, 120); got != "23:30–01:30" {
		t.Errorf("got %q", got)
	}
}

func TestFormatDateHuman(t *testing.T) {
	now := time.Now()
	cases := []struct {
		in   time.Time
		want string
	}{
		{now, "Today"},
		{now.AddDate(0, 0, 1), "Tomorrow"},
		{now.AddDate(0, 0, -1), "Yesterday"},
		{time.Time{}, "Unscheduled"},
	}
	for _, tc := range cases {
		if got := FormatDateHuman(tc.in); got != tc.want {
			t.Errorf("FormatDateHuman(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatSeats(t *testing.T) {
	if got := FormatSeats(2, 8); got != "2–8" {
		t.Errorf("got %q", got)
	}
	if got := FormatSeats(4, 4); got != "4" {
		t.Errorf("equal min and max should collapse, got %q", got)
	}
	if got := FormatSeats(4, 0); got != "4" {
		t.Errorf("missing max should collapse, got %q", got)
	}
}

func TestFormatZoom(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{1.0, "100%"},
		{0.25, "25%"},
		{1.1, "110%"},
		{2.345, "235%"},
	}
	for _, tc := range cases {
		if got := FormatZoom(tc.in); got != tc.want {
			t.Errorf("FormatZoom(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTruncateString(t *testing.T) {
	if got := TruncateString("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := TruncateString("a longer guest name", 9); got != "a longer…" {
		t.Errorf("got %q", got)
	}
}
