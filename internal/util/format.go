package util

import (
	"fmt"
	"math"
	"time"
)

// FormatTime formats a booking start for display.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "Unscheduled"
	}
	return t.Format("15:04")
}

// FormatTimeRange formats a booking window like "18:00–20:00".
func FormatTimeRange(start time.Time, durationMin int) string {
	if start.IsZero() {
		return "Unscheduled"
	}
	if durationMin <= 0 {
		durationMin = 120
	}
	end := start.Add(time.Duration(durationMin) * time.Minute)
	return start.Format("15:04") + "–" + end.Format("15:04")
}

// FormatDateHuman formats a date with humanized relative display:
// "Today", "Tomorrow", "Yesterday", otherwise "Jan 02".
func FormatDateHuman(t time.Time) string {
	if t.IsZero() {
		return "Unscheduled"
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())

	switch int(day.Sub(today).Hours() / 24) {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	case -1:
		return "Yesterday"
	}
	if day.Year() == today.Year() {
		return t.Format("Jan 02")
	}
	return t.Format("Jan 02 '06")
}

// FormatSeats formats a seating range like "2–8".
func FormatSeats(min, max int) string {
	if min == max || max == 0 {
		return fmt.Sprintf("%d", min)
	}
	return fmt.Sprintf("%d–%d", min, max)
}

// FormatZoom formats a zoom factor as a percentage.
func FormatZoom(zoom float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(zoom*100)))
}

// FormatParty formats a party size like "x4".
func FormatParty(size int) string {
	return fmt.Sprintf("x%d", size)
}
