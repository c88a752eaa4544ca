package model

import (
	"fmt"
	"strings"
	"time"
)

// DayHours is one weekday's window in "HH:MM" local time. A close before
// open means the window wraps past midnight.
type DayHours struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"isClosed"`
}

// OpeningHours is keyed by lowercase English weekday name, as the clients
// have always stored it.
type OpeningHours map[string]DayHours

const minutesPerDay = 24 * 60

func weekdayKey(day time.Weekday) string {
	return strings.ToLower(day.String())
}

func parseClock(value string) (int, error) {
	var hours, minutes int

	if _, err := fmt.Sscanf(value, "%d:%d", &hours, &minutes); err != nil {
		return 0, fmt.Errorf("bad clock value %q: %w", value, err)
	}

	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("bad clock value %q", value)
	}

	return hours*60 + minutes, nil
}

// IsOpenAt reports whether the pub is open at the given local time. The
// window is half-open [open, close); an overnight window also covers the
// early hours of the following day.
func (h OpeningHours) IsOpenAt(t time.Time) bool {
	if len(h) == 0 {
		return false
	}

	now := t.Hour()*60 + t.Minute()

	if h.coversMinute(t.Weekday(), now, false) {
		return true
	}

	// Early morning may still belong to yesterday's overnight window.
	yesterday := time.Weekday((int(t.Weekday()) + 6) % 7)

	return h.coversMinute(yesterday, now, true)
}

func (h OpeningHours) coversMinute(day time.Weekday, minute int, spillOnly bool) bool {
	entry, found := h[weekdayKey(day)]
	if !found || entry.Closed {
		return false
	}

	open, err := parseClock(entry.Open)
	if err != nil {
		return false
	}

	closeAt, err := parseClock(entry.Close)
	if err != nil {
		return false
	}

	overnight := closeAt < open

	if spillOnly {
		return overnight && minute < closeAt
	}

	if overnight {
		return minute >= open && minute < minutesPerDay
	}

	return minute >= open && minute < closeAt
}
