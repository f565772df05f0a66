package scorecard

import (
	"math"
	"strings"
	"time"
)

// ParseDate accepts RFC3339 or YYYY-MM-DD.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", value)
}

// ResolveWindow never fails: unparsable or inverted bounds fall back to the
// trailing defaultDays window ending at to (or now).
func ResolveWindow(fromRaw, toRaw string, now time.Time, defaultDays int) WindowSpec {
	if defaultDays < 1 {
		defaultDays = DefaultWindowDays
	}

	to := now
	if parsed, err := ParseDate(strings.TrimSpace(toRaw)); err == nil && !parsed.IsZero() {
		to = parsed
	}

	from := to.AddDate(0, 0, -defaultDays)
	if parsed, err := ParseDate(strings.TrimSpace(fromRaw)); err == nil && !parsed.IsZero() && parsed.Before(to) {
		from = parsed
	}

	return NewWindow(from, to)
}

func NewWindow(from, to time.Time) WindowSpec {
	millis := float64(to.Sub(from).Milliseconds())
	days := max(1, int(roundHalfUp(millis/dayMillis)))
	weeks := max(1, int(math.Ceil(float64(days)/7)))
	return WindowSpec{From: from, To: to, Days: days, Weeks: weeks}
}

func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}
