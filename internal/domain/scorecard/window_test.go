package scorecard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveWindowDefaults(t *testing.T) {
	now := time.Date(2026, 4, 2, 12, 0, 0, 0, time.UTC)
	w := ResolveWindow("", "", now, DefaultWindowDays)

	assert.Equal(t, now, w.To)
	assert.Equal(t, now.AddDate(0, 0, -90), w.From)
	assert.Equal(t, 90, w.Days)
	assert.Equal(t, 13, w.Weeks)
}

func TestResolveWindowExplicitDates(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	w := ResolveWindow("2026-01-01", "2026-04-02", now, DefaultWindowDays)

	assert.Equal(t, 91, w.Days)
	assert.Equal(t, 13, w.Weeks)
}

func TestResolveWindowMalformedFallsBack(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	w := ResolveWindow("not-a-date", "also-bad", now, DefaultWindowDays)

	assert.Equal(t, now, w.To)
	assert.Equal(t, 90, w.Days)
}

func TestResolveWindowInvertedRange(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	w := ResolveWindow("2026-05-01", "2026-04-01", now, DefaultWindowDays)

	assert.True(t, w.From.Before(w.To))
	assert.Equal(t, 90, w.Days)
}

func TestNewWindowMinimums(t *testing.T) {
	at := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	w := NewWindow(at, at.Add(time.Hour))

	assert.Equal(t, 1, w.Days)
	assert.Equal(t, 1, w.Weeks)
}

func TestParseDateAcceptsRFC3339(t *testing.T) {
	parsed, err := ParseDate("2026-03-04T05:06:07Z")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC), parsed)
}
