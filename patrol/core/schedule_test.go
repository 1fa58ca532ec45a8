package core

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testTZ = time.FixedZone("UTC+10", 10*60*60)

func shiftDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveShiftWindow(t *testing.T) {
	created := time.Date(2025, 3, 1, 4, 0, 0, 0, time.UTC)

	t.Run("Day shift", func(t *testing.T) {
		win, err := ResolveShiftWindow(shiftDate(2025, 3, 10), "09:00", "17:00", created, testTZ)
		assert.NoError(t, err)

		// 09:00 UTC+10 == 23:00 UTC the previous day
		assert.Equal(t, time.Date(2025, 3, 9, 23, 0, 0, 0, time.UTC), win.StartUTC)
		assert.Equal(t, time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC), win.EndUTC)
		assert.Equal(t, win.StartUTC.Add(-24*time.Hour), win.StartMinus24h)
		assert.Equal(t, win.StartUTC.Add(-2*time.Hour), win.StartMinus2h)
		assert.Equal(t, created, win.CreatedAtUTC)
	})

	t.Run("Overnight shift rolls the end to the next day", func(t *testing.T) {
		win, err := ResolveShiftWindow(shiftDate(2025, 3, 10), "22:00", "06:00", created, testTZ)
		assert.NoError(t, err)
		assert.True(t, win.EndUTC.After(win.StartUTC))
		assert.Equal(t, 8*time.Hour, win.EndUTC.Sub(win.StartUTC))
	})

	t.Run("Zero-length shift treated as overnight", func(t *testing.T) {
		win, err := ResolveShiftWindow(shiftDate(2025, 3, 10), "08:00", "08:00", created, testTZ)
		assert.NoError(t, err)
		assert.Equal(t, 24*time.Hour, win.EndUTC.Sub(win.StartUTC))
	})

	t.Run("Seconds precision accepted", func(t *testing.T) {
		_, err := ResolveShiftWindow(shiftDate(2025, 3, 10), "09:00:30", "17:00", created, testTZ)
		assert.NoError(t, err)
	})

	t.Run("Malformed start time", func(t *testing.T) {
		_, err := ResolveShiftWindow(shiftDate(2025, 3, 10), "9am", "17:00", created, testTZ)
		assert.Error(t, err)

		var malformed *MalformedScheduleError
		assert.True(t, errors.As(err, &malformed))
		assert.Equal(t, "start_time", malformed.Field)
	})

	t.Run("Malformed end time", func(t *testing.T) {
		_, err := ResolveShiftWindow(shiftDate(2025, 3, 10), "09:00", "25:61", created, testTZ)
		var malformed *MalformedScheduleError
		assert.True(t, errors.As(err, &malformed))
		assert.Equal(t, "end_time", malformed.Field)
	})
}

func TestMinutesToStart(t *testing.T) {
	win, err := ResolveShiftWindow(shiftDate(2025, 3, 10), "09:00", "17:00", time.Now(), testTZ)
	assert.NoError(t, err)

	tests := []struct {
		name     string
		now      time.Time
		expected int
	}{
		{"One hour before", win.StartUTC.Add(-time.Hour), 60},
		{"At start", win.StartUTC, 0},
		{"After start", win.StartUTC.Add(30 * time.Minute), -30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, win.MinutesToStart(tt.now))
		})
	}
}
