package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"guardlink.com.au/guardlink/utils"
)

// windowFor builds a shift window for a 09:00-17:00 shift on
// 2025-03-10 (local UTC+10) created at the given instant.
func windowFor(t *testing.T, createdAt time.Time) ShiftWindow {
	t.Helper()
	win, err := ResolveShiftWindow(shiftDate(2025, 3, 10), "09:00", "17:00", createdAt, testTZ)
	assert.NoError(t, err)
	return win
}

func TestComputePhase(t *testing.T) {
	earlyCreated := time.Date(2025, 3, 1, 4, 0, 0, 0, time.UTC)
	win := windowFor(t, earlyCreated)

	confirmedAll := ConfirmationFlags{ShiftCreated: true, Reminder24h: true, Reminder2h: true}
	bookOn := utils.Ptr(win.StartUTC.Add(2 * time.Minute))
	bookOff := utils.Ptr(win.EndUTC)

	tests := []struct {
		name     string
		now      time.Time
		flags    ConfirmationFlags
		bookOn   *time.Time
		bookOff  *time.Time
		expected Phase
	}{
		{
			name:     "Unacknowledged assignment always gates on shift_created",
			now:      win.StartMinus24h,
			flags:    ConfirmationFlags{},
			expected: PhaseConfirmShiftCreated,
		},
		{
			name:     "At start minus 24h exactly",
			now:      win.StartMinus24h,
			flags:    ConfirmationFlags{ShiftCreated: true},
			expected: PhaseConfirm24h,
		},
		{
			name:     "Just before the 24h window opens",
			now:      win.StartMinus24h.Add(-time.Minute),
			flags:    ConfirmationFlags{ShiftCreated: true},
			expected: PhaseEta,
		},
		{
			name:     "24h window closes at start minus 2h",
			now:      win.StartMinus2h,
			flags:    ConfirmationFlags{ShiftCreated: true},
			expected: PhaseConfirm2h,
		},
		{
			name:     "2h reminder inside the window",
			now:      win.StartUTC.Add(-90 * time.Minute),
			flags:    ConfirmationFlags{ShiftCreated: true, Reminder24h: true},
			expected: PhaseConfirm2h,
		},
		{
			name:     "2h reminder not owed at the start itself",
			now:      win.StartUTC,
			flags:    ConfirmationFlags{ShiftCreated: true, Reminder24h: true},
			expected: PhaseBookOn,
		},
		{
			name:     "Eta while start is far away",
			now:      win.StartUTC.Add(-time.Hour),
			flags:    confirmedAll,
			expected: PhaseEta,
		},
		{
			name:     "Book-on opens 15 minutes out",
			now:      win.StartUTC.Add(-15 * time.Minute),
			flags:    confirmedAll,
			expected: PhaseBookOn,
		},
		{
			name:     "Book-on still open just inside the grace period",
			now:      win.StartUTC.Add(119 * time.Minute),
			flags:    confirmedAll,
			expected: PhaseBookOn,
		},
		{
			name:     "Waiting once the grace period has elapsed",
			now:      win.StartUTC.Add(120 * time.Minute),
			flags:    confirmedAll,
			expected: PhaseWaiting,
		},
		{
			name:     "In shift once booked on",
			now:      win.StartUTC.Add(time.Hour),
			flags:    confirmedAll,
			bookOn:   bookOn,
			expected: PhaseInShift,
		},
		{
			name:     "Completed once booked on and off",
			now:      win.EndUTC.Add(time.Hour),
			flags:    confirmedAll,
			bookOn:   bookOn,
			bookOff:  bookOff,
			expected: PhaseCompleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputePhase(tt.now, win, tt.flags, tt.bookOn, tt.bookOff)
			assert.Equal(t, tt.expected, got)

			// Same inputs, same phase: the engine holds no state.
			again := ComputePhase(tt.now, win, tt.flags, tt.bookOn, tt.bookOff)
			assert.Equal(t, got, again)
		})
	}
}

func TestComputePhaseLateCreation(t *testing.T) {
	t.Run("Created one hour before start skips both reminders", func(t *testing.T) {
		win := windowFor(t, time.Date(2025, 3, 9, 22, 0, 0, 0, time.UTC))

		// Straight after the shift_created gate clears, the guard is
		// asked for an eta, then book-on; never a reminder.
		assert.Equal(t, PhaseEta,
			ComputePhase(win.StartUTC.Add(-time.Hour), win, ConfirmationFlags{ShiftCreated: true}, nil, nil))
		assert.Equal(t, PhaseBookOn,
			ComputePhase(win.StartUTC.Add(-10*time.Minute), win, ConfirmationFlags{ShiftCreated: true}, nil, nil))
	})

	t.Run("Created inside 24h never reaches confirm_24h", func(t *testing.T) {
		// Created 3 hours before the shift: the 24h gate is
		// unsatisfiable no matter what time it is now.
		win := windowFor(t, win24hUnreachableCreation(t))

		for now := win.StartMinus24h.Add(-2 * time.Hour); now.Before(win.EndUTC); now = now.Add(13 * time.Minute) {
			phase := ComputePhase(now, win, ConfirmationFlags{ShiftCreated: true}, nil, nil)
			assert.NotEqual(t, PhaseConfirm24h, phase, "at %s", now)
		}
	})
}

func win24hUnreachableCreation(t *testing.T) time.Time {
	t.Helper()
	win, err := ResolveShiftWindow(shiftDate(2025, 3, 10), "09:00", "17:00", time.Time{}, testTZ)
	assert.NoError(t, err)
	return win.StartUTC.Add(-3 * time.Hour)
}
