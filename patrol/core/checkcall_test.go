package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"guardlink.com.au/guardlink/patrol/model"
	"guardlink.com.au/guardlink/utils"
)

func callAt(timeStr, status string) model.CheckCall {
	return model.CheckCall{
		ID:           1,
		AssignmentID: 7,
		Date:         shiftDate(2025, 3, 10),
		Time:         timeStr,
		Status:       status,
	}
}

func TestCallWindow(t *testing.T) {
	call := callAt("14:00", model.CallStatusUpcoming)

	start, end, err := CallWindow(&call, time.UTC)
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 13, 55, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 3, 10, 14, 5, 0, 0, time.UTC), end)

	t.Run("Malformed scheduled time", func(t *testing.T) {
		bad := callAt("2pm", model.CallStatusUpcoming)
		_, _, err := CallWindow(&bad, time.UTC)
		assert.Error(t, err)
	})
}

func TestDeriveCallView(t *testing.T) {
	scheduled := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		call       model.CheckCall
		now        time.Time
		uiStatus   string
		canPress   bool
	}{
		{
			name:     "Before the window",
			call:     callAt("14:00", model.CallStatusUpcoming),
			now:      scheduled.Add(-10 * time.Minute),
			uiStatus: CallUIStatusUpcoming,
		},
		{
			name:     "At window start",
			call:     callAt("14:00", model.CallStatusUpcoming),
			now:      scheduled.Add(-5 * time.Minute),
			uiStatus: CallUIStatusDue,
			canPress: true,
		},
		{
			name:     "At window end",
			call:     callAt("14:00", model.CallStatusUpcoming),
			now:      scheduled.Add(5 * time.Minute),
			uiStatus: CallUIStatusDue,
			canPress: true,
		},
		{
			name:     "Window elapsed reads as missed before the sweep persists it",
			call:     callAt("14:00", model.CallStatusUpcoming),
			now:      scheduled.Add(6 * time.Minute),
			uiStatus: CallUIStatusMissed,
		},
		{
			name:     "Completed is terminal whatever the clock says",
			call:     callAt("14:00", model.CallStatusCompleted),
			now:      scheduled.Add(3 * time.Hour),
			uiStatus: CallUIStatusCompleted,
		},
		{
			name: "Actual time counts as completed even if status lags",
			call: func() model.CheckCall {
				c := callAt("14:00", model.CallStatusUpcoming)
				c.ActualTime = utils.Ptr(scheduled.Add(2 * time.Minute))
				return c
			}(),
			now:      scheduled.Add(time.Hour),
			uiStatus: CallUIStatusCompleted,
		},
		{
			name:     "Missed is terminal inside a later window too",
			call:     callAt("14:00", model.CallStatusMissed),
			now:      scheduled,
			uiStatus: CallUIStatusMissed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := DeriveCallView(tt.call, tt.now, time.UTC)
			assert.NoError(t, err)
			assert.Equal(t, tt.uiStatus, view.UIStatus)
			assert.Equal(t, tt.canPress, view.CanPress)
		})
	}
}
