package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"guardlink.com.au/guardlink/patrol/model"
)

func TestFlagsFromEvents(t *testing.T) {
	event := func(eventType string) model.AssignmentEvent {
		return model.AssignmentEvent{AssignmentID: 1, EventType: eventType}
	}

	tests := []struct {
		name     string
		events   []model.AssignmentEvent
		expected ConfirmationFlags
	}{
		{
			name:     "Empty ledger",
			events:   nil,
			expected: ConfirmationFlags{},
		},
		{
			name:     "Shift created accept",
			events:   []model.AssignmentEvent{event(model.EventShiftCreatedAccept)},
			expected: ConfirmationFlags{ShiftCreated: true},
		},
		{
			name:     "A decline settles the reminder too",
			events:   []model.AssignmentEvent{event(model.EventShiftCreatedAccept), event(model.EventReminder24hDecline)},
			expected: ConfirmationFlags{ShiftCreated: true, Reminder24h: true},
		},
		{
			name: "Full history",
			events: []model.AssignmentEvent{
				event(model.EventShiftCreatedAccept),
				event(model.EventReminder24hAccept),
				event(model.EventReminder2hAccept),
				event(model.EventEtaSet),
				event(model.EventBookOn),
			},
			expected: ConfirmationFlags{ShiftCreated: true, Reminder24h: true, Reminder2h: true},
		},
		{
			name:     "Booking events do not imply confirmations",
			events:   []model.AssignmentEvent{event(model.EventBookOn), event(model.EventBookOff)},
			expected: ConfirmationFlags{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FlagsFromEvents(tt.events))
		})
	}
}
