package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	gcore "guardlink.com.au/guardlink/core"
	"guardlink.com.au/guardlink/patrol/model"
	"guardlink.com.au/guardlink/utils"
)

func TestValidateScanPreconditions(t *testing.T) {
	bookedOn := utils.Ptr(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	bookedOff := utils.Ptr(time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC))
	checkpoint := &gcore.SiteCheckpoint{CheckpointID: 3, SiteID: 12, ScanToken: "tok-12-3"}

	tests := []struct {
		name       string
		assignment model.Assignment
		checkpoint *gcore.SiteCheckpoint
		expected   error
	}{
		{
			name:       "Scan before book-on rejected",
			assignment: model.Assignment{SiteID: 12},
			checkpoint: checkpoint,
			expected:   ErrNotBookedOn,
		},
		{
			name:       "Scan after book-off rejected",
			assignment: model.Assignment{SiteID: 12, BookOnAt: bookedOn, BookOffAt: bookedOff},
			checkpoint: checkpoint,
			expected:   ErrAlreadyBookedOff,
		},
		{
			name:       "Unknown token",
			assignment: model.Assignment{SiteID: 12, BookOnAt: bookedOn},
			checkpoint: nil,
			expected:   ErrUnknownToken,
		},
		{
			name:       "Token from another site rejected",
			assignment: model.Assignment{SiteID: 99, BookOnAt: bookedOn},
			checkpoint: checkpoint,
			expected:   ErrCheckpointWrongSite,
		},
		{
			name:       "Booked on and matching site",
			assignment: model.Assignment{SiteID: 12, BookOnAt: bookedOn},
			checkpoint: checkpoint,
			expected:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScanPreconditions(&tt.assignment, tt.checkpoint)
			if tt.expected == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.expected)
			}
		})
	}
}
