package model

import (
	"time"

	"gorm.io/datatypes"
)

// Lifecycle event types. Reminder confirmations are events, not
// columns: the phase engine derives its confirmation flags from the
// ledger so the whole lifecycle is replayable from history.
const (
	EventShiftCreatedAccept  = "shift_created_accept"
	EventShiftCreatedDecline = "shift_created_decline"
	EventReminder24hAccept   = "reminder_24h_accept"
	EventReminder24hDecline  = "reminder_24h_decline"
	EventReminder2hAccept    = "reminder_2h_accept"
	EventReminder2hDecline   = "reminder_2h_decline"
	EventEtaSet              = "eta_set"
	EventEtaCleared          = "eta_cleared"
	EventBookOn              = "book_on"
	EventBookOff             = "book_off"
)

// AssignmentEvent is one row of the append-only lifecycle ledger.
type AssignmentEvent struct {
	ID           string         `gorm:"primaryKey;column:id;size:36" json:"id"`
	AssignmentID uint           `gorm:"column:assignment_id;index;not null" json:"assignmentId"`
	EventType    string         `gorm:"column:event_type;size:40;not null" json:"eventType"`
	Notes        string         `gorm:"column:notes;type:text" json:"notes"`
	Metadata     datatypes.JSON `gorm:"column:metadata" json:"metadata"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"createdAt"`
}

func (AssignmentEvent) TableName() string {
	return "patrol_assignment_events"
}
