package core

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"guardlink.com.au/guardlink/patrol/model"
)

// Actor is the identity attached to every ledger row, taken from the
// JWT claims of the request that caused the event.
type Actor struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// EventMeta is the structured payload stored next to each event.
type EventMeta struct {
	Actor     Actor    `json:"actor"`
	Channel   string   `json:"channel,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// AppendEvent writes one row to the lifecycle ledger.
func AppendEvent(db *gorm.DB, assignmentID uint, eventType, notes string, meta EventMeta, at time.Time) error {
	payload, err := json.Marshal(meta)
	if err != nil {
		return err
	}

	event := model.AssignmentEvent{
		ID:           uuid.NewString(),
		AssignmentID: assignmentID,
		EventType:    eventType,
		Notes:        notes,
		Metadata:     datatypes.JSON(payload),
		CreatedAt:    at,
	}
	return db.Create(&event).Error
}

// LoadEvents returns the ledger for an assignment, oldest first.
func LoadEvents(db *gorm.DB, assignmentID uint) ([]model.AssignmentEvent, error) {
	var events []model.AssignmentEvent
	err := db.Where("assignment_id = ?", assignmentID).
		Order("created_at, id").
		Find(&events).Error
	return events, err
}

// FlagsFromEvents derives the confirmation flags the phase engine
// consumes. Any response, accept or decline, settles a reminder; the
// full history stays in the ledger for audit.
func FlagsFromEvents(events []model.AssignmentEvent) ConfirmationFlags {
	var flags ConfirmationFlags
	for _, e := range events {
		switch e.EventType {
		case model.EventShiftCreatedAccept, model.EventShiftCreatedDecline:
			flags.ShiftCreated = true
		case model.EventReminder24hAccept, model.EventReminder24hDecline:
			flags.Reminder24h = true
		case model.EventReminder2hAccept, model.EventReminder2hDecline:
			flags.Reminder2h = true
		}
	}
	return flags
}
