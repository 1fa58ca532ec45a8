package core

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"guardlink.com.au/guardlink/patrol/model"
)

// PhaseInfo is everything the app needs to render the current
// lifecycle step of one assignment.
type PhaseInfo struct {
	Assignment     model.Assignment
	Window         ShiftWindow
	Phase          Phase
	MinutesToStart int
	Flags          ConfirmationFlags
}

func FindAssignment(db *gorm.DB, id uint) (*model.Assignment, error) {
	var a model.Assignment
	result := db.First(&a, id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, ErrAssignmentNotFound
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &a, nil
}

// LoadPhase fetches the assignment and its ledger fresh and computes
// the current phase. No state is held between calls.
func LoadPhase(db *gorm.DB, assignmentID uint, now time.Time, loc *time.Location) (*PhaseInfo, error) {
	a, err := FindAssignment(db, assignmentID)
	if err != nil {
		return nil, err
	}

	win, err := ResolveShiftWindow(a.Date, a.StartTime, a.EndTime, a.CreatedAt, loc)
	if err != nil {
		return nil, err
	}

	events, err := LoadEvents(db, a.ID)
	if err != nil {
		return nil, err
	}
	flags := FlagsFromEvents(events)

	return &PhaseInfo{
		Assignment:     *a,
		Window:         win,
		Phase:          ComputePhase(now, win, flags, a.BookOnAt, a.BookOffAt),
		MinutesToStart: win.MinutesToStart(now),
		Flags:          flags,
	}, nil
}

// Reminder types accepted by ConfirmReminder.
const (
	ReminderShiftCreated = "shift_created"
	Reminder24h          = "24h"
	Reminder2h           = "2h"
)

const (
	ResponseAccept  = "accept"
	ResponseDecline = "decline"
)

var reminderEvents = map[string]map[string]string{
	ReminderShiftCreated: {ResponseAccept: model.EventShiftCreatedAccept, ResponseDecline: model.EventShiftCreatedDecline},
	Reminder24h:          {ResponseAccept: model.EventReminder24hAccept, ResponseDecline: model.EventReminder24hDecline},
	Reminder2h:           {ResponseAccept: model.EventReminder2hAccept, ResponseDecline: model.EventReminder2hDecline},
}

// ConfirmReminder records one reminder response in the ledger. For
// shift_created accepts it also flips the assignment's shift status,
// the one denormalised flag the roster screens filter on.
func ConfirmReminder(db *gorm.DB, assignmentID uint, reminderType, response string, meta EventMeta, now time.Time) error {
	byResponse, ok := reminderEvents[reminderType]
	if !ok {
		return fmt.Errorf("unknown reminder type %q", reminderType)
	}
	eventType, ok := byResponse[response]
	if !ok {
		return fmt.Errorf("unknown reminder response %q", response)
	}

	a, err := FindAssignment(db, assignmentID)
	if err != nil {
		return err
	}
	if !a.Open() {
		return ErrAssignmentClosed
	}

	if err := AppendEvent(db, a.ID, eventType, "", meta, now); err != nil {
		return err
	}

	if eventType == model.EventShiftCreatedAccept {
		return db.Model(&model.Assignment{}).
			Where("id = ?", a.ID).
			Update("shift_status", model.ShiftStatusConfirmed).Error
	}
	return nil
}

// SetEta stores the guard's estimated minutes to arrival; nil clears it.
func SetEta(db *gorm.DB, assignmentID uint, minutes *int, meta EventMeta, now time.Time) error {
	if minutes != nil && *minutes < 0 {
		return fmt.Errorf("eta minutes must be >= 0, got %d", *minutes)
	}

	a, err := FindAssignment(db, assignmentID)
	if err != nil {
		return err
	}
	if !a.Open() {
		return ErrAssignmentClosed
	}

	eventType := model.EventEtaSet
	notes := ""
	if minutes == nil {
		eventType = model.EventEtaCleared
	} else {
		notes = fmt.Sprintf("%d minutes", *minutes)
	}

	if err := db.Model(&model.Assignment{}).
		Where("id = ?", a.ID).
		Update("eta_minutes", minutes).Error; err != nil {
		return err
	}

	return AppendEvent(db, a.ID, eventType, notes, meta, now)
}

// BookOn marks the start of physical presence. The update conditions on
// book_on_at still being empty, so two concurrent attempts apply once.
func BookOn(db *gorm.DB, assignmentID uint, evidence *string, meta EventMeta, now time.Time) error {
	a, err := FindAssignment(db, assignmentID)
	if err != nil {
		return err
	}
	if !a.Open() {
		return ErrAssignmentClosed
	}

	result := db.Model(&model.Assignment{}).
		Where("id = ? AND status = ? AND book_on_at IS NULL", a.ID, model.AssignmentStatusActive).
		Updates(map[string]interface{}{
			"book_on_at":       now,
			"book_on_evidence": evidence,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAlreadyBookedOn
	}

	return AppendEvent(db, a.ID, model.EventBookOn, "", meta, now)
}

// BookOff closes the shift. Rejected when there is no prior book-on;
// the conditional update keeps concurrent attempts at-most-once. A
// successful book-off also completes the assignment.
func BookOff(db *gorm.DB, assignmentID uint, evidence *string, meta EventMeta, now time.Time) error {
	a, err := FindAssignment(db, assignmentID)
	if err != nil {
		return err
	}
	if !a.Open() {
		return ErrAssignmentClosed
	}
	if a.BookOnAt == nil {
		return ErrNotBookedOn
	}

	result := db.Model(&model.Assignment{}).
		Where("id = ? AND status = ? AND book_on_at IS NOT NULL AND book_off_at IS NULL", a.ID, model.AssignmentStatusActive).
		Updates(map[string]interface{}{
			"book_off_at":       now,
			"book_off_evidence": evidence,
			"status":            model.AssignmentStatusCompleted,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAlreadyBookedOff
	}

	return AppendEvent(db, a.ID, model.EventBookOff, "", meta, now)
}
