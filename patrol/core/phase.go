package core

import "time"

// Phase is the single action the guard app should surface for an
// assignment right now.
type Phase string

const (
	PhaseConfirmShiftCreated Phase = "confirm_shift_created"
	PhaseConfirm24h          Phase = "confirm_24h"
	PhaseConfirm2h           Phase = "confirm_2h"
	PhaseEta                 Phase = "eta"
	PhaseBookOn              Phase = "book_on"
	PhaseWaiting             Phase = "waiting"
	PhaseInShift             Phase = "in_shift"
	PhaseCompleted           Phase = "completed"
)

const (
	// Book-on opens this many minutes before the scheduled start.
	BookOnLeadMinutes = 15
	// Book-on stays open this long past the scheduled start; after that
	// the shift counts as missed from the employee side.
	BookOnGraceMinutes = 120
)

// ConfirmationFlags are derived from the event ledger: a flag is set
// when any response (accept or decline) exists for that reminder type.
type ConfirmationFlags struct {
	ShiftCreated bool
	Reminder24h  bool
	Reminder2h   bool
}

// ComputePhase derives exactly one phase from the inputs. It is a pure
// function: all state lives in the ledger and booking columns, so
// identical inputs always yield the identical phase.
//
// The 24h/2h reminders are additionally gated on when the assignment
// was created relative to the shift: an assignment created three hours
// before its start never owes a 24h confirmation, because that window
// was already unreachable at creation time.
func ComputePhase(now time.Time, win ShiftWindow, flags ConfirmationFlags, bookOnAt, bookOffAt *time.Time) Phase {
	if bookOnAt != nil && bookOffAt != nil {
		return PhaseCompleted
	}
	if bookOnAt != nil {
		return PhaseInShift
	}

	// The shift_created acknowledgement is the first gate; nothing else
	// is reachable until the guard has seen the assignment at all.
	if !flags.ShiftCreated {
		return PhaseConfirmShiftCreated
	}

	mins := win.MinutesToStart(now)

	if !flags.Reminder24h &&
		!win.CreatedAtUTC.After(win.StartMinus24h) &&
		!now.Before(win.StartMinus24h) && now.Before(win.StartMinus2h) {
		return PhaseConfirm24h
	}

	if !flags.Reminder2h &&
		!win.CreatedAtUTC.After(win.StartMinus2h) &&
		!now.Before(win.StartMinus2h) && mins > 0 {
		return PhaseConfirm2h
	}

	if mins > BookOnLeadMinutes {
		return PhaseEta
	}

	if mins <= BookOnLeadMinutes && mins > -BookOnGraceMinutes {
		return PhaseBookOn
	}

	// Not booked on and the book-on window has passed.
	return PhaseWaiting
}
