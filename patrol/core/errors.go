package core

import (
	"errors"
	"fmt"
	"time"
)

// Not-found errors: the request referenced a row that does not exist.
var (
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrCheckCallNotFound  = errors.New("check call not found")
	ErrUnknownToken       = errors.New("unknown checkpoint token")
)

// Precondition errors: the action is out of order for this assignment.
// The request is rejected with no state change.
var (
	ErrAssignmentClosed    = errors.New("assignment is closed")
	ErrAlreadyBookedOn     = errors.New("already booked on")
	ErrNotBookedOn         = errors.New("not booked on")
	ErrAlreadyBookedOff    = errors.New("already booked off")
	ErrCheckpointWrongSite = errors.New("checkpoint does not belong to the assignment's site")
)

// Conflict errors on check-call completion.
var (
	ErrCallAlreadyCompleted = errors.New("check call already completed")
	ErrCallAlreadyMissed    = errors.New("check call already missed")
)

// WindowViolationError means an action was attempted outside its
// permitted time window.
type WindowViolationError struct {
	WindowStart time.Time
	WindowEnd   time.Time
	At          time.Time
}

func (e *WindowViolationError) Error() string {
	return fmt.Sprintf("action at %s outside window [%s, %s]",
		e.At.Format(time.RFC3339), e.WindowStart.Format(time.RFC3339), e.WindowEnd.Format(time.RFC3339))
}
