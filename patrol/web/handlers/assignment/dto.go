package assignment

import (
	"time"

	pcore "guardlink.com.au/guardlink/patrol/core"
)

type ConfirmationFlagsDTO struct {
	ShiftCreated bool `json:"shiftCreated"`
	Reminder24h  bool `json:"reminder24h"`
	Reminder2h   bool `json:"reminder2h"`
}

// PhaseDTO tells the app which single action to present and carries
// the visible-action flags so it can render without a second request.
type PhaseDTO struct {
	AssignmentID   uint                 `json:"assignmentId"`
	Phase          string               `json:"phase"`
	MinutesToStart int                  `json:"minutesToStart"`
	StartAt        time.Time            `json:"startAt"`
	EndAt          time.Time            `json:"endAt"`
	Confirmations  ConfirmationFlagsDTO `json:"confirmations"`
	EtaMinutes     *int                 `json:"etaMinutes"`
	BookOnAt       *time.Time           `json:"bookOnAt"`
	BookOffAt      *time.Time           `json:"bookOffAt"`

	CanConfirm bool `json:"canConfirm"`
	CanSetEta  bool `json:"canSetEta"`
	CanBookOn  bool `json:"canBookOn"`
	CanBookOff bool `json:"canBookOff"`
}

func NewPhaseDTO(info *pcore.PhaseInfo) PhaseDTO {
	phase := info.Phase
	return PhaseDTO{
		AssignmentID:   info.Assignment.ID,
		Phase:          string(phase),
		MinutesToStart: info.MinutesToStart,
		StartAt:        info.Window.StartUTC,
		EndAt:          info.Window.EndUTC,
		Confirmations: ConfirmationFlagsDTO{
			ShiftCreated: info.Flags.ShiftCreated,
			Reminder24h:  info.Flags.Reminder24h,
			Reminder2h:   info.Flags.Reminder2h,
		},
		EtaMinutes: info.Assignment.EtaMinutes,
		BookOnAt:   info.Assignment.BookOnAt,
		BookOffAt:  info.Assignment.BookOffAt,

		CanConfirm: phase == pcore.PhaseConfirmShiftCreated || phase == pcore.PhaseConfirm24h || phase == pcore.PhaseConfirm2h,
		CanSetEta:  phase == pcore.PhaseEta,
		CanBookOn:  phase == pcore.PhaseBookOn,
		CanBookOff: phase == pcore.PhaseInShift,
	}
}
