package v1

import (
	"encoding/json"
	"fmt"
	"time"

	"guardlink.com.au/guardlink/guardlink/v1/common"
)

type ConfirmationFlagsDTO struct {
	ShiftCreated bool `json:"shiftCreated"`
	Reminder24h  bool `json:"reminder24h"`
	Reminder2h   bool `json:"reminder2h"`
}

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

type AssignmentEndpoint struct {
	transport *Transport
}

func (ep *AssignmentEndpoint) GetPhase(assignmentID uint) (*PhaseDTO, error) {
	resp, err := ep.transport.Get(fmt.Sprintf("/api/patrol/v1.0/assignments/%d/phase", assignmentID), nil)
	if err != nil {
		return nil, err
	}

	var result common.StatusAPIResponse[*PhaseDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

func (ep *AssignmentEndpoint) Confirm(assignmentID uint, confirmType string, response string) error {
	payload := map[string]string{"type": confirmType, "response": response}
	_, err := ep.transport.Post(fmt.Sprintf("/api/patrol/v1.0/assignments/%d/confirmations", assignmentID), payload, nil)
	return err
}

func (ep *AssignmentEndpoint) SetEta(assignmentID uint, minutes *int) error {
	payload := map[string]*int{"minutes": minutes}
	_, err := ep.transport.Put(fmt.Sprintf("/api/patrol/v1.0/assignments/%d/eta", assignmentID), payload, nil)
	return err
}

func (ep *AssignmentEndpoint) BookOn(assignmentID uint, evidence *string) error {
	payload := map[string]*string{"evidence": evidence}
	_, err := ep.transport.Post(fmt.Sprintf("/api/patrol/v1.0/assignments/%d/book-on", assignmentID), payload, nil)
	return err
}

func (ep *AssignmentEndpoint) BookOff(assignmentID uint, evidence *string) error {
	payload := map[string]*string{"evidence": evidence}
	_, err := ep.transport.Post(fmt.Sprintf("/api/patrol/v1.0/assignments/%d/book-off", assignmentID), payload, nil)
	return err
}
