package v1

import (
	"encoding/json"
	"fmt"
	"time"

	"guardlink.com.au/guardlink/guardlink/v1/common"
)

type CheckCallDTO struct {
	ID          uint       `json:"id"`
	Date        time.Time  `json:"date"`
	Time        string     `json:"time"`
	Status      string     `json:"status"`
	UIStatus    string     `json:"uiStatus"`
	CanPress    bool       `json:"canPress"`
	WindowStart time.Time  `json:"windowStart"`
	WindowEnd   time.Time  `json:"windowEnd"`
	ActualTime  *time.Time `json:"actualTime"`
}

type CheckCallEndpoint struct {
	transport *Transport
}

// Seed provisions the compliance schedule for a new assignment. Safe to
// retry, the server ignores slots that already exist.
func (ep *CheckCallEndpoint) Seed(assignmentID uint, startDate, endDate string) error {
	payload := map[string]string{"startDate": startDate, "endDate": endDate}
	_, err := ep.transport.Post(fmt.Sprintf("/api/patrol/v1.0/assignments/%d/check-calls/seed", assignmentID), payload, nil)
	return err
}

func (ep *CheckCallEndpoint) List(assignmentID uint) ([]CheckCallDTO, error) {
	resp, err := ep.transport.Get(fmt.Sprintf("/api/patrol/v1.0/assignments/%d/check-calls", assignmentID), nil)
	if err != nil {
		return nil, err
	}

	var result common.StatusAPIResponse[[]CheckCallDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

func (ep *CheckCallEndpoint) Complete(callID uint, lat, lng float64) (*CheckCallDTO, error) {
	payload := map[string]float64{"latitude": lat, "longitude": lng}
	resp, err := ep.transport.Post(fmt.Sprintf("/api/patrol/v1.0/check-calls/%d/complete", callID), payload, nil)
	if err != nil {
		return nil, err
	}

	var result common.StatusAPIResponse[*CheckCallDTO]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}
