package v1

type GuardlinkClient struct {
	Transport   *Transport
	Assignments *AssignmentEndpoint
	CheckCalls  *CheckCallEndpoint
}

// NewGuardlinkClient initializes the API client
func NewGuardlinkClient(baseURL string, token string) *GuardlinkClient {
	t := NewTransport(baseURL, token)
	return &GuardlinkClient{
		Transport:   t,
		Assignments: &AssignmentEndpoint{transport: t},
		CheckCalls:  &CheckCallEndpoint{transport: t},
	}
}
