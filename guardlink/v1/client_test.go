package v1

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientGetPhase(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/patrol/v1.0/assignments/7/phase", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"assignmentId":7,"phase":"book_on","minutesToStart":10,"canBookOn":true}}`))
	}))
	defer server.Close()

	client := NewGuardlinkClient(server.URL, "test-token")

	phase, err := client.Assignments.GetPhase(7)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), phase.AssignmentID)
	assert.Equal(t, "book_on", phase.Phase)
	assert.True(t, phase.CanBookOn)
}

func TestClientListCheckCalls(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/patrol/v1.0/assignments/7/check-calls", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"id":1,"time":"21:00","status":"upcoming","uiStatus":"due","canPress":true}]}`))
	}))
	defer server.Close()

	client := NewGuardlinkClient(server.URL, "")

	calls, err := client.CheckCalls.List(7)
	assert.NoError(t, err)
	assert.Len(t, calls, 1)
	assert.Equal(t, "due", calls[0].UIStatus)
	assert.True(t, calls[0].CanPress)
}

func TestTransportErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"Check call already completed"}`))
	}))
	defer server.Close()

	client := NewGuardlinkClient(server.URL, "")

	_, err := client.CheckCalls.Complete(1, -27.47, 153.03)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "409")
}
