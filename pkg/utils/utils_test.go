package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRespondError(t *testing.T) {
	rr := httptest.NewRecorder()
	RespondError(rr, http.StatusTeapot, "short and stout")

	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"short and stout"}`, rr.Body.String())
}

func TestSendSSE(t *testing.T) {
	rr := httptest.NewRecorder()
	SetupSSEHeaders(rr)

	SendSSEEvent(rr, rr, "start", map[string]string{"a": "b"})
	SendSSEEvent(rr, rr, "mood", map[string]string{"mood": "happy"})

	assert.Equal(t, "text/event-stream", rr.Header().Get("Content-Type"))
	assert.Equal(t, "event: start\ndata: {\"a\":\"b\"}\n\nevent: mood\ndata: {\"mood\":\"happy\"}\n\n", rr.Body.String())
	assert.True(t, rr.Flushed)
}
