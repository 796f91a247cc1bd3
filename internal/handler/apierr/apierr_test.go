package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/playmate/backend/internal/service/drawing"
	"github.com/zhouzirui/playmate/backend/internal/service/game"
	"github.com/zhouzirui/playmate/backend/internal/service/pages"
	sessionsvc "github.com/zhouzirui/playmate/backend/internal/service/session"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{sessionsvc.ErrSessionNotFound, http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", pages.ErrActionNotOnPage), http.StatusConflict},
		{drawing.ErrDrawingUnavailable, http.StatusServiceUnavailable},
		{drawing.ErrDrawingTooLarge, http.StatusRequestEntityTooLarge},
		{fmt.Errorf("%w: 11", game.ErrGuessOutOfRange), http.StatusBadRequest},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Status(tt.err), tt.err.Error())
	}
}

func TestRespondHidesInternalErrors(t *testing.T) {
	rr := httptest.NewRecorder()
	Respond(rr, errors.New("secret stack detail"))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "internal error", body["error"])

	rr = httptest.NewRecorder()
	Respond(rr, sessionsvc.ErrSessionNotFound)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "session not found", body["error"])
}
