package session

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/playmate/backend/internal/model/session"
	"github.com/zhouzirui/playmate/backend/internal/service/drawing"
	"github.com/zhouzirui/playmate/backend/internal/service/game"
	"github.com/zhouzirui/playmate/backend/internal/service/pages"
	sessionsvc "github.com/zhouzirui/playmate/backend/internal/service/session"
)

func setupRouter(t *testing.T) *chi.Mux {
	t.Helper()

	zero := func(int) int { return 0 }
	sessions := sessionsvc.NewService(sessionsvc.Options{Secret: func() int { return 7 }})
	router := pages.NewRouter(pages.Deps{
		RPS:      game.NewRockPaperScissors(zero),
		Guesser:  game.NewNumberGuesser(zero),
		Drawings: drawing.NewService(drawing.Config{Enabled: false}),
	})

	r := chi.NewRouter()
	New(sessions, router, 1024, nil).RegisterRoutes(r)
	return r
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func createSession(t *testing.T, r http.Handler) string {
	t.Helper()

	resp := do(t, r, http.MethodPost, "/sessions", nil)
	require.Equal(t, http.StatusCreated, resp.Code)

	var created createResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	require.NotEmpty(t, created.Session.ID)
	assert.Equal(t, session.PageMain, created.View.Page)
	require.NotNil(t, created.View.Home)
	return created.Session.ID
}

func decodeView(t *testing.T, resp *httptest.ResponseRecorder) pages.View {
	t.Helper()

	var view pages.View
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &view))
	return view
}

func TestCreateAndGetSession(t *testing.T) {
	r := setupRouter(t)
	id := createSession(t, r)

	resp := do(t, r, http.MethodGet, "/sessions/"+id, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, id, decodeView(t, resp).SessionID)
}

func TestGetUnknownSession(t *testing.T) {
	r := setupRouter(t)

	resp := do(t, r, http.MethodGet, "/sessions/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.JSONEq(t, `{"error":"session not found"}`, resp.Body.String())
}

func TestEventFlow(t *testing.T) {
	r := setupRouter(t)
	id := createSession(t, r)
	events := "/sessions/" + id + "/events"

	resp := do(t, r, http.MethodPost, events, pages.Event{Action: pages.ActionNavigate, Page: session.PageGames})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, session.PageGames, decodeView(t, resp).Page)

	resp = do(t, r, http.MethodPost, events, pages.Event{Action: pages.ActionGuessNumber, Guess: 7})
	require.Equal(t, http.StatusOK, resp.Code)
	view := decodeView(t, resp)
	require.NotNil(t, view.Games)
	require.NotNil(t, view.Games.Guesser)
	require.NotNil(t, view.Games.Guesser.Last)
	assert.True(t, view.Games.Guesser.Last.Correct)

	resp = do(t, r, http.MethodPost, events, pages.Event{Action: pages.ActionChat, Text: "hi"})
	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestEventErrors(t *testing.T) {
	r := setupRouter(t)
	id := createSession(t, r)
	events := "/sessions/" + id + "/events"

	tests := []struct {
		name string
		body any
		want int
	}{
		{"unknown page", pages.Event{Action: pages.ActionNavigate, Page: "attic"}, http.StatusBadRequest},
		{"unknown action", pages.Event{Action: "dance"}, http.StatusBadRequest},
		{"malformed", "not an event", http.StatusBadRequest},
		{"too large", pages.Event{Action: pages.ActionSaveDrawing, Image: strings.Repeat("A", 2048)}, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, r, http.MethodPost, events, tt.body)
			assert.Equal(t, tt.want, resp.Code)
		})
	}
}

func TestDrawingUnavailable(t *testing.T) {
	r := setupRouter(t)
	id := createSession(t, r)
	events := "/sessions/" + id + "/events"

	resp := do(t, r, http.MethodPost, events, pages.Event{Action: pages.ActionNavigate, Page: session.PageDraw})
	require.Equal(t, http.StatusOK, resp.Code)
	view := decodeView(t, resp)
	require.NotNil(t, view.Draw)
	assert.False(t, view.Draw.Available)

	resp = do(t, r, http.MethodPost, events, pages.Event{Action: pages.ActionSaveDrawing, Image: "AAAA"})
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
}

func TestDeleteSession(t *testing.T) {
	r := setupRouter(t)
	id := createSession(t, r)

	resp := do(t, r, http.MethodDelete, "/sessions/"+id, nil)
	require.Equal(t, http.StatusNoContent, resp.Code)

	resp = do(t, r, http.MethodGet, "/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = do(t, r, http.MethodDelete, "/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
