// Package apierr maps domain errors to HTTP responses.
package apierr

import (
	"context"
	"errors"
	"net/http"

	"github.com/zhouzirui/playmate/backend/internal/model/session"
	"github.com/zhouzirui/playmate/backend/internal/service/companion"
	"github.com/zhouzirui/playmate/backend/internal/service/drawing"
	"github.com/zhouzirui/playmate/backend/internal/service/game"
	"github.com/zhouzirui/playmate/backend/internal/service/pages"
	sessionsvc "github.com/zhouzirui/playmate/backend/internal/service/session"
	"github.com/zhouzirui/playmate/backend/pkg/utils"
)

var statusByErr = []struct {
	err    error
	status int
}{
	{sessionsvc.ErrSessionNotFound, http.StatusNotFound},
	{pages.ErrActionNotOnPage, http.StatusConflict},
	{drawing.ErrDrawingUnavailable, http.StatusServiceUnavailable},
	{drawing.ErrDrawingTooLarge, http.StatusRequestEntityTooLarge},
	{drawing.ErrInvalidDrawing, http.StatusBadRequest},
	{pages.ErrUnknownAction, http.StatusBadRequest},
	{pages.ErrUnknownFace, http.StatusBadRequest},
	{session.ErrUnknownPage, http.StatusBadRequest},
	{session.ErrUnknownGame, http.StatusBadRequest},
	{game.ErrUnknownMove, http.StatusBadRequest},
	{game.ErrGuessOutOfRange, http.StatusBadRequest},
	{companion.ErrEmptyMessage, http.StatusBadRequest},
	{context.Canceled, http.StatusServiceUnavailable},
	{context.DeadlineExceeded, http.StatusGatewayTimeout},
}

// Status returns the HTTP status for err.
func Status(err error) int {
	for _, candidate := range statusByErr {
		if errors.Is(err, candidate.err) {
			return candidate.status
		}
	}
	return http.StatusInternalServerError
}

// Respond writes err as a JSON error body. Internal errors are not echoed.
func Respond(w http.ResponseWriter, err error) {
	status := Status(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal error"
	}
	utils.RespondError(w, status, message)
}
