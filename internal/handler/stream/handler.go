package stream

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/zhouzirui/playmate/backend/internal/model/session"
	"github.com/zhouzirui/playmate/backend/internal/service/companion"
	"github.com/zhouzirui/playmate/backend/internal/service/pages"
	sessionsvc "github.com/zhouzirui/playmate/backend/internal/service/session"
	"github.com/zhouzirui/playmate/backend/pkg/utils"
)

var ErrStreamingUnsupported = errors.New("streaming unsupported")

// Handler streams chat replies via Server-Sent Events.
type Handler struct {
	sessions  *sessionsvc.Service
	companion *companion.Service
	router    *pages.Router
	logger    *zap.Logger
}

// New creates a new stream handler.
func New(sessions *sessionsvc.Service, comp *companion.Service, router *pages.Router, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		sessions:  sessions,
		companion: comp,
		router:    router,
		logger:    logger,
	}
}

// StreamResponse is one SSE frame.
type StreamResponse struct {
	Event     string             `json:"event"`
	SessionID string             `json:"sessionId,omitempty"`
	Content   string             `json:"content,omitempty"`
	Source    companion.Source   `json:"source,omitempty"`
	Mood      *session.MoodEntry `json:"mood,omitempty"`
	View      *pages.View        `json:"view,omitempty"`
	Finished  bool               `json:"finished,omitempty"`
	Error     string             `json:"error,omitempty"`
}

// HandleStreamRequest runs one chat turn for the session and streams it.
// Errors returned before the stream opens have not been written to w; the
// caller answers them as plain JSON.
func (h *Handler) HandleStreamRequest(ctx context.Context, w http.ResponseWriter, sessionID, userMessage string) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return ErrStreamingUnsupported
	}
	if strings.TrimSpace(userMessage) == "" {
		return companion.ErrEmptyMessage
	}

	opened := false
	err := h.sessions.Do(ctx, sessionID, func(state *session.State) error {
		if err := pages.Allow(state, pages.ActionChat); err != nil {
			return err
		}

		utils.SetupSSEHeaders(w)
		opened = true

		h.sendSSE(w, flusher, StreamResponse{
			Event:     "start",
			SessionID: sessionID,
			Content:   "PlayMate is typing...",
		})

		ex, err := h.companion.ChatStream(ctx, state, userMessage, func(delta string) {
			h.sendSSE(w, flusher, StreamResponse{
				Event:     "delta",
				SessionID: sessionID,
				Content:   delta,
			})
		})
		if err != nil {
			return err
		}

		h.sendSSE(w, flusher, StreamResponse{
			Event:     "message",
			SessionID: sessionID,
			Content:   ex.Reply.Content,
			Source:    ex.Source,
		})

		entry := ex.Mood
		h.sendSSE(w, flusher, StreamResponse{
			Event:     "mood",
			SessionID: sessionID,
			Mood:      &entry,
		})

		view := h.router.RenderChat(state, ex)
		h.sendSSE(w, flusher, StreamResponse{
			Event:     "end",
			SessionID: sessionID,
			View:      &view,
			Finished:  true,
		})
		return nil
	})

	if err != nil && opened {
		h.sendSSE(w, flusher, StreamResponse{
			Event:     "error",
			SessionID: sessionID,
			Error:     err.Error(),
		})
		h.logger.Warn("chat stream failed", zap.String("session", sessionID), zap.Error(err))
		return nil
	}
	if err == nil {
		h.logger.Debug("chat stream completed", zap.String("session", sessionID))
	}
	return err
}

// sendSSE writes response as an SSE event named after response.Event.
func (h *Handler) sendSSE(w http.ResponseWriter, flusher http.Flusher, response StreamResponse) {
	utils.SendSSEEvent(w, flusher, response.Event, response)
}
