// Package live carries the rerun loop over a websocket: each inbound event is
// applied to the session and answered with the freshly rendered view.
package live

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/zhouzirui/playmate/backend/internal/handler/apierr"
	"github.com/zhouzirui/playmate/backend/internal/model/session"
	"github.com/zhouzirui/playmate/backend/internal/service/pages"
	sessionsvc "github.com/zhouzirui/playmate/backend/internal/service/session"
)

const (
	pongWait     = 60 * time.Second
	pingInterval = 54 * time.Second
	writeWait    = 10 * time.Second
)

// Inbound message types.
const (
	TypeEvent = "event"
	TypeRerun = "rerun"
)

// Outbound message types.
const (
	TypeConnected = "connected"
	TypeView      = "view"
	TypeError     = "error"
)

// Handler WebSocket实时通道处理器
type Handler struct {
	sessions *sessionsvc.Service
	router   *pages.Router
	upgrader websocket.Upgrader
	readMax  int64
	logger   *zap.Logger
}

// New creates a live handler. readMax caps one inbound frame.
func New(sessions *sessionsvc.Service, router *pages.Router, readMax int64, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		sessions: sessions,
		router:   router,
		readMax:  readMax,
		logger:   logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes 注册WebSocket路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/sessions/{sessionID}/live", h.handleWebSocket)
}

type inboundMessage struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId"`
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

type outgoingMessage struct {
	Type      string      `json:"type"`
	SessionID string      `json:"sessionId,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// ErrorData is the payload of an error message.
type ErrorData struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// handleWebSocket 处理WebSocket连接
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	view, err := h.rerun(r.Context(), sessionID, pages.Event{})
	if err != nil {
		apierr.Respond(w, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	logger := h.logger.With(zap.String("session", sessionID))
	logger.Info("live connection opened")
	defer logger.Info("live connection closed")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if h.readMax > 0 {
		conn.SetReadLimit(h.readMax)
	}
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	go h.pingLoop(ctx, conn)

	if err := h.send(conn, sessionID, TypeConnected, map[string]string{"session": sessionID}); err != nil {
		return
	}
	if err := h.send(conn, sessionID, TypeView, view); err != nil {
		return
	}

	for {
		var msg inboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("live read failed", zap.Error(err))
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		if msg.SessionID != "" && msg.SessionID != sessionID {
			if err := h.sendError(conn, sessionID, http.StatusBadRequest, "session mismatch"); err != nil {
				return
			}
			continue
		}

		if !h.handleMessage(ctx, conn, sessionID, &msg) {
			return
		}
	}
}

// handleMessage answers one inbound message. It reports false when the
// connection should close.
func (h *Handler) handleMessage(ctx context.Context, conn *websocket.Conn, sessionID string, msg *inboundMessage) bool {
	var evt pages.Event
	switch msg.Type {
	case TypeRerun:
	case TypeEvent:
		if err := json.Unmarshal(msg.Data, &evt); err != nil {
			return h.sendError(conn, sessionID, http.StatusBadRequest, "invalid event payload") == nil
		}
	default:
		return h.sendError(conn, sessionID, http.StatusBadRequest, "unsupported message type: "+msg.Type) == nil
	}

	view, err := h.rerun(ctx, sessionID, evt)
	if err != nil {
		status := apierr.Status(err)
		message := err.Error()
		if status == http.StatusInternalServerError {
			message = "internal error"
		}
		if sendErr := h.sendError(conn, sessionID, status, message); sendErr != nil {
			return false
		}
		return !errors.Is(err, sessionsvc.ErrSessionNotFound)
	}

	return h.send(conn, sessionID, TypeView, view) == nil
}

func (h *Handler) rerun(ctx context.Context, sessionID string, evt pages.Event) (pages.View, error) {
	var view pages.View
	err := h.sessions.Do(ctx, sessionID, func(state *session.State) error {
		var err error
		view, err = h.router.Rerun(ctx, state, evt)
		return err
	})
	return view, err
}

func (h *Handler) send(conn *websocket.Conn, sessionID, kind string, data interface{}) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	err := conn.WriteJSON(outgoingMessage{
		Type:      kind,
		SessionID: sessionID,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	})
	if err != nil {
		h.logger.Debug("live write failed", zap.String("session", sessionID), zap.Error(err))
	}
	return err
}

func (h *Handler) sendError(conn *websocket.Conn, sessionID string, status int, message string) error {
	return h.send(conn, sessionID, TypeError, ErrorData{Error: message, Status: status})
}

// pingLoop keeps the connection alive. WriteControl may run alongside the
// reader loop's writes.
func (h *Handler) pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
