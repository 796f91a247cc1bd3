package session

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/zhouzirui/playmate/backend/internal/handler/apierr"
	"github.com/zhouzirui/playmate/backend/internal/model/session"
	"github.com/zhouzirui/playmate/backend/internal/service/pages"
	sessionsvc "github.com/zhouzirui/playmate/backend/internal/service/session"
	"github.com/zhouzirui/playmate/backend/pkg/utils"
)

// DefaultMaxBody bounds an event body when the caller does not.
const DefaultMaxBody = 4 << 20

// Handler 会话生命周期与事件接口的HTTP处理器
type Handler struct {
	sessions *sessionsvc.Service
	router   *pages.Router
	maxBody  int64
	logger   *zap.Logger
}

// New 创建会话处理器。maxBody 限制事件请求体大小（其中可能携带 base64 画作）
func New(sessions *sessionsvc.Service, router *pages.Router, maxBody int64, logger *zap.Logger) *Handler {
	if maxBody <= 0 {
		maxBody = DefaultMaxBody
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		sessions: sessions,
		router:   router,
		maxBody:  maxBody,
		logger:   logger,
	}
}

// RegisterRoutes 注册会话相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/sessions", h.handleCreate)
	r.Get("/sessions/{sessionID}", h.handleGet)
	r.Post("/sessions/{sessionID}/events", h.handleEvent)
	r.Delete("/sessions/{sessionID}", h.handleDelete)
}

// SessionInfo describes a freshly created session.
type SessionInfo struct {
	ID string `json:"id"`
}

type createResponse struct {
	Session SessionInfo `json:"session"`
	View    pages.View  `json:"view"`
}

// handleCreate 创建会话并返回首页视图
func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := h.sessions.Create(ctx)
	if err != nil {
		apierr.Respond(w, err)
		return
	}

	view, err := h.rerun(r, id, pages.Event{})
	if err != nil {
		apierr.Respond(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusCreated, createResponse{
		Session: SessionInfo{ID: id},
		View:    view,
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	view, err := h.rerun(r, chi.URLParam(r, "sessionID"), pages.Event{})
	if err != nil {
		apierr.Respond(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, view)
}

// handleEvent 应用一个UI事件并返回当前页面视图
func (h *Handler) handleEvent(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)

	var evt pages.Event
	if err := json.NewDecoder(r.Body).Decode(&evt); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.RespondError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.rerun(r, chi.URLParam(r, "sessionID"), evt)
	if err != nil {
		h.logger.Debug("event rejected",
			zap.String("session", chi.URLParam(r, "sessionID")),
			zap.String("action", string(evt.Action)),
			zap.Error(err),
		)
		apierr.Respond(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, view)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.End(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		apierr.Respond(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) rerun(r *http.Request, id string, evt pages.Event) (pages.View, error) {
	var view pages.View
	err := h.sessions.Do(r.Context(), id, func(state *session.State) error {
		var err error
		view, err = h.router.Rerun(r.Context(), state, evt)
		return err
	})
	return view, err
}
