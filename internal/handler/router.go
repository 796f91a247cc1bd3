package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/zhouzirui/playmate/backend/internal/handler/apierr"
	"github.com/zhouzirui/playmate/backend/internal/handler/live"
	pagesHandler "github.com/zhouzirui/playmate/backend/internal/handler/pages"
	sessionHandler "github.com/zhouzirui/playmate/backend/internal/handler/session"
	"github.com/zhouzirui/playmate/backend/internal/handler/stream"
	middlewarePkg "github.com/zhouzirui/playmate/backend/internal/middleware"
	"github.com/zhouzirui/playmate/backend/internal/model/persona"
	"github.com/zhouzirui/playmate/backend/internal/service/companion"
	"github.com/zhouzirui/playmate/backend/internal/service/pages"
	sessionService "github.com/zhouzirui/playmate/backend/internal/service/session"
	"github.com/zhouzirui/playmate/backend/pkg/utils"
)

// Deps are the services the HTTP surface exposes.
type Deps struct {
	Sessions  *sessionService.Service
	Pages     *pages.Router
	Companion *companion.Service
	Persona   persona.Persona
	// MaxBody caps event bodies and live frames.
	MaxBody int64
	Logger  *zap.Logger
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	maxBody := deps.MaxBody
	if maxBody <= 0 {
		maxBody = sessionHandler.DefaultMaxBody
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.Logger(logger.Named("http")))
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS())

	pagesH := pagesHandler.New(deps.Persona)
	sessionH := sessionHandler.New(deps.Sessions, deps.Pages, maxBody, logger)
	liveH := live.New(deps.Sessions, deps.Pages, maxBody, logger)
	streamH := stream.New(deps.Sessions, deps.Companion, deps.Pages, logger)

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]any{
				"status":   "ok",
				"sessions": deps.Sessions.Count(),
			})
		})

		pagesH.RegisterRoutes(api)
		sessionH.RegisterRoutes(api)
		liveH.RegisterRoutes(api)

		api.Get("/sessions/{sessionID}/chat/stream", func(w http.ResponseWriter, r *http.Request) {
			sessionID := chi.URLParam(r, "sessionID")
			userMessage := r.URL.Query().Get("message")

			if userMessage == "" {
				utils.RespondError(w, http.StatusBadRequest, "message query parameter is required")
				return
			}

			if err := streamH.HandleStreamRequest(r.Context(), w, sessionID, userMessage); err != nil {
				logger.Debug("chat stream rejected", zap.String("session", sessionID), zap.Error(err))
				apierr.Respond(w, err)
			}
		})
	})

	return r
}
