package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zhouzirui/playmate/backend/internal/analysis/mood"
	"github.com/zhouzirui/playmate/backend/internal/config"
	"github.com/zhouzirui/playmate/backend/internal/handler"
	"github.com/zhouzirui/playmate/backend/internal/model/persona"
	"github.com/zhouzirui/playmate/backend/internal/service/ai"
	"github.com/zhouzirui/playmate/backend/internal/service/companion"
	"github.com/zhouzirui/playmate/backend/internal/service/content"
	"github.com/zhouzirui/playmate/backend/internal/service/drawing"
	"github.com/zhouzirui/playmate/backend/internal/service/game"
	"github.com/zhouzirui/playmate/backend/internal/service/pages"
	"github.com/zhouzirui/playmate/backend/internal/service/session"
)

type serveOptions struct {
	addr string
}

func newServeCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address, overrides PORT")
	return cmd
}

func runServe(parent context.Context, opts serveOptions) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if opts.addr != "" {
		cfg.Server.Addr = opts.addr
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	undo := zap.ReplaceGlobals(logger)
	defer undo()

	if envErr != nil {
		logger.Info("no .env file loaded, using process environment", zap.Error(envErr))
	}

	router, err := buildRouter(ctx, cfg, logger)
	if err != nil {
		return err
	}

	return startServer(ctx, cfg.Server, router, logger)
}

func buildRouter(ctx context.Context, cfg *config.Config, logger *zap.Logger) (http.Handler, error) {
	rules, err := mood.LoadRules(cfg.Mood.RulesFile)
	if err != nil {
		return nil, fmt.Errorf("load mood rules: %w", err)
	}
	classifier := mood.NewClassifier(rules)

	companionPersona := persona.PlayMate()

	var generator companion.Generator
	if cfg.AI.Enabled() {
		aiService, err := ai.NewService(ctx, companionPersona, cfg.AI, logger.Named("ai"))
		if err != nil {
			logger.Warn("failed to initialize AI service, using canned replies", zap.Error(err))
		} else {
			logger.Info("AI service initialized", zap.String("model", cfg.AI.Model))
			generator = aiService
		}
	} else {
		logger.Info("Ark credentials not configured, using canned replies")
	}

	contentService, err := content.NewService()
	if err != nil {
		return nil, fmt.Errorf("render content: %w", err)
	}

	drawings := drawing.NewService(drawing.Config{
		Enabled:  cfg.Drawing.Enabled,
		MaxBytes: cfg.Drawing.MaxBytes,
	})
	if !drawings.Enabled() {
		logger.Info("drawing canvas disabled by configuration")
	}

	guesser := game.NewNumberGuesser(nil)
	companionService := companion.NewService(classifier, generator, logger.Named("companion"))

	pageRouter := pages.NewRouter(pages.Deps{
		Companion: companionService,
		RPS:       game.NewRockPaperScissors(nil),
		Guesser:   guesser,
		Drawings:  drawings,
		Content:   contentService,
		Logger:    logger.Named("pages"),
	})

	sessions := session.NewService(session.Options{
		TTL:    cfg.Session.TTL,
		Secret: guesser.NewSecret,
		Logger: logger.Named("session"),
	})

	return handler.NewRouter(handler.Deps{
		Sessions:  sessions,
		Pages:     pageRouter,
		Companion: companionService,
		Persona:   companionPersona,
		MaxBody:   maxBody(cfg.Drawing.MaxBytes),
		Logger:    logger,
	}), nil
}

// maxBody fits a base64 drawing of maxDrawing bytes plus the event envelope.
func maxBody(maxDrawing int) int64 {
	return int64(maxDrawing)*4/3 + 64<<10
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler, logger *zap.Logger) error {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		ErrorLog:          zap.NewStdLog(logger.Named("http")),
	}

	logger.Info("PlayMate backend listening", zap.String("addr", addr))
	if err := runServer(ctx, srv); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	logger.Info("PlayMate backend stopped")
	return nil
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
