package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/tutorial-blog-backend/config"
	"github.com/rpupo63/tutorial-blog-backend/database"
	"github.com/rpupo63/tutorial-blog-backend/errs"
	"github.com/rpupo63/tutorial-blog-backend/services"
	"github.com/rs/zerolog/log"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(cfg config.Config, db database.Database) (Server, error) {
	if cfg.JWTSecret == "" {
		return Server{}, errs.NewEnvironmentVariableError("JWT_SECRET")
	}

	address := fmt.Sprintf("0.0.0.0:%s", cfg.Port) // Bind to 0.0.0.0 for external access
	startupTime := time.Now()

	router := newRouter(db, cfg, withStartupTime(startupTime))

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return Server{server, startupTime}, nil
}

type router struct {
	clock       services.Clock
	startupTime time.Time
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func withClock(clock services.Clock) func(*router) {
	return func(r *router) {
		r.clock = clock
	}
}

func newRouter(db database.Database, cfg config.Config, opts ...func(*router)) *chi.Mux {
	router := router{clock: services.SystemClock{}, startupTime: time.Now()}
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(corsMiddleware(cfg.AcceptedOrigins))

	handlers := initializeHandlers(db, cfg, router.clock, router.startupTime)
	setupRoutes(chiRouter, handlers, newAuthMiddleware(cfg.JWTSecret))

	return chiRouter
}

// Start serves until the server is shut down. A graceful shutdown is not
// reported as an error.
func (s Server) Start() error {
	log.Info().Msgf("Server started on: %s", s.Addr)
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
