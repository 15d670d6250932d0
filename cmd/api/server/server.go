package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"user-account-service/internal/adapter/gin/handler"
	"user-account-service/internal/adapter/gin/router"
	"user-account-service/internal/config"
	"user-account-service/pkg/token"
)

// Server holds the HTTP server serving the REST API
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	HTTP   *http.Server
}

// New creates a new server instance with the router fully wired
func New(
	cfg *config.Config,
	l *zap.Logger,
	userHandler *handler.UserHandler,
	authHandler *handler.AuthHandler,
	tokens *token.Manager,
) *Server {
	engine := router.SetupRouter(userHandler, authHandler, tokens, l)

	return &Server{
		Config: cfg,
		Logger: l,
		HTTP: &http.Server{
			Addr:              ":" + cfg.App.HTTPPort,
			Handler:           engine,
			ReadHeaderTimeout: 2 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	s.Logger.Info("HTTP server running", zap.String("address", s.HTTP.Addr))
	if err := s.HTTP.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
