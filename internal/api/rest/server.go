package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/telcoshield/simswap-risk-engine/internal/infrastructure/config"
	"github.com/telcoshield/simswap-risk-engine/internal/metrics"
	"github.com/telcoshield/simswap-risk-engine/internal/service/assessment"
)

// Server is the HTTP front of the risk engine
type Server struct {
	config     *config.Config
	httpServer *http.Server
	handler    *Handler
	logger     *slog.Logger
}

// NewServer wires the handler, middleware chain and HTTP server
func NewServer(cfg *config.Config, svc assessment.Service, registry *metrics.Registry, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	handler := NewHandler(svc, cfg.Version, logger)

	server := &Server{
		config:  cfg,
		handler: handler,
		logger:  logger,
	}

	middlewares := []Middleware{
		requestIDMiddleware,
		loggingMiddleware(logger),
		metricsMiddleware(registry),
		recoveryMiddleware(logger),
		corsMiddleware,
		rateLimitMiddleware(100, 200),
		timeoutMiddleware(30 * time.Second),
	}

	var h http.Handler = server.setupRoutes()
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}

	server.httpServer = &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        h,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	return server
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handler.handleHealth)
	mux.HandleFunc("GET /api/v1/fraud/health", s.handler.handleFraudHealth)
	mux.HandleFunc("POST /api/v1/fraud/assess", s.handler.handleAssess)

	return mux
}

// Handler exposes the fully wrapped handler, used by tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start runs the server until an error or a shutdown signal
func (s *Server) Start() error {
	s.logger.Info("starting API server",
		slog.String("address", s.httpServer.Addr),
		slog.String("environment", s.config.Environment),
	)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed to start: %w", err)
	case sig := <-sigCh:
		s.logger.Info("received shutdown signal", slog.String("signal", sig.String()))
		return s.Shutdown()
	}
}

// Shutdown drains in-flight requests before stopping
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("failed to shutdown server", slog.String("error", err.Error()))
		return err
	}

	s.logger.Info("server shutdown complete")
	return nil
}
