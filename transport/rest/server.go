package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Server is the HTTP listener carrying the REST routes and the websocket
// endpoint.
type Server struct {
	logger *slog.Logger
	srv    *http.Server
}

func New(logger *slog.Logger, port string, handler http.Handler) *Server {
	return &Server{
		logger: logger.With("component", "http_server"),
		srv: &http.Server{
			Addr:              ":" + port,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       30 * time.Second,
		},
	}
}

// Start - blocks serving requests until Shutdown is called.
func (that *Server) Start() error {
	that.logger.Info("Starting HTTP server", "addr", that.srv.Addr)

	if err := that.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) Shutdown(ctx context.Context) error {
	if err := that.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
