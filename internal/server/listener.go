package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotify-proxy/internal/shared"
)

const shutdownTimeout = 10 * time.Second

// NewRouter assembles the proxy's routes and middleware.
//
// debugMode adds stack traces to panic logs; it never changes responses.
func NewRouter(tokens TokenSource, playlists PlaylistSource, logger *log.Logger, debugMode bool) *BasicRouter {
	router := NewBasicRouter()
	router.Use(RequestID(), Logger(logger), Recover(logger, debugMode))

	router.Handler(http.MethodGet, NewPlaylistHandler(tokens, playlists, logger))
	router.Handler(http.MethodGet, HealthHandler{})

	return router
}

// Server runs the proxy's [http.Server] until its context is canceled.
type Server struct {
	addr       string
	httpServer *http.Server
	logger     *log.Logger
}

// New creates a [Server] bound to the configured address and timeouts.
func New(cfg shared.ServerConfig, handler http.Handler, logger *log.Logger) *Server {
	return &Server{
		addr: cfg.Addr(),
		httpServer: &http.Server{
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout(),
			ReadHeaderTimeout: cfg.ReadTimeout(),
			WriteTimeout:      cfg.WriteTimeout(),
		},
		logger: logger,
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info("listening", "addr", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
