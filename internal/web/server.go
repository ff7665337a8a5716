// ===== internal/web/server.go =====
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"netbringup/internal/logs"
	"netbringup/internal/status"
)

// Server represents the HTTP status server
type Server struct {
	store  *status.Store
	logs   *logs.Manager
	log    zerolog.Logger
	mux    *http.ServeMux
	server *http.Server
}

// NewServer creates a new web server. It only ever reads the status store
// and the log buffer.
func NewServer(listen string, store *status.Store, logManager *logs.Manager, log zerolog.Logger) *Server {
	s := &Server{
		store: store,
		logs:  logManager,
		log:   log,
		mux:   http.NewServeMux(),
	}

	s.setupRoutes()
	s.server = &http.Server{
		Addr:              listen,
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	s.log.Info().Str("listen", s.server.Addr).Msg("Starting status server")

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("status server: %w", err)
	}
	return nil
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the routes, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.mux
}

// setupRoutes configures HTTP routes
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/status", s.handleStatusAPI)
	s.mux.HandleFunc("/api/logs", s.handleLogsAPI)
	s.mux.HandleFunc("/healthz", s.handleHealth)
}
