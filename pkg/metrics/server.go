package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"
)

// DefaultPath is the path metrics are served on.
const DefaultPath = "/metrics"

// Server serves Metrics over HTTP.
type Server struct {
	addr    string
	path    string
	metrics *Metrics
	logger  *slog.Logger

	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
}

// NewServer creates a metrics server listening on addr.
// An empty path selects DefaultPath.
func NewServer(addr, path string, m *Metrics, logger *slog.Logger) *Server {
	if path == "" {
		path = DefaultPath
	}
	return &Server{addr: addr, path: path, metrics: m, logger: logger}
}

// Start begins serving in the background.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		return errors.New("metrics server already running")
	}
	if s.metrics == nil {
		return errors.New("metrics server: nil metrics")
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("metrics server listen: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle(s.path, s.metrics.Handler())
	s.server = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	s.listener = ln

	go func(srv *http.Server) {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) && s.logger != nil {
			s.logger.Error("metrics server stopped", "error", err)
		}
	}(s.server)

	if s.logger != nil {
		s.logger.Info("metrics server started", "addr", ln.Addr().String(), "path", s.path)
	}
	return nil
}

// Addr returns the listening address, or "" when not running.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv := s.server
	s.server = nil
	s.listener = nil
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
