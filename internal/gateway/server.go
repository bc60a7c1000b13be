package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dohr-michael/taskapi/internal/config"
	"github.com/dohr-michael/taskapi/internal/events"
	"github.com/dohr-michael/taskapi/internal/tasks"
)

// Server is the taskapi HTTP server.
type Server struct {
	httpServer *http.Server
	router     chi.Router
	bus        *events.Bus
	tasks      *TaskHandler

	mu       sync.Mutex
	listener net.Listener
}

// NewServer creates a new server exposing the task routes over store.
// bus may be nil, in which case no events are published.
func NewServer(store tasks.Store, bus *events.Bus, cfg config.ServerConfig) *Server {
	s := &Server{
		bus:   bus,
		tasks: NewTaskHandler(store, bus, cfg.MaxBodyBytes),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.NotFound(handleNotFound)
	r.MethodNotAllowed(handleNotFound)

	// API: tasks
	r.Get("/tasks", s.tasks.List)
	r.Post("/tasks", s.tasks.Create)

	s.router = r
	s.httpServer = &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, fmt.Sprint(cfg.Port)),
		Handler:           r,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout.Duration(),
	}

	return s
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the bound address once listening, the configured address otherwise.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}

// Listen binds the configured address. Once it returns, Addr reports
// the bound address, which differs from the configured one for port 0.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.httpServer.Addr, err)
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()
	return nil
}

// Serve accepts connections on the listener bound by Listen. It blocks
// until the server is stopped and returns nil after a graceful Shutdown.
func (s *Server) Serve() error {
	s.mu.Lock()
	ln := s.listener
	s.mu.Unlock()
	if ln == nil {
		return errors.New("serve: server is not listening")
	}

	addr := ln.Addr().String()
	slog.Info("taskapi listening", "addr", addr)
	s.publish(events.NewTypedEvent(events.SourceServer, events.ServerStartedPayload{Addr: addr}))

	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.publish(events.NewTypedEvent(events.SourceServer, events.ServerStoppedPayload{Reason: "shutdown"}))
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) publish(e events.Event) {
	if s.bus != nil {
		s.bus.Publish(e)
	}
}

func handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, msgNotFound)
}
