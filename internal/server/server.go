// Package server exposes the agents over HTTP with SSE streaming.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"valyuagent/internal/agent"
	"valyuagent/internal/agentcore"
)

const defaultProfile = "research-assistant"

type Server struct {
	factory *agent.RunnerFactory
	runtime *agentcore.RuntimeClient // nil when no deployed runtime is configured
	mux     *http.ServeMux
}

func NewServer(factory *agent.RunnerFactory, runtime *agentcore.RuntimeClient) *Server {
	s := &Server{
		factory: factory,
		runtime: runtime,
		mux:     http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST /v1/chat", s.handleChat)
	s.mux.HandleFunc("POST /v1/compare", s.handleCompare)
	s.mux.HandleFunc("GET /v1/profiles", s.handleProfiles)
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)
}

func (s *Server) Handler() http.Handler { return s.mux }

// ListenAndServe serves until ctx is cancelled, then drains in-flight
// requests before returning.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.mux}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return nil
	}
}
