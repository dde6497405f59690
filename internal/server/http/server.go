// Package http serves the dispatch handler over HTTP.
package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"

	"github.com/ekisa-team/modelhandler/internal/handler"
)

// Server is the HTTP host of a Handler.
type Server struct {
	mux      *http.ServeMux
	server   *http.Server
	listener net.Listener
}

// NewServer creates a new Server exposing h for the artifact directory in hctx.
func NewServer(h *handler.Handler, hctx handler.Context, version string) *Server {
	mux := http.NewServeMux()
	api := humago.New(mux, huma.DefaultConfig("modelhandler", version))
	NewInvocationHandler(api, h, hctx)

	return &Server{
		mux: mux,
		server: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Handler returns the router of the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Listen binds the server to address.
func (s *Server) Listen(address string) error {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", address, err)
	}
	slog.Info("HTTP server listening", "address", listener.Addr().String())
	s.listener = listener
	return nil
}

// Address returns the bound address.
func (s *Server) Address() string {
	return s.listener.Addr().String()
}

// Serve serves requests until Stop is called.
func (s *Server) Serve() error {
	if s.listener == nil {
		return errors.New("not listening")
	}
	if err := s.server.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	slog.Info("HTTP server stopping")
	return s.server.Shutdown(ctx)
}
