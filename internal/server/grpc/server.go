// Package grpc exposes the readiness of the dispatch handler as a standard
// gRPC health service.
package grpc

import (
	"errors"
	"fmt"
	"log/slog"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service entry tracking the bound backend.
const ServiceName = "modelhandler"

// Server serves grpc.health.v1.Health.
type Server struct {
	server   *grpc.Server
	health   *health.Server
	listener net.Listener
}

// NewServer creates a server reporting NOT_SERVING until SetServing(true).
func NewServer(opts ...grpc.ServerOption) *Server {
	s := &Server{
		server: grpc.NewServer(opts...),
		health: health.NewServer(),
	}
	healthpb.RegisterHealthServer(s.server, s.health)
	s.SetServing(false)
	return s
}

// SetServing updates the status of the overall server and of ServiceName.
func (s *Server) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

// Listen binds the server to address.
func (s *Server) Listen(address string) error {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", address, err)
	}
	slog.Info("gRPC server listening", "address", listener.Addr().String())
	s.listener = listener
	return nil
}

// Address returns the bound address.
func (s *Server) Address() string {
	return s.listener.Addr().String()
}

// Serve serves on the listener set by Listen.
func (s *Server) Serve() error {
	if s.listener == nil {
		return errors.New("not listening")
	}
	return s.ServeListener(s.listener)
}

// ServeListener serves on l.
func (s *Server) ServeListener(l net.Listener) error {
	if err := s.server.Serve(l); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

// Stop marks every service NOT_SERVING and stops the server gracefully.
func (s *Server) Stop() {
	slog.Info("gRPC server stopping")
	s.health.Shutdown()
	s.server.GracefulStop()
}
