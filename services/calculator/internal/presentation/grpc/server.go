package grpc

import (
	"fmt"
	"log/slog"
	"net"
	"os"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/crestbank/crest/pkg/auth"
	"github.com/crestbank/crest/pkg/tlsutil"
)

// Server wraps a gRPC server with health checks and the calculator handler.
type Server struct {
	grpcServer *grpc.Server
	handler    *Handler
	logger     *slog.Logger
	port       int
}

// TLSFiles holds the optional server certificate pair.
type TLSFiles struct {
	CertFile string
	KeyFile  string
}

// NewServer creates a gRPC Server with health checking and optional
// reflection. authService may be nil to run without authentication.
func NewServer(handler *Handler, logger *slog.Logger, port int, authService *auth.Service, tlsFiles TLSFiles) *Server {
	var serverOpts []grpc.ServerOption

	if authService != nil {
		interceptor := auth.UnaryInterceptor(authService, []string{
			"/grpc.health.v1.Health/Check",
			"/grpc.health.v1.Health/Watch",
		})
		serverOpts = append(serverOpts, grpc.UnaryInterceptor(interceptor))
	} else {
		logger.Warn("gRPC authentication disabled")
	}

	if tlsFiles.CertFile != "" && tlsFiles.KeyFile != "" {
		creds, err := tlsutil.ServerCredentials(tlsFiles.CertFile, tlsFiles.KeyFile)
		if err != nil {
			logger.Error("failed to load TLS credentials, starting without TLS", "error", err)
		} else {
			serverOpts = append(serverOpts, grpc.Creds(creds))
			logger.Info("gRPC TLS enabled", "cert", tlsFiles.CertFile)
		}
	} else {
		logger.Info("gRPC TLS not configured, running without TLS")
	}

	grpcServer := grpc.NewServer(serverOpts...)

	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthSrv)
	healthSrv.SetServingStatus("calculator-service", healthpb.HealthCheckResponse_SERVING)

	RegisterCalculatorServiceServer(grpcServer, handler)

	// Only enable reflection when GRPC_REFLECTION=true.
	if os.Getenv("GRPC_REFLECTION") == "true" {
		reflection.Register(grpcServer)
	}

	return &Server{
		grpcServer: grpcServer,
		handler:    handler,
		logger:     logger,
		port:       port,
	}
}

// Start begins listening for gRPC connections.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("grpc listen on %s: %w", addr, err)
	}

	s.logger.Info("gRPC server starting", "addr", addr)
	if err := s.grpcServer.Serve(lis); err != nil {
		return fmt.Errorf("grpc serve: %w", err)
	}
	return nil
}

// Stop gracefully stops the gRPC server.
func (s *Server) Stop() {
	s.logger.Info("gRPC server stopping")
	s.grpcServer.GracefulStop()
}
