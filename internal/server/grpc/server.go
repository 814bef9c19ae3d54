// Package grpc exposes the auth facade over gRPC.
package grpc

import (
	"context"
	"net"

	"google.golang.org/grpc"

	"github.com/smelnikov/authsvc/internal/logging"
	pb "github.com/smelnikov/authsvc/internal/proto"
	"github.com/smelnikov/authsvc/internal/server/services"
)

type GRPCServer struct {
	pb.UnimplementedAuthServiceServer
	address string
	auth    *services.AuthService
	logger  logging.Logger
}

func NewGRPCServer(address string, l logging.Logger, as *services.AuthService) *GRPCServer {
	return &GRPCServer{
		address: address,
		logger:  l.With("module", "grpc_server"),
		auth:    as,
	}
}

// Run serves until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))

	pb.RegisterAuthServiceServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
