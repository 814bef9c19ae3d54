package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// loggingInterceptor records every unary call with its method and outcome.
// Request payloads are never logged; they carry credentials.
func (s *GRPCServer) loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	resp, err := handler(ctx, req)

	if err != nil {
		s.logger.Info(ctx, "request", "method", info.FullMethod, "code", status.Code(err).String())
		return nil, err
	}

	s.logger.Info(ctx, "request", "method", info.FullMethod, "code", "OK")
	return resp, nil
}
