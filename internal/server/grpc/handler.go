package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/smelnikov/authsvc/internal/common"
	pb "github.com/smelnikov/authsvc/internal/proto"
	"github.com/smelnikov/authsvc/internal/server/auth"
	"github.com/smelnikov/authsvc/internal/server/validate"
)

func (s *GRPCServer) Register(ctx context.Context, req *pb.RegisterRequest) (*pb.RegisterResponse, error) {

	if err := validateRegister(req); err != nil {
		return nil, err
	}

	result, err := s.auth.Register(ctx, req.Email, req.Name, req.Password)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	return &pb.RegisterResponse{User: identityToProto(result.User), Token: result.Token}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *pb.LoginRequest) (*pb.LoginResponse, error) {

	result, err := s.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	return &pb.LoginResponse{User: identityToProto(result.User), Token: result.Token}, nil
}

func (s *GRPCServer) Verify(ctx context.Context, req *pb.VerifyRequest) (*pb.VerifyResponse, error) {

	if err := validate.Token(req.Token); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	result, err := s.auth.Verify(ctx, req.Token)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	return &pb.VerifyResponse{User: identityToProto(result.User), Token: result.Token}, nil
}

func validateRegister(req *pb.RegisterRequest) error {
	if err := validate.Email(req.Email); err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	if err := validate.Name(req.Name); err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	if err := validate.Password(req.Password); err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return nil
}

// mapError translates facade errors into gRPC statuses. Expected domain
// errors keep their client-facing messages; anything else surfaces as an
// internal error with the underlying message passed through.
func (s *GRPCServer) mapError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrEmailTaken):
		return status.Error(codes.AlreadyExists, "User already exists")
	case errors.Is(err, common.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, "User/Password no valid")
	case errors.Is(err, common.ErrInvalidToken):
		return status.Error(codes.Unauthenticated, "Token invalid")
	default:
		s.logger.Error(ctx, "request failed", "error", err.Error())
		return status.Error(codes.Internal, err.Error())
	}
}

func identityToProto(id auth.Identity) *pb.User {
	return &pb.User{
		Id:        id.ID,
		Email:     id.Email,
		Name:      id.Name,
		CreatedAt: timestamppb.New(id.CreatedAt),
	}
}
