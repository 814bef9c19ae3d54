// Package client wraps the auth gRPC API for the command line client.
package client

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	pb "github.com/smelnikov/authsvc/internal/proto"
)

var ErrUnavailable = errors.New("server unavailable")

// Account is the client-side view of an authenticated user.
type Account struct {
	ID        string
	Email     string
	Name      string
	CreatedAt time.Time
}

// Session is an account paired with its bearer token.
type Session struct {
	Account Account
	Token   string
}

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      pb.AuthServiceClient
}

func NewAuthClient(endpointURL string) (*GRPCClient, error) {
	conn, err := grpc.NewClient(endpointURL, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	return &GRPCClient{endpointURL: endpointURL, conn: conn, client: pb.NewAuthServiceClient(conn)}, nil
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

func (c *GRPCClient) Register(ctx context.Context, email, name, password string) (*Session, error) {

	resp, err := c.client.Register(ctx, &pb.RegisterRequest{Email: email, Name: name, Password: password})
	if err != nil {
		return nil, mapError(err)
	}
	return sessionOf(resp.User, resp.Token), nil
}

func (c *GRPCClient) Login(ctx context.Context, email, password string) (*Session, error) {

	resp, err := c.client.Login(ctx, &pb.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, mapError(err)
	}
	return sessionOf(resp.User, resp.Token), nil
}

func (c *GRPCClient) Verify(ctx context.Context, token string) (*Session, error) {

	resp, err := c.client.Verify(ctx, &pb.VerifyRequest{Token: token})
	if err != nil {
		return nil, mapError(err)
	}
	return sessionOf(resp.User, resp.Token), nil
}

// mapError strips transport details: an unreachable server becomes
// ErrUnavailable, everything else keeps the server's message.
func mapError(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	if st.Code() == codes.Unavailable {
		return ErrUnavailable
	}
	return errors.New(st.Message())
}

func sessionOf(u *pb.User, token string) *Session {
	acc := Account{}
	if u != nil {
		acc = Account{ID: u.Id, Email: u.Email, Name: u.Name}
		if u.CreatedAt != nil {
			acc.CreatedAt = u.CreatedAt.AsTime()
		}
	}
	return &Session{Account: acc, Token: token}
}
