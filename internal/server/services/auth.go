// Package services contains the server-side business logic. This file
// implements AuthService, the facade behind all transports: it registers
// users, checks credentials, and issues/refreshes signed tokens.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/smelnikov/authsvc/internal/common"
	"github.com/smelnikov/authsvc/internal/logging"
	"github.com/smelnikov/authsvc/internal/server/auth"
	"github.com/smelnikov/authsvc/internal/server/models"
	"github.com/smelnikov/authsvc/internal/server/repositories/users"
)

// AuthResult is the uniform outcome of the three operations: the user's
// identity (never a password hash) and a freshly signed token.
type AuthResult struct {
	User  auth.Identity
	Token string
}

// AuthService provides the authentication operations:
//   - Register: create a user and issue a first token
//   - Login: verify credentials and issue a token
//   - Verify: validate a token and re-issue it
//
// It holds the store behind the Repository interface rather than owning a
// connection, so storage can be swapped without touching the logic. There is
// no per-request state; all methods are safe for concurrent use.
type AuthService struct {
	repo   users.Repository
	issuer *auth.TokenIssuer
	logger logging.Logger
}

func NewAuthService(repo users.Repository, issuer *auth.TokenIssuer, l logging.Logger) *AuthService {
	return &AuthService{
		repo:   repo,
		issuer: issuer,
		logger: l.With("module", "auth_service"),
	}
}

// Register creates a new user and returns it together with a signed token.
// A user already stored under the email yields common.ErrEmailTaken; the
// lookup is only a fast path, the unique index in the store settles races
// between concurrent registrations.
func (s *AuthService) Register(ctx context.Context, email, name, password string) (*AuthResult, error) {

	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return nil, common.ErrEmailTaken
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("error checking existing user: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user, err := s.repo.Create(ctx, &models.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			return nil, common.ErrEmailTaken
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "email", user.Email)
	return s.issue(identityOf(user))
}

// Login verifies the provided credentials and returns the user with a signed
// token. Unknown email and wrong password both yield
// common.ErrInvalidCredentials so callers cannot probe which one failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, common.ErrInvalidCredentials
	}

	return s.issue(identityOf(user))
}

// Verify checks the token's signature and expiry and, on success, re-signs
// the identity claims as a fresh token. Each successful call therefore
// slides the expiry window forward; there is no ceiling on how long a
// session can be extended this way and no revocation list.
func (s *AuthService) Verify(ctx context.Context, token string) (*AuthResult, error) {

	identity, err := s.issuer.Verify(token)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	return s.issue(identity)
}

func (s *AuthService) issue(id auth.Identity) (*AuthResult, error) {
	token, err := s.issuer.Sign(id)
	if err != nil {
		return nil, fmt.Errorf("error signing token: %w", err)
	}
	return &AuthResult{User: id, Token: token}, nil
}

func identityOf(user *models.User) auth.Identity {
	return auth.Identity{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
}
