package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/smelnikov/authsvc/internal/common"
	"github.com/smelnikov/authsvc/internal/logging"
	"github.com/smelnikov/authsvc/internal/server/auth"
	"github.com/smelnikov/authsvc/internal/server/models"
	"github.com/smelnikov/authsvc/internal/server/repositories/users"
)

func newTestService(t *testing.T) (*AuthService, *auth.TokenIssuer) {
	t.Helper()
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewAuthService(users.NewMemoryRepository(), issuer, logger), issuer
}

type errRepo struct {
	err error
}

func (r *errRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	return nil, r.err
}

func (r *errRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, r.err
}

func TestRegister_Success(t *testing.T) {
	t.Parallel()

	s, issuer := newTestService(t)
	ctx := context.Background()

	res, err := s.Register(ctx, "a@x.com", "A", "secret1")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if res.User.Email != "a@x.com" || res.User.Name != "A" {
		t.Fatalf("unexpected user: %+v", res.User)
	}
	if res.User.ID == "" || res.User.CreatedAt.IsZero() {
		t.Fatalf("expected populated id and created_at: %+v", res.User)
	}

	got, err := issuer.Verify(res.Token)
	if err != nil {
		t.Fatalf("Verify error on fresh token: %v", err)
	}
	if got != res.User {
		t.Fatalf("token claims mismatch: got %+v want %+v", got, res.User)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	t.Parallel()

	s, _ := newTestService(t)
	ctx := context.Background()

	if _, err := s.Register(ctx, "a@x.com", "A", "secret1"); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if _, err := s.Register(ctx, "a@x.com", "B", "other"); !errors.Is(err, common.ErrEmailTaken) {
		t.Fatalf("want common.ErrEmailTaken, got %v", err)
	}

	// The original record is untouched.
	res, err := s.Login(ctx, "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if res.User.Name != "A" {
		t.Fatalf("existing user was overwritten: %+v", res.User)
	}
}

func TestRegister_StoreError(t *testing.T) {
	t.Parallel()

	issuer := auth.NewTokenIssuer("k", time.Hour)
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	s := NewAuthService(&errRepo{err: errors.New("connection reset")}, issuer, logger)

	_, err := s.Register(context.Background(), "a@x.com", "A", "secret1")
	if err == nil || errors.Is(err, common.ErrEmailTaken) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestLogin_RoundTrip(t *testing.T) {
	t.Parallel()

	s, _ := newTestService(t)
	ctx := context.Background()

	reg, err := s.Register(ctx, "a@x.com", "A", "secret1")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	res, err := s.Login(ctx, "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if res.User != reg.User {
		t.Fatalf("login claims differ from register claims: %+v vs %+v", res.User, reg.User)
	}

	ver, err := s.Verify(ctx, res.Token)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if ver.User != reg.User {
		t.Fatalf("verify claims differ from register claims: %+v vs %+v", ver.User, reg.User)
	}
}

func TestLogin_GenericFailureMessage(t *testing.T) {
	t.Parallel()

	s, _ := newTestService(t)
	ctx := context.Background()

	if _, err := s.Register(ctx, "a@x.com", "A", "secret1"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	_, wrongPassword := s.Login(ctx, "a@x.com", "wrong")
	_, unknownEmail := s.Login(ctx, "ghost@x.com", "secret1")

	if !errors.Is(wrongPassword, common.ErrInvalidCredentials) {
		t.Fatalf("wrong password: want common.ErrInvalidCredentials, got %v", wrongPassword)
	}
	if !errors.Is(unknownEmail, common.ErrInvalidCredentials) {
		t.Fatalf("unknown email: want common.ErrInvalidCredentials, got %v", unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Fatalf("messages must be identical: %q vs %q", wrongPassword, unknownEmail)
	}
}

func TestVerify_InvalidToken(t *testing.T) {
	t.Parallel()

	s, _ := newTestService(t)
	ctx := context.Background()

	if _, err := s.Verify(ctx, "garbage"); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("want common.ErrInvalidToken, got %v", err)
	}

	expired := auth.NewTokenIssuer("test-secret", -time.Minute)
	tok, err := expired.Sign(auth.Identity{ID: "u-1", Email: "a@x.com", Name: "A"})
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}
	if _, err := s.Verify(ctx, tok); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("want common.ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerify_ReissuesSamePayload(t *testing.T) {
	t.Parallel()

	s, issuer := newTestService(t)
	ctx := context.Background()

	reg, err := s.Register(ctx, "a@x.com", "A", "secret1")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	res, err := s.Verify(ctx, reg.Token)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if res.User != reg.User {
		t.Fatalf("payload changed across verify: %+v vs %+v", res.User, reg.User)
	}

	// The fresh token carries the same non-temporal claims.
	got, err := issuer.Verify(res.Token)
	if err != nil {
		t.Fatalf("Verify error on re-issued token: %v", err)
	}
	if got != reg.User {
		t.Fatalf("re-issued claims mismatch: %+v vs %+v", got, reg.User)
	}
}

func TestRegister_ConcurrentSameEmail(t *testing.T) {
	t.Parallel()

	s, _ := newTestService(t)
	ctx := context.Background()

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.Register(ctx, "race@x.com", "R", "secret1")
		}(i)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, common.ErrEmailTaken):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || conflicts != n-1 {
		t.Fatalf("want exactly one success, got %d successes / %d conflicts", ok, conflicts)
	}
}

func TestEndToEndScenario(t *testing.T) {
	t.Parallel()

	s, _ := newTestService(t)
	ctx := context.Background()

	reg, err := s.Register(ctx, "a@x.com", "A", "secret1")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	login, err := s.Login(ctx, "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if login.User != reg.User {
		t.Fatalf("login user mismatch")
	}

	ver, err := s.Verify(ctx, login.Token)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if ver.User != reg.User {
		t.Fatalf("verify user mismatch")
	}
	if ver.Token == "" {
		t.Fatalf("verify must return a fresh token")
	}

	if _, err := s.Login(ctx, "a@x.com", "wrong"); !errors.Is(err, common.ErrInvalidCredentials) {
		t.Fatalf("want common.ErrInvalidCredentials, got %v", err)
	}
}
