package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/smelnikov/authsvc/internal/client/client"
)

func stubInputs(t *testing.T, answers []string, password []byte) func() {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		answer := answers[i]
		i++
		return answer, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
	return func() {
		getSimpleText = origST
		getPassword = origGP
	}
}

type fakeAuth struct {
	regEmail, regName, regPass string
	loginEmail, loginPass      string
	verifyToken                string

	session *client.Session
	err     error
}

func (f *fakeAuth) Register(_ context.Context, email, name, password string) (*client.Session, error) {
	f.regEmail, f.regName, f.regPass = email, name, password
	return f.session, f.err
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (*client.Session, error) {
	f.loginEmail, f.loginPass = email, password
	return f.session, f.err
}

func (f *fakeAuth) Verify(_ context.Context, token string) (*client.Session, error) {
	f.verifyToken = token
	return f.session, f.err
}

func newTestApp(api AuthAPI) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{api: api, reader: bufio.NewReader(strings.NewReader("")), out: &out}, &out
}

func testSession() *client.Session {
	return &client.Session{
		Account: client.Account{ID: "u1", Email: "a@x.com", Name: "A"},
		Token:   "tok123",
	}
}

func TestRegister_PromptsAndPrints(t *testing.T) {
	restore := stubInputs(t, []string{"a@x.com", "A"}, []byte("secret1"))
	defer restore()

	api := &fakeAuth{session: testSession()}
	app, out := newTestApp(api)

	if err := app.Register(context.Background()); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if api.regEmail != "a@x.com" || api.regName != "A" || api.regPass != "secret1" {
		t.Fatalf("unexpected call: %+v", api)
	}
	if !strings.Contains(out.String(), "tok123") {
		t.Fatalf("token missing from output: %q", out.String())
	}
}

func TestLogin_PropagatesError(t *testing.T) {
	restore := stubInputs(t, []string{"a@x.com"}, []byte("wrong"))
	defer restore()

	api := &fakeAuth{err: errors.New("User/Password no valid")}
	app, _ := newTestApp(api)

	err := app.Login(context.Background())
	if err == nil || err.Error() != "User/Password no valid" {
		t.Fatalf("want server message, got %v", err)
	}
}

func TestVerify_TokenFromEnv(t *testing.T) {
	t.Setenv("AUTH_TOKEN", "env-token")

	api := &fakeAuth{session: testSession()}
	app, _ := newTestApp(api)

	if err := app.Verify(context.Background()); err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if api.verifyToken != "env-token" {
		t.Fatalf("want token from env, got %q", api.verifyToken)
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	app, out := newTestApp(&fakeAuth{})

	if err := app.Run(context.Background(), "frobnicate"); err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(out.String(), "Usage:") {
		t.Fatalf("usage missing: %q", out.String())
	}
}
