// Package cli implements the authctl command line client.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/smelnikov/authsvc/internal/client/client"
)

// AuthAPI is the slice of the server API the CLI needs.
type AuthAPI interface {
	Register(ctx context.Context, email, name, password string) (*client.Session, error)
	Login(ctx context.Context, email, password string) (*client.Session, error)
	Verify(ctx context.Context, token string) (*client.Session, error)
}

type App struct {
	api    AuthAPI
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(api AuthAPI) *App {
	return &App{api: api, reader: bufio.NewReader(os.Stdin), out: os.Stdout}
}

// Run executes a single command and returns its error.
func (a *App) Run(ctx context.Context, command string) error {

	switch command {
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	case "verify":
		return a.Verify(ctx)
	case "help", "":
		a.usage()
		return nil
	default:
		a.usage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func (a *App) usage() {
	fmt.Fprintln(a.out, "Usage: authctl [-addr host:port] <register|login|verify>")
}

func (a *App) printSession(s *client.Session) {
	fmt.Fprintf(a.out, "User: %s <%s> (id %s)\n", s.Account.Name, s.Account.Email, s.Account.ID)
	fmt.Fprintf(a.out, "Token: %s\n", s.Token)
}
