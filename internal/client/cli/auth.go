package cli

import (
	"context"
	"os"

	"github.com/smelnikov/authsvc/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for an email, name and password and creates a new
// account. The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	session, err := a.api.Register(ctx, email, name, string(password))
	if err != nil {
		return err
	}

	a.printSession(session)
	return nil
}

// Login prompts for credentials and authenticates against the server.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	session, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	a.printSession(session)
	return nil
}

// Verify reads a token, either from the AUTH_TOKEN environment variable or
// interactively, and exchanges it for a fresh one.
func (a *App) Verify(ctx context.Context) error {
	token := os.Getenv("AUTH_TOKEN")
	if token == "" {
		var err error
		token, err = getSimpleText(a.reader, "Enter token", a.out)
		if err != nil {
			return err
		}
	}

	session, err := a.api.Verify(ctx, token)
	if err != nil {
		return err
	}

	a.printSession(session)
	return nil
}
