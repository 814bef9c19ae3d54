// Package common defines sentinel errors shared across service and transport
// layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound   = errors.New("not found")
	ErrEmailTaken = errors.New("user already exists")

	// Credential check failures. The message is deliberately generic so a
	// caller cannot tell an unknown email from a wrong password.
	ErrInvalidCredentials = errors.New("user/password no valid")

	// Token signature or expiry failures.
	ErrInvalidToken = errors.New("invalid token")
)
