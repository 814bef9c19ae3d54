// Package users contains the credential store adapter: a Repository
// interface plus PostgreSQL and in-memory implementations.
package users

import (
	"context"

	"github.com/smelnikov/authsvc/internal/server/models"
)

// Repository is the storage contract the auth facade depends on. Email
// uniqueness is enforced by the implementation itself, so a race between two
// concurrent Create calls for the same email yields exactly one success and
// one common.ErrEmailTaken.
type Repository interface {
	// Create inserts the user and returns the stored record with ID and
	// CreatedAt populated. Returns common.ErrEmailTaken on duplicate email.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail returns the user stored under the exact email, or
	// common.ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
