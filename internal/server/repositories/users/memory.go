package users

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/smelnikov/authsvc/internal/common"
	"github.com/smelnikov/authsvc/internal/server/models"
)

// MemoryRepository is a mutex-guarded in-memory Repository. It enforces the
// same email-uniqueness guarantee as the unique index in PostgreSQL and is
// meant for tests and local experiments.
type MemoryRepository struct {
	mu      sync.Mutex
	byEmail map[string]*models.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byEmail: make(map[string]*models.User)}
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return nil, common.ErrEmailTaken
	}

	stored := *user
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now().UTC()
	r.byEmail[stored.Email] = &stored

	out := stored
	return &out, nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrNotFound
	}

	out := *user
	return &out, nil
}
