// Package memory holds process-local repositories with the same uniqueness
// guarantees as the Postgres schema. They back tests and STORE_DRIVER=memory.
package memory

import (
	"context"
	"sync"

	"ninetytozero-backend/internal/domain"
)

type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]domain.User
	byEmail map[string]string
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[user.Email]; taken {
		return &domain.ConflictError{Field: "email"}
	}
	if _, taken := r.byID[user.ID]; taken {
		return &domain.ConflictError{Field: "id"}
	}
	r.byID[user.ID] = *user
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	user := r.byID[id]
	return &user, nil
}

// SetActive flips the active flag; account administration lives outside the API.
func (r *UserRepository) SetActive(id string, active bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return false
	}
	user.IsActive = active
	r.byID[id] = user
	return true
}

func (r *UserRepository) Ping(context.Context) error {
	return nil
}
