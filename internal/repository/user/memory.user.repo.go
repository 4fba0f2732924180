package user

import (
	"context"
	"sync"

	"transfer-storefront/internal/common/models"
)

// MemoryRepository keeps users in process, for local runs without a database.
type MemoryRepository struct {
	mu      sync.RWMutex
	byEmail map[string]models.User
}

func NewMemoryRepo() *MemoryRepository {
	return &MemoryRepository{byEmail: map[string]models.User{}}
}

func (r *MemoryRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.Email = NormalizeEmail(user.Email)
	if _, ok := r.byEmail[user.Email]; ok {
		return ErrEmailExists
	}
	r.byEmail[user.Email] = *user
	return nil
}

func (r *MemoryRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byEmail[NormalizeEmail(email)]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.byEmail {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byEmail[NormalizeEmail(email)]
	return ok, nil
}
