package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/core-stock/internal/domain/entity"
	"github.com/jhoicas/core-stock/internal/domain/repository"
)

// UserRepository usuarios en memoria.
type UserRepository struct {
	store *Store
}

// NewUserRepository crea el repositorio sobre store.
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

var _ repository.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, nil
	}
	u = copyUser(u)
	return &u, nil
}

// GetByEmail comparación sin distinguir mayúsculas.
func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, u := range r.store.users {
		if strings.EqualFold(u.Email, email) {
			u = copyUser(u)
			return &u, nil
		}
	}
	return nil, nil
}
