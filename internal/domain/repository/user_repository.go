package repository

import (
	"context"

	"github.com/jhoicas/core-stock/internal/domain/entity"
)

// UserRepository puerto de persistencia para User (DIP).
// Los métodos Get devuelven nil, nil cuando el usuario no existe.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
