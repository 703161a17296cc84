package repository

import (
	"context"

	"github.com/jhoicas/core-stock/internal/domain/entity"
)

// SupplierRepository puerto de lectura de proveedores.
type SupplierRepository interface {
	List(ctx context.Context) ([]*entity.Supplier, error)
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
}
