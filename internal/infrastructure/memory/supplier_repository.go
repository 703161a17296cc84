package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/core-stock/internal/domain/entity"
	"github.com/jhoicas/core-stock/internal/domain/repository"
)

// SupplierRepository proveedores en memoria.
type SupplierRepository struct {
	store *Store
}

// NewSupplierRepository crea el repositorio sobre store.
func NewSupplierRepository(store *Store) *SupplierRepository {
	return &SupplierRepository{store: store}
}

var _ repository.SupplierRepository = (*SupplierRepository)(nil)

// List ordenados por ID.
func (r *SupplierRepository) List(_ context.Context) ([]*entity.Supplier, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]*entity.Supplier, 0, len(r.store.suppliers))
	for _, s := range r.store.suppliers {
		s := s
		out = append(out, &s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetByID nil, nil si no existe.
func (r *SupplierRepository) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	s, ok := r.store.suppliers[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}
