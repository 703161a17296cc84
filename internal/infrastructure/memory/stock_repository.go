package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/core-stock/internal/domain"
	"github.com/jhoicas/core-stock/internal/domain/reorder"
	"github.com/jhoicas/core-stock/internal/domain/repository"
)

// StockRepository stock por SKU en memoria.
type StockRepository struct {
	store *Store
}

// NewStockRepository crea el repositorio sobre store.
func NewStockRepository(store *Store) *StockRepository {
	return &StockRepository{store: store}
}

var _ repository.StockRepository = (*StockRepository)(nil)

// ListSnapshots ordenados por SKU.
func (r *StockRepository) ListSnapshots(_ context.Context) ([]reorder.StockSnapshot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]reorder.StockSnapshot, 0, len(r.store.snapshots))
	for _, s := range r.store.snapshots {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out, nil
}

// GetSnapshot nil, nil si no existe.
func (r *StockRepository) GetSnapshot(_ context.Context, sku string) (*reorder.StockSnapshot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	s, ok := r.store.snapshots[sku]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

// AddStock suma qty al stock del SKU.
func (r *StockRepository) AddStock(_ context.Context, sku string, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: cantidad debe ser positiva", domain.ErrInvalidInput)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s, ok := r.store.snapshots[sku]
	if !ok {
		return fmt.Errorf("%w: SKU %s", domain.ErrNotFound, sku)
	}
	s.Stock += qty
	r.store.snapshots[sku] = s
	return nil
}

// SetUnitCost reemplaza el costo unitario del SKU.
func (r *StockRepository) SetUnitCost(_ context.Context, sku string, cost decimal.Decimal) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s, ok := r.store.snapshots[sku]
	if !ok {
		return fmt.Errorf("%w: SKU %s", domain.ErrNotFound, sku)
	}
	s.UnitCost = cost
	r.store.snapshots[sku] = s
	return nil
}

// RemoveStock resta qty; el stock nunca queda negativo.
func (r *StockRepository) RemoveStock(_ context.Context, sku string, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: cantidad debe ser positiva", domain.ErrInvalidInput)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s, ok := r.store.snapshots[sku]
	if !ok {
		return fmt.Errorf("%w: SKU %s", domain.ErrNotFound, sku)
	}
	if s.Stock < qty {
		return fmt.Errorf("%w: %s tiene %d, se piden %d", domain.ErrInsufficientStock, sku, s.Stock, qty)
	}
	s.Stock -= qty
	r.store.snapshots[sku] = s
	return nil
}

// UsageRepository historial de salidas en memoria.
type UsageRepository struct {
	store *Store
}

// NewUsageRepository crea el repositorio sobre store.
func NewUsageRepository(store *Store) *UsageRepository {
	return &UsageRepository{store: store}
}

var _ repository.UsageRepository = (*UsageRepository)(nil)

// ListIssuesSince salidas con fecha posterior a since.
func (r *UsageRepository) ListIssuesSince(_ context.Context, since time.Time) ([]reorder.IssueRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]reorder.IssueRecord, 0, len(r.store.issues))
	for _, is := range r.store.issues {
		if is.Date.After(since) {
			out = append(out, is)
		}
	}
	return out, nil
}

// Record agrega una salida al historial.
func (r *UsageRepository) Record(_ context.Context, is reorder.IssueRecord) error {
	if is.Quantity <= 0 {
		return fmt.Errorf("%w: cantidad debe ser positiva", domain.ErrInvalidInput)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.issues = append(r.store.issues, is)
	return nil
}
