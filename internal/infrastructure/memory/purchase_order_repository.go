package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/core-stock/internal/domain"
	"github.com/jhoicas/core-stock/internal/domain/entity"
	"github.com/jhoicas/core-stock/internal/domain/repository"
)

// PurchaseOrderRepository órdenes de compra en memoria.
type PurchaseOrderRepository struct {
	store *Store
}

// NewPurchaseOrderRepository crea el repositorio sobre store.
func NewPurchaseOrderRepository(store *Store) *PurchaseOrderRepository {
	return &PurchaseOrderRepository{store: store}
}

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepository)(nil)

// Create ErrConflict si el ID o el número ya existen.
func (r *PurchaseOrderRepository) Create(_ context.Context, po *entity.PurchaseOrder) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.orders[po.ID]; ok {
		return fmt.Errorf("%w: orden %s ya existe", domain.ErrConflict, po.ID)
	}
	for _, o := range r.store.orders {
		if o.Number == po.Number {
			return fmt.Errorf("%w: número %s ya existe", domain.ErrConflict, po.Number)
		}
	}
	r.store.orders[po.ID] = copyOrder(*po)
	return nil
}

// Update ErrNotFound si no existe.
func (r *PurchaseOrderRepository) Update(_ context.Context, po *entity.PurchaseOrder) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.orders[po.ID]; !ok {
		return fmt.Errorf("%w: orden %s", domain.ErrNotFound, po.ID)
	}
	r.store.orders[po.ID] = copyOrder(*po)
	return nil
}

func (r *PurchaseOrderRepository) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	po, ok := r.store.orders[id]
	if !ok {
		return nil, nil
	}
	po = copyOrder(po)
	return &po, nil
}

// List más recientes primero; desempate por número.
func (r *PurchaseOrderRepository) List(_ context.Context, f repository.PurchaseOrderFilter) ([]*entity.PurchaseOrder, error) {
	r.store.mu.RLock()
	matched := make([]*entity.PurchaseOrder, 0, len(r.store.orders))
	for _, po := range r.store.orders {
		if f.Status != "" && po.Status != f.Status {
			continue
		}
		if f.SupplierID != "" && po.SupplierID != f.SupplierID {
			continue
		}
		cp := copyOrder(po)
		matched = append(matched, &cp)
	}
	r.store.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].Number < matched[j].Number
	})
	return paginate(matched, f.Offset, f.Limit), nil
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// GoodsReceiptRepository recepciones en memoria.
type GoodsReceiptRepository struct {
	store *Store
}

// NewGoodsReceiptRepository crea el repositorio sobre store.
func NewGoodsReceiptRepository(store *Store) *GoodsReceiptRepository {
	return &GoodsReceiptRepository{store: store}
}

var _ repository.GoodsReceiptRepository = (*GoodsReceiptRepository)(nil)

func (r *GoodsReceiptRepository) Create(_ context.Context, gr *entity.GoodsReceipt) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.receipts[gr.ID]; ok {
		return fmt.Errorf("%w: recepción %s ya existe", domain.ErrConflict, gr.ID)
	}
	r.store.receipts[gr.ID] = copyReceipt(*gr)
	return nil
}

// ListByPurchaseOrder en orden cronológico.
func (r *GoodsReceiptRepository) ListByPurchaseOrder(_ context.Context, purchaseOrderID string) ([]*entity.GoodsReceipt, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]*entity.GoodsReceipt, 0)
	for _, gr := range r.store.receipts {
		if gr.PurchaseOrderID != purchaseOrderID {
			continue
		}
		cp := copyReceipt(gr)
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReceivedAt.Before(out[j].ReceivedAt) })
	return out, nil
}
