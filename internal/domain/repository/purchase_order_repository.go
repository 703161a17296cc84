package repository

import (
	"context"

	"github.com/jhoicas/core-stock/internal/domain/entity"
)

// PurchaseOrderFilter filtros de listado. Status vacío = todos.
type PurchaseOrderFilter struct {
	Status     string
	SupplierID string
	Limit      int
	Offset     int
}

// PurchaseOrderRepository persistencia de órdenes de compra (cabecera + líneas).
type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *entity.PurchaseOrder) error
	// Update reemplaza estado, fechas y cantidades recibidas de las líneas.
	Update(ctx context.Context, po *entity.PurchaseOrder) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	List(ctx context.Context, f PurchaseOrderFilter) ([]*entity.PurchaseOrder, error)
}

// GoodsReceiptRepository persistencia de recepciones de mercancía.
type GoodsReceiptRepository interface {
	Create(ctx context.Context, gr *entity.GoodsReceipt) error
	ListByPurchaseOrder(ctx context.Context, purchaseOrderID string) ([]*entity.GoodsReceipt, error)
}
