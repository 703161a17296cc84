package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/core-stock/internal/domain/reorder"
)

// StockRepository puerto de lectura/actualización del stock por SKU.
// Usado dentro de transacciones (recepciones) para garantizar consistencia.
type StockRepository interface {
	// ListSnapshots devuelve la foto de todos los SKUs activos, ordenados por SKU.
	ListSnapshots(ctx context.Context) ([]reorder.StockSnapshot, error)
	// GetSnapshot devuelve nil, nil si el SKU no existe.
	GetSnapshot(ctx context.Context, sku string) (*reorder.StockSnapshot, error)
	// AddStock suma qty (positivo) al stock del SKU. ErrNotFound si no existe.
	AddStock(ctx context.Context, sku string, qty int) error
	// SetUnitCost reemplaza el costo unitario. ErrNotFound si no existe.
	SetUnitCost(ctx context.Context, sku string, cost decimal.Decimal) error
	// RemoveStock resta qty (positivo). ErrInsufficientStock si el stock no alcanza.
	RemoveStock(ctx context.Context, sku string, qty int) error
}
