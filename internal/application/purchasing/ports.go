package purchasing

import (
	"context"

	"github.com/jhoicas/core-stock/internal/domain/entity"
	"github.com/jhoicas/core-stock/internal/domain/reorder"
	"github.com/jhoicas/core-stock/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción, con repositorios atados a esa tx.
// Si fn devuelve error no queda ningún cambio aplicado.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		poRepo repository.PurchaseOrderRepository,
		receiptRepo repository.GoodsReceiptRepository,
		stockRepo repository.StockRepository,
	) error) error
}

// SuggestionSource origen de las sugerencias de reorden (el caso de uso de reorder).
type SuggestionSource interface {
	Suggestions(ctx context.Context) ([]reorder.Suggestion, error)
}

// PurchaseOrderDocumentGenerator renderiza la orden de compra (PDF) para enviar al proveedor.
type PurchaseOrderDocumentGenerator interface {
	GeneratePurchaseOrderPDF(po *entity.PurchaseOrder, supplier *entity.Supplier) ([]byte, error)
}
