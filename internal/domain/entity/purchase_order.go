package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
//
//	draft → ordered → partially_received → received
//	draft | ordered → cancelled
const (
	POStatusDraft             = "draft"
	POStatusOrdered           = "ordered"
	POStatusPartiallyReceived = "partially_received"
	POStatusReceived          = "received"
	POStatusCancelled         = "cancelled"
)

// PurchaseOrder orden de compra a un proveedor. Los borradores nacen de las sugerencias de reorden.
type PurchaseOrder struct {
	ID          string
	Number      string // consecutivo legible, ej. OC-20260314-0001
	SupplierID  string
	Status      string
	Lines       []PurchaseOrderLine
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	SubmittedAt *time.Time
}

// PurchaseOrderLine línea de la orden.
type PurchaseOrderLine struct {
	SKU         string
	Name        string
	Quantity    int
	ReceivedQty int
	UnitCost    decimal.Decimal
}

// Outstanding unidades pendientes por recibir.
func (l PurchaseOrderLine) Outstanding() int {
	if l.ReceivedQty >= l.Quantity {
		return 0
	}
	return l.Quantity - l.ReceivedQty
}

// Total costo estimado de la orden.
func (po *PurchaseOrder) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range po.Lines {
		total = total.Add(l.UnitCost.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

// CanTransition transiciones legales del ciclo de vida.
func CanTransition(from, to string) bool {
	switch from {
	case POStatusDraft:
		return to == POStatusOrdered || to == POStatusCancelled
	case POStatusOrdered:
		return to == POStatusPartiallyReceived || to == POStatusReceived || to == POStatusCancelled
	case POStatusPartiallyReceived:
		return to == POStatusPartiallyReceived || to == POStatusReceived
	default:
		return false
	}
}
