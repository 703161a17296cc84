package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDraftsRequest body de POST /api/purchase-orders/drafts.
// supplier_ids vacío = un borrador por cada proveedor con candidatos.
type CreateDraftsRequest struct {
	SupplierIDs []string `json:"supplier_ids,omitempty"`
}

// ReceiveLineRequest cantidad recibida de un SKU.
type ReceiveLineRequest struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// ReceiveRequest body de POST /api/purchase-orders/:id/receive.
// Sin líneas se recibe todo lo pendiente.
type ReceiveRequest struct {
	Lines []ReceiveLineRequest `json:"lines,omitempty"`
}

// PurchaseOrderLineDTO línea de orden de compra.
type PurchaseOrderLineDTO struct {
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Quantity    int             `json:"quantity"`
	ReceivedQty int             `json:"received_qty"`
	Outstanding int             `json:"outstanding"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// PurchaseOrderResponse orden de compra.
type PurchaseOrderResponse struct {
	ID          string                 `json:"id"`
	Number      string                 `json:"number"`
	SupplierID  string                 `json:"supplier_id"`
	Status      string                 `json:"status"`
	Total       decimal.Decimal        `json:"total"`
	Lines       []PurchaseOrderLineDTO `json:"lines"`
	CreatedBy   string                 `json:"created_by"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	SubmittedAt *time.Time             `json:"submitted_at,omitempty"`
}

// PurchaseOrderListResponse listado paginado.
type PurchaseOrderListResponse struct {
	Items []PurchaseOrderResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// GoodsReceiptResponse recepción registrada.
type GoodsReceiptResponse struct {
	ID              string               `json:"id"`
	PurchaseOrderID string               `json:"purchase_order_id"`
	Lines           []ReceiveLineRequest `json:"lines"`
	ReceivedBy      string               `json:"received_by"`
	ReceivedAt      time.Time            `json:"received_at"`
	OrderStatus     string               `json:"order_status"`
}
