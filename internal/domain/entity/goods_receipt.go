package entity

import "time"

// GoodsReceipt recepción de mercancía contra una orden de compra.
type GoodsReceipt struct {
	ID              string
	PurchaseOrderID string
	Lines           []GoodsReceiptLine
	ReceivedBy      string
	ReceivedAt      time.Time
}

// GoodsReceiptLine cantidad recibida de un SKU.
type GoodsReceiptLine struct {
	SKU      string
	Quantity int
}
