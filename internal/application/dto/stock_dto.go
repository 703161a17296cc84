package dto

import "time"

// IssueLineRequest salida de un SKU.
type IssueLineRequest struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// IssueRequest body de POST /api/stock/issues. Todas las líneas se aplican o ninguna.
type IssueRequest struct {
	Lines []IssueLineRequest `json:"lines"`
}

// IssueLineResult stock resultante tras la salida.
type IssueLineResult struct {
	SKU        string `json:"sku"`
	Quantity   int    `json:"quantity"`
	StockAfter int    `json:"stock_after"`
}

// IssueResponse salida registrada.
type IssueResponse struct {
	IssuedBy string            `json:"issued_by"`
	IssuedAt time.Time         `json:"issued_at"`
	Lines    []IssueLineResult `json:"lines"`
}
