package dto

import "github.com/shopspring/decimal"

// TopSKUDTO SKU destacado en el dashboard.
type TopSKUDTO struct {
	SKU   string          `json:"sku"`
	Name  string          `json:"name,omitempty"`
	Units int             `json:"units"`
	Cost  decimal.Decimal `json:"cost"`
}

// DashboardSummaryDTO resumen de GET /api/dashboard.
type DashboardSummaryDTO struct {
	Candidates       int             `json:"candidates"`   // SKUs con cantidad sugerida
	ReorderCost      decimal.Decimal `json:"reorder_cost"` // costo estimado de reponer todos los candidatos
	TopReorder       []TopSKUDTO     `json:"top_reorder"`  // candidatos más costosos
	OrdersByStatus   map[string]int  `json:"orders_by_status"`
	TodayIssuedUnits int             `json:"today_issued_units"`
	MonthIssuedUnits int             `json:"month_issued_units"`
	TopIssued        []TopSKUDTO     `json:"top_issued"` // más despachados del mes
	DateLabel        string          `json:"date_label"`
}
