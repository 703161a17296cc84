package dto

import "github.com/shopspring/decimal"

// ReorderSuggestionDTO sugerencia de reposición para un SKU.
type ReorderSuggestionDTO struct {
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	SupplierID    string          `json:"supplier_id"`
	Stock         int             `json:"stock"`
	Min           int             `json:"min"`
	PackSize      int             `json:"pack_size"`
	LeadTimeDays  int             `json:"lead_time_days"`
	Usage30       int             `json:"usage_30"`
	Usage90       int             `json:"usage_90"`
	MovingAvg     int             `json:"moving_avg"`     // demanda diaria estimada
	SafetyStock   int             `json:"safety_stock"`   // ceil(avg * lead * factor)
	ReorderPoint  int             `json:"reorder_point"`  // min + safety
	Projected     int             `json:"projected"`      // stock al final del lead time
	SuggestQty    int             `json:"suggest_qty"`    // múltiplo de pack_size, 0 si no hace falta
	UnitCost      decimal.Decimal `json:"unit_cost"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"` // suggest_qty * unit_cost
	Candidate     bool            `json:"candidate"`
}

// ReorderListResponse salida de GET /api/reorder/suggestions.
type ReorderListResponse struct {
	Total       int                    `json:"total"`
	Candidates  int                    `json:"candidates"`
	Suggestions []ReorderSuggestionDTO `json:"suggestions"`
}

// SupplierGroupDTO candidatos de un proveedor (GET /api/reorder/suggestions/by-supplier).
type SupplierGroupDTO struct {
	SupplierID    string                 `json:"supplier_id"`
	SupplierName  string                 `json:"supplier_name"`
	TotalUnits    int                    `json:"total_units"`
	EstimatedCost decimal.Decimal        `json:"estimated_cost"`
	Lines         []ReorderSuggestionDTO `json:"lines"`
}
