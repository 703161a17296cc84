package dto

// LabelRequest body de POST /api/labels.
type LabelRequest struct {
	SKUs   []string `json:"skus"`
	Copies int      `json:"copies,omitempty"` // por SKU; 0 = 1
}
