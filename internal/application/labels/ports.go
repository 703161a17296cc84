package labels

import "github.com/shopspring/decimal"

// Label datos impresos en una etiqueta de estantería.
type Label struct {
	SKU          string
	Name         string
	SupplierName string
	Min          int
	PackSize     int
	UnitCost     decimal.Decimal
}

// LabelGenerator renderiza una hoja A4 de etiquetas (cada una con QR del SKU).
type LabelGenerator interface {
	GenerateLabels(labels []Label) ([]byte, error)
}
