package entity

// Supplier proveedor al que se emiten órdenes de compra.
type Supplier struct {
	ID           string
	Name         string
	Email        string
	LeadTimeDays int // lead time por defecto de sus SKUs
}
