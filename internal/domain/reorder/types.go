// Package reorder calcula sugerencias de reposición por SKU a partir de una foto del
// stock y del consumo histórico. Todo es aritmética pura sobre valores: sin I/O,
// sin estado compartido, mismo resultado para la misma entrada.
package reorder

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/core-stock/internal/domain"
)

// StockSnapshot foto del stock de un SKU en el momento del cálculo.
type StockSnapshot struct {
	SKU          string
	Name         string
	Stock        int
	Min          int
	PackSize     int // múltiplo mínimo de compra
	LeadTimeDays int
	SupplierID   string
	UnitCost     decimal.Decimal
}

// NormalizeSKU forma canónica de un SKU: sin espacios alrededor y en mayúsculas.
func NormalizeSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}

// Validate controla los invariantes de entrada. Compute no la invoca: se usa en los
// bordes (repositorios, importación) para descartar filas corruptas.
func (s StockSnapshot) Validate() error {
	switch {
	case s.SKU == "":
		return fmt.Errorf("%w: sku vacío", domain.ErrInvalidInput)
	case s.Stock < 0:
		return fmt.Errorf("%w: %s: stock negativo (%d)", domain.ErrInvalidInput, s.SKU, s.Stock)
	case s.Min < 0:
		return fmt.Errorf("%w: %s: mínimo negativo (%d)", domain.ErrInvalidInput, s.SKU, s.Min)
	case s.PackSize < 1:
		return fmt.Errorf("%w: %s: pack_size debe ser >= 1 (%d)", domain.ErrInvalidInput, s.SKU, s.PackSize)
	case s.LeadTimeDays < 0:
		return fmt.Errorf("%w: %s: lead time negativo (%d)", domain.ErrInvalidInput, s.SKU, s.LeadTimeDays)
	case s.UnitCost.IsNegative():
		return fmt.Errorf("%w: %s: costo unitario negativo", domain.ErrInvalidInput, s.SKU)
	}
	return nil
}

// UsageAggregate consumo acumulado de un SKU en los últimos 30 y 90 días.
type UsageAggregate struct {
	Usage30 int
	Usage90 int
}

// IssueRecord una salida (consumo) de stock.
type IssueRecord struct {
	SKU      string
	Date     time.Time
	Quantity int
}

// Suggestion resultado derivado del cálculo; se recalcula en cada consulta y nunca se persiste.
type Suggestion struct {
	SKU           string
	Name          string
	SupplierID    string
	Stock         int
	Min           int
	PackSize      int
	LeadTimeDays  int
	Usage30       int
	Usage90       int
	MovingAvg     int // demanda diaria estimada
	SafetyStock   int
	ReorderPoint  int
	Projected     int // stock esperado al final del lead time sin reposición
	SuggestQty    int
	UnitCost      decimal.Decimal
	EstimatedCost decimal.Decimal // SuggestQty * UnitCost
}

// SupplierGroup candidatos de un mismo proveedor, base de una orden de compra borrador.
type SupplierGroup struct {
	SupplierID    string
	Lines         []Suggestion
	TotalUnits    int
	EstimatedCost decimal.Decimal
}
