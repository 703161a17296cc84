package reorder

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/core-stock/internal/domain"
)

// demandWindowDays ventana de la demanda diaria: usage90 / 90.
const demandWindowDays = 90

// Valores por defecto; no cambiarlos sin decisión de producto.
const (
	DefaultExtraCoverDays = 14
	DefaultHistoryDays    = 120
)

// DefaultSafetyFactor fracción del lead time cubierta como stock de seguridad.
var DefaultSafetyFactor = decimal.NewFromFloat(0.5)

// Params constantes del cálculo.
type Params struct {
	SafetyFactor   decimal.Decimal // multiplicador de movingAvg*leadTime para el stock de seguridad
	ExtraCoverDays int             // días de cobertura adicional al pedir
	HistoryDays    int             // días de historial de salidas a considerar
}

// DefaultParams 0.5 / 14 días / 120 días.
func DefaultParams() Params {
	return Params{
		SafetyFactor:   DefaultSafetyFactor,
		ExtraCoverDays: DefaultExtraCoverDays,
		HistoryDays:    DefaultHistoryDays,
	}
}

// Validate rechaza parámetros que romperían la aritmética.
func (p Params) Validate() error {
	if p.SafetyFactor.IsNegative() {
		return fmt.Errorf("%w: safety factor negativo", domain.ErrInvalidInput)
	}
	if p.ExtraCoverDays < 0 {
		return fmt.Errorf("%w: extra cover days negativo", domain.ErrInvalidInput)
	}
	if p.HistoryDays < demandWindowDays {
		return fmt.Errorf("%w: history days debe ser >= %d", domain.ErrInvalidInput, demandWindowDays)
	}
	return nil
}
