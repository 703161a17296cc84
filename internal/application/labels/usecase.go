package labels

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/core-stock/internal/domain"
	"github.com/jhoicas/core-stock/internal/domain/repository"
)

// MaxLabels tope de etiquetas por hoja solicitada.
const MaxLabels = 200

// LabelsUseCase genera el PDF de etiquetas para una lista de SKUs.
type LabelsUseCase struct {
	stockRepo    repository.StockRepository
	supplierRepo repository.SupplierRepository
	generator    LabelGenerator
}

// NewLabelsUseCase construye el caso de uso inyectando el generador PDF.
func NewLabelsUseCase(
	stockRepo repository.StockRepository,
	supplierRepo repository.SupplierRepository,
	generator LabelGenerator,
) *LabelsUseCase {
	return &LabelsUseCase{
		stockRepo:    stockRepo,
		supplierRepo: supplierRepo,
		generator:    generator,
	}
}

// Generate una etiqueta por SKU (copies veces cada una, mínimo 1).
//
// Retorna:
//   - domain.ErrInvalidInput si no hay SKUs o se supera MaxLabels.
//   - domain.ErrNotFound     si algún SKU no existe.
func (uc *LabelsUseCase) Generate(ctx context.Context, skus []string, copies int) ([]byte, error) {
	if copies < 1 {
		copies = 1
	}
	cleaned := make([]string, 0, len(skus))
	for _, s := range skus {
		if s = strings.TrimSpace(s); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("%w: se requiere al menos un SKU", domain.ErrInvalidInput)
	}
	if len(cleaned)*copies > MaxLabels {
		return nil, fmt.Errorf("%w: máximo %d etiquetas por hoja", domain.ErrInvalidInput, MaxLabels)
	}

	supplierNames := make(map[string]string)
	labels := make([]Label, 0, len(cleaned)*copies)
	for _, sku := range cleaned {
		snap, err := uc.stockRepo.GetSnapshot(ctx, sku)
		if err != nil {
			return nil, fmt.Errorf("labels: obtener %s: %w", sku, err)
		}
		if snap == nil {
			return nil, fmt.Errorf("%w: SKU %s", domain.ErrNotFound, sku)
		}

		name, ok := supplierNames[snap.SupplierID]
		if !ok && uc.supplierRepo != nil {
			sup, err := uc.supplierRepo.GetByID(ctx, snap.SupplierID)
			if err != nil {
				return nil, fmt.Errorf("labels: obtener proveedor: %w", err)
			}
			if sup != nil {
				name = sup.Name
			}
			supplierNames[snap.SupplierID] = name
		}

		l := Label{
			SKU:          snap.SKU,
			Name:         snap.Name,
			SupplierName: name,
			Min:          snap.Min,
			PackSize:     snap.PackSize,
			UnitCost:     snap.UnitCost,
		}
		for i := 0; i < copies; i++ {
			labels = append(labels, l)
		}
	}

	return uc.generator.GenerateLabels(labels)
}
