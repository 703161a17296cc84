package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/core-stock/internal/application/dto"
	"github.com/jhoicas/core-stock/internal/domain"
	"github.com/jhoicas/core-stock/internal/domain/reorder"
	"github.com/jhoicas/core-stock/internal/domain/repository"
	"github.com/jhoicas/core-stock/pkg/logger"
)

// IssueStockUseCase registra salidas de stock (despachos, consumo interno).
// Cada salida resta stock y queda en el historial que alimenta las sugerencias de reorden.
type IssueStockUseCase struct {
	txRunner IssueTxRunner
	log      *logger.Logger
	now      func() time.Time
}

// NewIssueStockUseCase construye el caso de uso.
func NewIssueStockUseCase(txRunner IssueTxRunner, log *logger.Logger) *IssueStockUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &IssueStockUseCase{txRunner: txRunner, log: log.WithComponent("inventory"), now: time.Now}
}

// WithClock fija el reloj (tests).
func (uc *IssueStockUseCase) WithClock(now func() time.Time) *IssueStockUseCase {
	uc.now = now
	return uc
}

// Issue aplica todas las líneas en una transacción; líneas repetidas del mismo SKU se suman.
//
// Retorna:
//   - domain.ErrInvalidInput      sin líneas, SKU vacío o cantidad <= 0.
//   - domain.ErrNotFound          si algún SKU no existe.
//   - domain.ErrInsufficientStock si el stock de algún SKU no alcanza (no se aplica nada).
func (uc *IssueStockUseCase) Issue(ctx context.Context, userID string, lines []dto.IssueLineRequest) (*dto.IssueResponse, error) {
	merged, err := mergeLines(lines)
	if err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	out := &dto.IssueResponse{IssuedBy: userID, IssuedAt: now}

	err = uc.txRunner.RunIssue(ctx, func(stockRepo repository.StockRepository, issues repository.IssueRecorder) error {
		out.Lines = out.Lines[:0]
		for _, l := range merged {
			if err := stockRepo.RemoveStock(ctx, l.SKU, l.Quantity); err != nil {
				return err
			}
			if err := issues.Record(ctx, reorder.IssueRecord{SKU: l.SKU, Date: now, Quantity: l.Quantity}); err != nil {
				return err
			}
			snap, err := stockRepo.GetSnapshot(ctx, l.SKU)
			if err != nil {
				return err
			}
			after := 0
			if snap != nil {
				after = snap.Stock
			}
			out.Lines = append(out.Lines, dto.IssueLineResult{SKU: l.SKU, Quantity: l.Quantity, StockAfter: after})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", userID).Int("lines", len(out.Lines)).Msg("salida de stock registrada")
	return out, nil
}

// mergeLines normaliza SKUs y acumula repetidos conservando el orden de aparición.
func mergeLines(lines []dto.IssueLineRequest) ([]dto.IssueLineRequest, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: sin líneas", domain.ErrInvalidInput)
	}
	pos := make(map[string]int, len(lines))
	var out []dto.IssueLineRequest
	for _, l := range lines {
		sku := reorder.NormalizeSKU(l.SKU)
		if sku == "" {
			return nil, fmt.Errorf("%w: sku vacío", domain.ErrInvalidInput)
		}
		if l.Quantity <= 0 {
			return nil, fmt.Errorf("%w: %s: cantidad debe ser positiva", domain.ErrInvalidInput, sku)
		}
		if i, ok := pos[sku]; ok {
			out[i].Quantity += l.Quantity
			continue
		}
		pos[sku] = len(out)
		out = append(out, dto.IssueLineRequest{SKU: sku, Quantity: l.Quantity})
	}
	return out, nil
}
