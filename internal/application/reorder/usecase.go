package reorder

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/core-stock/internal/application/dto"
	"github.com/jhoicas/core-stock/internal/domain/reorder"
	"github.com/jhoicas/core-stock/internal/domain/repository"
	"github.com/jhoicas/core-stock/pkg/logger"
)

// ReorderUseCase calcula las sugerencias de reposición a partir del stock actual y del
// historial de salidas. Las sugerencias no se persisten: cada consulta recalcula.
type ReorderUseCase struct {
	stockRepo    repository.StockRepository
	usageRepo    repository.UsageRepository
	supplierRepo repository.SupplierRepository
	exporter     SpreadsheetExporter
	params       reorder.Params
	log          *logger.Logger
	now          func() time.Time
}

// NewReorderUseCase construye el caso de uso. exporter puede ser nil si no se usa Export.
func NewReorderUseCase(
	stockRepo repository.StockRepository,
	usageRepo repository.UsageRepository,
	supplierRepo repository.SupplierRepository,
	exporter SpreadsheetExporter,
	params reorder.Params,
	log *logger.Logger,
) *ReorderUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ReorderUseCase{
		stockRepo:    stockRepo,
		usageRepo:    usageRepo,
		supplierRepo: supplierRepo,
		exporter:     exporter,
		params:       params,
		log:          log.WithComponent("reorder"),
		now:          time.Now,
	}
}

// WithClock fija el reloj (tests).
func (uc *ReorderUseCase) WithClock(now func() time.Time) *ReorderUseCase {
	uc.now = now
	return uc
}

// Suggestions calcula una sugerencia por SKU válido, ordenadas por SKU.
// Las filas que no pasan Validate se registran en el log y se omiten.
func (uc *ReorderUseCase) Suggestions(ctx context.Context) ([]reorder.Suggestion, error) {
	snaps, err := uc.stockRepo.ListSnapshots(ctx)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}

	valid := make([]reorder.StockSnapshot, 0, len(snaps))
	for _, s := range snaps {
		if err := s.Validate(); err != nil {
			uc.log.Warn().Err(err).Str("sku", s.SKU).Msg("snapshot inválido, se omite")
			continue
		}
		valid = append(valid, s)
	}

	asOf := uc.now()
	issues, err := uc.usageRepo.ListIssuesSince(ctx, asOf.AddDate(0, 0, -uc.params.HistoryDays))
	if err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}
	usage := reorder.AggregateUsage(issues, asOf, uc.params)

	out := reorder.ComputeSuggestions(valid, usage, uc.params)
	uc.log.Debug().
		Int("skus", len(out)).
		Int("candidates", len(reorder.Candidates(out))).
		Int("issues", len(issues)).
		Msg("sugerencias calculadas")
	return out, nil
}

// ListSuggestions todas las sugerencias, o solo los candidatos si onlyCandidates.
func (uc *ReorderUseCase) ListSuggestions(ctx context.Context, onlyCandidates bool) (*dto.ReorderListResponse, error) {
	all, err := uc.Suggestions(ctx)
	if err != nil {
		return nil, err
	}
	candidates := reorder.Candidates(all)

	rows := all
	if onlyCandidates {
		rows = candidates
	}
	return &dto.ReorderListResponse{
		Total:       len(all),
		Candidates:  len(candidates),
		Suggestions: toSuggestionDTOs(rows),
	}, nil
}

// GroupedBySupplier candidatos agrupados por proveedor, con el nombre del proveedor.
func (uc *ReorderUseCase) GroupedBySupplier(ctx context.Context) ([]dto.SupplierGroupDTO, error) {
	all, err := uc.Suggestions(ctx)
	if err != nil {
		return nil, err
	}
	return uc.toGroupDTOs(ctx, reorder.GroupBySupplier(all))
}

// Export hoja de cálculo con todas las sugerencias y el resumen por proveedor.
func (uc *ReorderUseCase) Export(ctx context.Context) ([]byte, error) {
	if uc.exporter == nil {
		return nil, fmt.Errorf("export: exportador no configurado")
	}
	all, err := uc.Suggestions(ctx)
	if err != nil {
		return nil, err
	}
	groups, err := uc.toGroupDTOs(ctx, reorder.GroupBySupplier(all))
	if err != nil {
		return nil, err
	}
	return uc.exporter.ExportSuggestions(toSuggestionDTOs(all), groups)
}

func (uc *ReorderUseCase) toGroupDTOs(ctx context.Context, groups []reorder.SupplierGroup) ([]dto.SupplierGroupDTO, error) {
	names := make(map[string]string)
	if uc.supplierRepo != nil {
		suppliers, err := uc.supplierRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list suppliers: %w", err)
		}
		for _, s := range suppliers {
			names[s.ID] = s.Name
		}
	}

	out := make([]dto.SupplierGroupDTO, 0, len(groups))
	for _, g := range groups {
		out = append(out, dto.SupplierGroupDTO{
			SupplierID:    g.SupplierID,
			SupplierName:  names[g.SupplierID],
			TotalUnits:    g.TotalUnits,
			EstimatedCost: g.EstimatedCost,
			Lines:         toSuggestionDTOs(g.Lines),
		})
	}
	return out, nil
}

func toSuggestionDTOs(in []reorder.Suggestion) []dto.ReorderSuggestionDTO {
	out := make([]dto.ReorderSuggestionDTO, 0, len(in))
	for _, s := range in {
		out = append(out, dto.ReorderSuggestionDTO{
			SKU:           s.SKU,
			Name:          s.Name,
			SupplierID:    s.SupplierID,
			Stock:         s.Stock,
			Min:           s.Min,
			PackSize:      s.PackSize,
			LeadTimeDays:  s.LeadTimeDays,
			Usage30:       s.Usage30,
			Usage90:       s.Usage90,
			MovingAvg:     s.MovingAvg,
			SafetyStock:   s.SafetyStock,
			ReorderPoint:  s.ReorderPoint,
			Projected:     s.Projected,
			SuggestQty:    s.SuggestQty,
			UnitCost:      s.UnitCost,
			EstimatedCost: s.EstimatedCost,
			Candidate:     reorder.IsCandidate(s),
		})
	}
	return out
}
