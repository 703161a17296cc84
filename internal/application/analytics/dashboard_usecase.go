// Package analytics resumen operativo para el dashboard: reposición pendiente,
// órdenes abiertas y consumo del mes.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/core-stock/internal/application/dto"
	"github.com/jhoicas/core-stock/internal/domain/entity"
	"github.com/jhoicas/core-stock/internal/domain/reorder"
	"github.com/jhoicas/core-stock/internal/domain/repository"
)

const dashboardTopSKUs = 5 // número de SKUs en cada widget del dashboard

// SuggestionSource sugerencias de reorden calculadas al momento.
type SuggestionSource interface {
	Suggestions(ctx context.Context) ([]reorder.Suggestion, error)
}

// DashboardUseCase arma el resumen. Solo lectura.
type DashboardUseCase struct {
	suggestions SuggestionSource
	poRepo      repository.PurchaseOrderRepository
	usageRepo   repository.UsageRepository
	now         func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	suggestions SuggestionSource,
	poRepo repository.PurchaseOrderRepository,
	usageRepo repository.UsageRepository,
) *DashboardUseCase {
	return &DashboardUseCase{suggestions: suggestions, poRepo: poRepo, usageRepo: usageRepo, now: time.Now}
}

// WithClock fija el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetSummary tres consultas en paralelo:
//  1. Suggestions            → candidatos, costo de reposición, top por costo
//  2. List(órdenes)          → conteo por estado
//  3. ListIssuesSince(mes)   → unidades despachadas hoy / mes, top por unidades
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()

	// ── Rangos de fecha ────────────────────────────────────────────────────────
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	type suggestionsResult struct {
		list []reorder.Suggestion
		err  error
	}
	type ordersResult struct {
		list []*entity.PurchaseOrder
		err  error
	}
	type issuesResult struct {
		list []reorder.IssueRecord
		err  error
	}

	sugCh := make(chan suggestionsResult, 1)
	ordCh := make(chan ordersResult, 1)
	issCh := make(chan issuesResult, 1)

	go func() {
		list, err := uc.suggestions.Suggestions(ctx)
		sugCh <- suggestionsResult{list, err}
	}()
	go func() {
		list, err := uc.poRepo.List(ctx, repository.PurchaseOrderFilter{})
		ordCh <- ordersResult{list, err}
	}()
	go func() {
		// el instante exacto de inicio de mes también cuenta
		list, err := uc.usageRepo.ListIssuesSince(ctx, monthStart.Add(-time.Nanosecond))
		issCh <- issuesResult{list, err}
	}()

	sug := <-sugCh
	ord := <-ordCh
	iss := <-issCh

	if sug.err != nil {
		return nil, fmt.Errorf("dashboard: sugerencias: %w", sug.err)
	}
	if ord.err != nil {
		return nil, fmt.Errorf("dashboard: órdenes: %w", ord.err)
	}
	if iss.err != nil {
		return nil, fmt.Errorf("dashboard: salidas: %w", iss.err)
	}

	out := &dto.DashboardSummaryDTO{
		ReorderCost:    decimal.Zero,
		OrdersByStatus: make(map[string]int),
		DateLabel:      monthLabel(now),
	}

	names := make(map[string]string, len(sug.list))
	var reorderTop []dto.TopSKUDTO
	for _, s := range sug.list {
		names[s.SKU] = s.Name
		if !reorder.IsCandidate(s) {
			continue
		}
		out.Candidates++
		out.ReorderCost = out.ReorderCost.Add(s.EstimatedCost)
		reorderTop = append(reorderTop, dto.TopSKUDTO{SKU: s.SKU, Name: s.Name, Units: s.SuggestQty, Cost: s.EstimatedCost})
	}
	sort.Slice(reorderTop, func(i, j int) bool {
		if !reorderTop[i].Cost.Equal(reorderTop[j].Cost) {
			return reorderTop[i].Cost.GreaterThan(reorderTop[j].Cost)
		}
		return reorderTop[i].SKU < reorderTop[j].SKU
	})
	out.TopReorder = head(reorderTop, dashboardTopSKUs)

	for _, po := range ord.list {
		out.OrdersByStatus[po.Status]++
	}

	units := make(map[string]int)
	for _, is := range iss.list {
		if is.Date.After(now) {
			continue
		}
		out.MonthIssuedUnits += is.Quantity
		if !is.Date.Before(todayStart) {
			out.TodayIssuedUnits += is.Quantity
		}
		units[is.SKU] += is.Quantity
	}
	issuedTop := make([]dto.TopSKUDTO, 0, len(units))
	for sku, n := range units {
		issuedTop = append(issuedTop, dto.TopSKUDTO{SKU: sku, Name: names[sku], Units: n, Cost: decimal.Zero})
	}
	sort.Slice(issuedTop, func(i, j int) bool {
		if issuedTop[i].Units != issuedTop[j].Units {
			return issuedTop[i].Units > issuedTop[j].Units
		}
		return issuedTop[i].SKU < issuedTop[j].SKU
	})
	out.TopIssued = head(issuedTop, dashboardTopSKUs)
	return out, nil
}

func head(list []dto.TopSKUDTO, n int) []dto.TopSKUDTO {
	if list == nil {
		return []dto.TopSKUDTO{}
	}
	if len(list) > n {
		return list[:n]
	}
	return list
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Marzo 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
