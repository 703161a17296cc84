package reorder

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// MovingAverage demanda diaria = max(1, round(usage90 / 90)).
// El piso de 1 evita pedidos nulos en repuestos de uso esporádico.
func MovingAverage(usage90 int) int {
	avg := decimal.NewFromInt(int64(usage90)).
		Div(decimal.NewFromInt(demandWindowDays)).
		Round(0).
		IntPart()
	if avg < 1 {
		return 1
	}
	return int(avg)
}

// SafetyStock ceil(movingAvg * leadTimeDays * factor).
func SafetyStock(movingAvg, leadTimeDays int, factor decimal.Decimal) int {
	return int(decimal.NewFromInt(int64(movingAvg * leadTimeDays)).Mul(factor).Ceil().IntPart())
}

// RoundUpToPack redondea x hacia arriba al múltiplo de pack, con piso de un pack.
// Para x <= 0 devuelve pack. pack < 1 se trata como 1.
func RoundUpToPack(x, pack int) int {
	if pack < 1 {
		pack = 1
	}
	if x <= 0 {
		return pack
	}
	return (x + pack - 1) / pack * pack
}

// Compute calcula la sugerencia de un SKU:
//
//	movingAvg    = max(1, round(usage90/90))
//	safetyStock  = ceil(movingAvg * leadTime * SafetyFactor)
//	reorderPoint = min + safetyStock
//	projected    = stock - movingAvg * leadTime
//	needed       = reorderPoint - projected + movingAvg * ExtraCoverDays
//	suggestQty   = projected < reorderPoint ? RoundUpToPack(needed, pack) : 0
//
// No valida la entrada: valores negativos se propagan por la aritmética.
func Compute(s StockSnapshot, u UsageAggregate, p Params) Suggestion {
	avg := MovingAverage(u.Usage90)
	safety := SafetyStock(avg, s.LeadTimeDays, p.SafetyFactor)
	rop := s.Min + safety
	projected := s.Stock - avg*s.LeadTimeDays

	qty := 0
	if projected < rop {
		needed := rop - projected + avg*p.ExtraCoverDays
		qty = RoundUpToPack(needed, s.PackSize)
	}

	return Suggestion{
		SKU:           s.SKU,
		Name:          s.Name,
		SupplierID:    s.SupplierID,
		Stock:         s.Stock,
		Min:           s.Min,
		PackSize:      s.PackSize,
		LeadTimeDays:  s.LeadTimeDays,
		Usage30:       u.Usage30,
		Usage90:       u.Usage90,
		MovingAvg:     avg,
		SafetyStock:   safety,
		ReorderPoint:  rop,
		Projected:     projected,
		SuggestQty:    qty,
		UnitCost:      s.UnitCost,
		EstimatedCost: s.UnitCost.Mul(decimal.NewFromInt(int64(qty))),
	}
}

// ComputeSuggestions una sugerencia por snapshot, en el orden de entrada.
// Un SKU sin consumo registrado usa el agregado cero (movingAvg = 1).
func ComputeSuggestions(snapshots []StockSnapshot, usage map[string]UsageAggregate, p Params) []Suggestion {
	out := make([]Suggestion, 0, len(snapshots))
	for _, s := range snapshots {
		out = append(out, Compute(s, usage[s.SKU], p))
	}
	return out
}

// IsCandidate regla única de candidato a reorden: SuggestQty > 0.
// (stock < min ya implica projected < reorderPoint, así que no hace falta otra condición.)
func IsCandidate(s Suggestion) bool {
	return s.SuggestQty > 0
}

// Candidates filtra las sugerencias con IsCandidate, preservando el orden.
func Candidates(all []Suggestion) []Suggestion {
	out := make([]Suggestion, 0, len(all))
	for _, s := range all {
		if IsCandidate(s) {
			out = append(out, s)
		}
	}
	return out
}

// AggregateUsage suma las salidas por SKU en las ventanas (asOf-30d, asOf] y (asOf-90d, asOf].
// Se ignoran salidas futuras, anteriores a HistoryDays y cantidades no positivas.
func AggregateUsage(issues []IssueRecord, asOf time.Time, p Params) map[string]UsageAggregate {
	from30 := asOf.AddDate(0, 0, -30)
	from90 := asOf.AddDate(0, 0, -demandWindowDays)
	historyDays := p.HistoryDays
	if historyDays < demandWindowDays {
		historyDays = demandWindowDays
	}
	fromHistory := asOf.AddDate(0, 0, -historyDays)

	out := make(map[string]UsageAggregate)
	for _, is := range issues {
		if is.Quantity <= 0 || is.Date.After(asOf) || !is.Date.After(fromHistory) {
			continue
		}
		agg := out[is.SKU]
		if is.Date.After(from90) {
			agg.Usage90 += is.Quantity
		}
		if is.Date.After(from30) {
			agg.Usage30 += is.Quantity
		}
		out[is.SKU] = agg
	}
	return out
}

// GroupBySupplier agrupa los candidatos por proveedor. Grupos ordenados por SupplierID
// y líneas por SKU; las sugerencias con SuggestQty = 0 se descartan.
func GroupBySupplier(suggestions []Suggestion) []SupplierGroup {
	bySupplier := make(map[string]*SupplierGroup)
	for _, s := range suggestions {
		if !IsCandidate(s) {
			continue
		}
		g, ok := bySupplier[s.SupplierID]
		if !ok {
			g = &SupplierGroup{SupplierID: s.SupplierID, EstimatedCost: decimal.Zero}
			bySupplier[s.SupplierID] = g
		}
		g.Lines = append(g.Lines, s)
		g.TotalUnits += s.SuggestQty
		g.EstimatedCost = g.EstimatedCost.Add(s.EstimatedCost)
	}

	groups := make([]SupplierGroup, 0, len(bySupplier))
	for _, g := range bySupplier {
		sort.Slice(g.Lines, func(i, j int) bool { return g.Lines[i].SKU < g.Lines[j].SKU })
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].SupplierID < groups[j].SupplierID })
	return groups
}
