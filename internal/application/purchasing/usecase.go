package purchasing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/core-stock/internal/application/dto"
	"github.com/jhoicas/core-stock/internal/domain"
	"github.com/jhoicas/core-stock/internal/domain/entity"
	"github.com/jhoicas/core-stock/internal/domain/inventory"
	"github.com/jhoicas/core-stock/internal/domain/reorder"
	"github.com/jhoicas/core-stock/internal/domain/repository"
	"github.com/jhoicas/core-stock/pkg/logger"
)

// PurchasingUseCase órdenes de compra generadas desde las sugerencias y su recepción.
type PurchasingUseCase struct {
	poRepo      repository.PurchaseOrderRepository
	receiptRepo repository.GoodsReceiptRepository
	suggestions SuggestionSource
	tx          TxRunner
	suppliers   repository.SupplierRepository
	documents   PurchaseOrderDocumentGenerator
	log         *logger.Logger
	now         func() time.Time
}

// NewPurchasingUseCase construye el caso de uso de compras.
func NewPurchasingUseCase(
	poRepo repository.PurchaseOrderRepository,
	receiptRepo repository.GoodsReceiptRepository,
	suggestions SuggestionSource,
	tx TxRunner,
	log *logger.Logger,
) *PurchasingUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &PurchasingUseCase{
		poRepo:      poRepo,
		receiptRepo: receiptRepo,
		suggestions: suggestions,
		tx:          tx,
		log:         log.WithComponent("purchasing"),
		now:         time.Now,
	}
}

// WithClock fija el reloj (tests).
func (uc *PurchasingUseCase) WithClock(now func() time.Time) *PurchasingUseCase {
	uc.now = now
	return uc
}

// WithDocuments habilita Document (PDF de la orden).
func (uc *PurchasingUseCase) WithDocuments(suppliers repository.SupplierRepository, gen PurchaseOrderDocumentGenerator) *PurchasingUseCase {
	uc.suppliers = suppliers
	uc.documents = gen
	return uc
}

// CreateDrafts crea una orden borrador por proveedor con candidatos a reorden.
// supplierIDs vacío = todos los proveedores. Los SKUs que ya figuran en una orden abierta
// (draft, ordered, partially_received) se omiten. ErrNothingToOrder si no queda ningún grupo.
func (uc *PurchasingUseCase) CreateDrafts(ctx context.Context, userID string, supplierIDs []string) ([]dto.PurchaseOrderResponse, error) {
	suggestions, err := uc.suggestions.Suggestions(ctx)
	if err != nil {
		return nil, err
	}
	open, err := uc.openSKUs(ctx)
	if err != nil {
		return nil, err
	}
	all := make([]reorder.Suggestion, 0, len(suggestions))
	for _, s := range suggestions {
		if !open[s.SKU] {
			all = append(all, s)
		}
	}

	wanted := make(map[string]bool, len(supplierIDs))
	for _, id := range supplierIDs {
		if id = strings.TrimSpace(id); id != "" {
			wanted[id] = true
		}
	}

	var groups []reorder.SupplierGroup
	for _, g := range reorder.GroupBySupplier(all) {
		if len(wanted) > 0 && !wanted[g.SupplierID] {
			continue
		}
		groups = append(groups, g)
	}
	if len(groups) == 0 {
		return nil, domain.ErrNothingToOrder
	}

	now := uc.now().UTC()
	orders := make([]*entity.PurchaseOrder, 0, len(groups))
	for _, g := range groups {
		orders = append(orders, draftFromGroup(g, userID, now))
	}

	err = uc.tx.Run(ctx, func(poRepo repository.PurchaseOrderRepository, _ repository.GoodsReceiptRepository, _ repository.StockRepository) error {
		for _, po := range orders {
			if err := poRepo.Create(ctx, po); err != nil {
				return fmt.Errorf("create purchase order %s: %w", po.Number, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]dto.PurchaseOrderResponse, 0, len(orders))
	for _, po := range orders {
		uc.log.Info().
			Str("po", po.Number).
			Str("supplier_id", po.SupplierID).
			Int("lines", len(po.Lines)).
			Msg("orden borrador creada")
		out = append(out, ToPurchaseOrderResponse(po))
	}
	return out, nil
}

// openSKUs SKUs presentes en órdenes que todavía pueden recibir mercancía.
func (uc *PurchasingUseCase) openSKUs(ctx context.Context) (map[string]bool, error) {
	out := make(map[string]bool)
	for _, status := range []string{entity.POStatusDraft, entity.POStatusOrdered, entity.POStatusPartiallyReceived} {
		list, err := uc.poRepo.List(ctx, repository.PurchaseOrderFilter{Status: status})
		if err != nil {
			return nil, fmt.Errorf("open purchase orders: %w", err)
		}
		for _, po := range list {
			for _, l := range po.Lines {
				out[l.SKU] = true
			}
		}
	}
	return out, nil
}

func draftFromGroup(g reorder.SupplierGroup, userID string, now time.Time) *entity.PurchaseOrder {
	id := uuid.New().String()
	lines := make([]entity.PurchaseOrderLine, 0, len(g.Lines))
	for _, s := range g.Lines {
		lines = append(lines, entity.PurchaseOrderLine{
			SKU:      s.SKU,
			Name:     s.Name,
			Quantity: s.SuggestQty,
			UnitCost: s.UnitCost,
		})
	}
	return &entity.PurchaseOrder{
		ID:         id,
		Number:     orderNumber(now, id),
		SupplierID: g.SupplierID,
		Status:     entity.POStatusDraft,
		Lines:      lines,
		CreatedBy:  userID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// orderNumber OC-YYYYMMDD-XXXXXXXX con el prefijo del uuid.
func orderNumber(now time.Time, id string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(id, "-", ""))
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return fmt.Sprintf("OC-%s-%s", now.Format("20060102"), suffix)
}

// List órdenes filtradas por estado y proveedor.
func (uc *PurchasingUseCase) List(ctx context.Context, status, supplierID string, page dto.PageRequest) (*dto.PurchaseOrderListResponse, error) {
	page = page.Normalize()
	if status != "" && !validStatus(status) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, status)
	}
	list, err := uc.poRepo.List(ctx, repository.PurchaseOrderFilter{
		Status:     status,
		SupplierID: supplierID,
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, po := range list {
		items = append(items, ToPurchaseOrderResponse(po))
	}
	return &dto.PurchaseOrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Returned: len(items)},
	}, nil
}

// Get orden por ID. ErrNotFound si no existe.
func (uc *PurchasingUseCase) Get(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	po, err := uc.poRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	resp := ToPurchaseOrderResponse(po)
	return &resp, nil
}

// Receipts recepciones de la orden en orden cronológico. ErrNotFound si la orden no existe.
func (uc *PurchasingUseCase) Receipts(ctx context.Context, id string) ([]dto.GoodsReceiptResponse, error) {
	po, err := uc.poRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.receiptRepo.ListByPurchaseOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.GoodsReceiptResponse, 0, len(list))
	for _, gr := range list {
		out = append(out, *toReceiptResponse(gr, po.Status))
	}
	return out, nil
}

// Document PDF de la orden y nombre de archivo sugerido.
// Un borrador anulado no se imprime: ErrInvalidTransition.
func (uc *PurchasingUseCase) Document(ctx context.Context, id string) ([]byte, string, error) {
	if uc.documents == nil {
		return nil, "", fmt.Errorf("document: generador no configurado")
	}
	po, err := uc.poRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if po == nil {
		return nil, "", domain.ErrNotFound
	}
	if po.Status == entity.POStatusCancelled {
		return nil, "", fmt.Errorf("%w: la orden %s está anulada", domain.ErrInvalidTransition, po.Number)
	}

	var supplier *entity.Supplier
	if uc.suppliers != nil {
		if supplier, err = uc.suppliers.GetByID(ctx, po.SupplierID); err != nil {
			return nil, "", fmt.Errorf("document: obtener proveedor: %w", err)
		}
	}
	pdfBytes, err := uc.documents.GeneratePurchaseOrderPDF(po, supplier)
	if err != nil {
		return nil, "", err
	}
	return pdfBytes, po.Number + ".pdf", nil
}

// Submit draft → ordered.
func (uc *PurchasingUseCase) Submit(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	return uc.transition(ctx, id, entity.POStatusOrdered)
}

// Cancel draft | ordered → cancelled.
func (uc *PurchasingUseCase) Cancel(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	return uc.transition(ctx, id, entity.POStatusCancelled)
}

func (uc *PurchasingUseCase) transition(ctx context.Context, id, to string) (*dto.PurchaseOrderResponse, error) {
	var updated *entity.PurchaseOrder
	err := uc.tx.Run(ctx, func(poRepo repository.PurchaseOrderRepository, _ repository.GoodsReceiptRepository, _ repository.StockRepository) error {
		po, err := poRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		if !entity.CanTransition(po.Status, to) {
			return fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, po.Status, to)
		}
		now := uc.now().UTC()
		po.Status = to
		po.UpdatedAt = now
		if to == entity.POStatusOrdered {
			po.SubmittedAt = &now
		}
		if err := poRepo.Update(ctx, po); err != nil {
			return err
		}
		updated = po
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("po", updated.Number).Str("status", to).Msg("orden actualizada")
	resp := ToPurchaseOrderResponse(updated)
	return &resp, nil
}

// Receive registra una recepción contra la orden y suma el stock de cada línea, todo en una tx.
// Sin líneas se recibe todo lo pendiente. Recibir más de lo pendiente o un SKU ajeno a la
// orden es ErrInvalidInput; una orden que no está ordered/partially_received es ErrInvalidTransition.
func (uc *PurchasingUseCase) Receive(ctx context.Context, id, userID string, lines []dto.ReceiveLineRequest) (*dto.GoodsReceiptResponse, error) {
	var (
		receipt *entity.GoodsReceipt
		status  string
	)
	err := uc.tx.Run(ctx, func(poRepo repository.PurchaseOrderRepository, receiptRepo repository.GoodsReceiptRepository, stockRepo repository.StockRepository) error {
		po, err := poRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		if po.Status != entity.POStatusOrdered && po.Status != entity.POStatusPartiallyReceived {
			return fmt.Errorf("%w: no se puede recibir una orden en estado %s", domain.ErrInvalidTransition, po.Status)
		}

		grLines, err := applyReceipt(po, lines)
		if err != nil {
			return err
		}

		next := entity.POStatusReceived
		for _, l := range po.Lines {
			if l.Outstanding() > 0 {
				next = entity.POStatusPartiallyReceived
				break
			}
		}
		if !entity.CanTransition(po.Status, next) {
			return fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, po.Status, next)
		}

		now := uc.now().UTC()
		po.Status = next
		po.UpdatedAt = now
		if err := poRepo.Update(ctx, po); err != nil {
			return err
		}

		gr := &entity.GoodsReceipt{
			ID:              uuid.New().String(),
			PurchaseOrderID: po.ID,
			Lines:           grLines,
			ReceivedBy:      userID,
			ReceivedAt:      now,
		}
		if err := receiptRepo.Create(ctx, gr); err != nil {
			return err
		}
		costs := make(map[string]decimal.Decimal, len(po.Lines))
		for _, l := range po.Lines {
			costs[l.SKU] = l.UnitCost
		}
		for _, l := range grLines {
			if err := receiveStock(ctx, stockRepo, l, costs[l.SKU]); err != nil {
				return err
			}
		}
		receipt = gr
		status = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("po_id", id).
		Str("receipt_id", receipt.ID).
		Str("status", status).
		Int("lines", len(receipt.Lines)).
		Msg("recepción registrada")
	return toReceiptResponse(receipt, status), nil
}

// receiveStock suma la cantidad recibida y revaloriza el SKU a costo promedio ponderado.
// Un costo de línea en cero no altera el costo del SKU.
func receiveStock(ctx context.Context, stockRepo repository.StockRepository, l entity.GoodsReceiptLine, unitCost decimal.Decimal) error {
	snap, err := stockRepo.GetSnapshot(ctx, l.SKU)
	if err != nil {
		return err
	}
	if snap == nil {
		return fmt.Errorf("add stock %s: %w", l.SKU, domain.ErrNotFound)
	}
	if err := stockRepo.AddStock(ctx, l.SKU, l.Quantity); err != nil {
		return fmt.Errorf("add stock %s: %w", l.SKU, err)
	}
	if !unitCost.IsPositive() {
		return nil
	}
	avg := inventory.WeightedAverageCost(snap.Stock, snap.UnitCost, l.Quantity, unitCost)
	if avg.Equal(snap.UnitCost) {
		return nil
	}
	return stockRepo.SetUnitCost(ctx, l.SKU, avg)
}

// applyReceipt valida las líneas contra lo pendiente y actualiza ReceivedQty en po.
// Los SKUs se comparan normalizados; líneas repetidas del mismo SKU se acumulan.
func applyReceipt(po *entity.PurchaseOrder, lines []dto.ReceiveLineRequest) ([]entity.GoodsReceiptLine, error) {
	idx := make(map[string]int, len(po.Lines))
	for i, l := range po.Lines {
		idx[reorder.NormalizeSKU(l.SKU)] = i
	}

	if len(lines) == 0 {
		for _, l := range po.Lines {
			if n := l.Outstanding(); n > 0 {
				lines = append(lines, dto.ReceiveLineRequest{SKU: l.SKU, Quantity: n})
			}
		}
		if len(lines) == 0 {
			return nil, fmt.Errorf("%w: la orden no tiene unidades pendientes", domain.ErrInvalidInput)
		}
	}

	qtyBySKU := make(map[string]int, len(lines))
	order := make([]string, 0, len(lines))
	for _, l := range lines {
		sku := reorder.NormalizeSKU(l.SKU)
		if l.Quantity <= 0 {
			return nil, fmt.Errorf("%w: cantidad debe ser positiva (%s)", domain.ErrInvalidInput, sku)
		}
		if _, ok := idx[sku]; !ok {
			return nil, fmt.Errorf("%w: el SKU %s no pertenece a la orden", domain.ErrInvalidInput, sku)
		}
		if _, seen := qtyBySKU[sku]; !seen {
			order = append(order, sku)
		}
		qtyBySKU[sku] += l.Quantity
	}

	out := make([]entity.GoodsReceiptLine, 0, len(order))
	for _, sku := range order {
		line := &po.Lines[idx[sku]]
		qty := qtyBySKU[sku]
		if qty > line.Outstanding() {
			return nil, fmt.Errorf("%w: %s: se reciben %d y quedan %d pendientes", domain.ErrInvalidInput, sku, qty, line.Outstanding())
		}
		line.ReceivedQty += qty
		out = append(out, entity.GoodsReceiptLine{SKU: line.SKU, Quantity: qty})
	}
	return out, nil
}

func validStatus(s string) bool {
	switch s {
	case entity.POStatusDraft, entity.POStatusOrdered, entity.POStatusPartiallyReceived,
		entity.POStatusReceived, entity.POStatusCancelled:
		return true
	}
	return false
}

// ToPurchaseOrderResponse mapea la entidad al DTO de salida.
func ToPurchaseOrderResponse(po *entity.PurchaseOrder) dto.PurchaseOrderResponse {
	lines := make([]dto.PurchaseOrderLineDTO, 0, len(po.Lines))
	for _, l := range po.Lines {
		lines = append(lines, dto.PurchaseOrderLineDTO{
			SKU:         l.SKU,
			Name:        l.Name,
			Quantity:    l.Quantity,
			ReceivedQty: l.ReceivedQty,
			Outstanding: l.Outstanding(),
			UnitCost:    l.UnitCost,
			Subtotal:    l.UnitCost.Mul(decimalFromInt(l.Quantity)),
		})
	}
	return dto.PurchaseOrderResponse{
		ID:          po.ID,
		Number:      po.Number,
		SupplierID:  po.SupplierID,
		Status:      po.Status,
		Total:       po.Total(),
		Lines:       lines,
		CreatedBy:   po.CreatedBy,
		CreatedAt:   po.CreatedAt,
		UpdatedAt:   po.UpdatedAt,
		SubmittedAt: po.SubmittedAt,
	}
}

func toReceiptResponse(gr *entity.GoodsReceipt, status string) *dto.GoodsReceiptResponse {
	lines := make([]dto.ReceiveLineRequest, 0, len(gr.Lines))
	for _, l := range gr.Lines {
		lines = append(lines, dto.ReceiveLineRequest{SKU: l.SKU, Quantity: l.Quantity})
	}
	return &dto.GoodsReceiptResponse{
		ID:              gr.ID,
		PurchaseOrderID: gr.PurchaseOrderID,
		Lines:           lines,
		ReceivedBy:      gr.ReceivedBy,
		ReceivedAt:      gr.ReceivedAt,
		OrderStatus:     status,
	}
}

func decimalFromInt(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }
