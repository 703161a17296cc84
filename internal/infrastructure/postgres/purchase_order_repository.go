package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/core-stock/internal/domain"
	"github.com/jhoicas/core-stock/internal/domain/entity"
	"github.com/jhoicas/core-stock/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo órdenes de compra (cabecera + líneas). Create y Update escriben varias
// tablas: llamarlos dentro de TxRunner.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const poColumns = `id, number, supplier_id, status, created_by, created_at, updated_at, submitted_at`

const poSelect = `id::text, number, supplier_id, status, created_by, created_at, updated_at, submitted_at`

func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO purchase_orders (`+poColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		po.ID, po.Number, po.SupplierID, po.Status, po.CreatedBy, po.CreatedAt, po.UpdatedAt, po.SubmittedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: orden %s", domain.ErrConflict, po.Number)
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	for i, l := range po.Lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO purchase_order_lines (purchase_order_id, line_no, sku, name, quantity, received_qty, unit_cost)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			po.ID, i+1, l.SKU, l.Name, l.Quantity, l.ReceivedQty, l.UnitCost,
		)
		if err != nil {
			return fmt.Errorf("insert purchase order line %s: %w", l.SKU, err)
		}
	}
	return nil
}

// Update reemplaza estado, fechas y received_qty de cada línea.
func (r *PurchaseOrderRepo) Update(ctx context.Context, po *entity.PurchaseOrder) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE purchase_orders SET status = $2, updated_at = $3, submitted_at = $4
		WHERE id = $1`,
		po.ID, po.Status, po.UpdatedAt, po.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: orden %s", domain.ErrNotFound, po.ID)
	}
	for _, l := range po.Lines {
		if _, err := r.q.Exec(ctx, `
			UPDATE purchase_order_lines SET received_qty = $3
			WHERE purchase_order_id = $1 AND sku = $2`,
			po.ID, l.SKU, l.ReceivedQty,
		); err != nil {
			return fmt.Errorf("update purchase order line %s: %w", l.SKU, err)
		}
	}
	return nil
}

func scanOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := row.Scan(&po.ID, &po.Number, &po.SupplierID, &po.Status, &po.CreatedBy,
		&po.CreatedAt, &po.UpdatedAt, &po.SubmittedAt)
	if err != nil {
		return nil, err
	}
	return &po, nil
}

// GetByID nil, nil si no existe o si id no es un UUID.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	po, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+poSelect+` FROM purchase_orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	if err := r.loadLines(ctx, []*entity.PurchaseOrder{po}); err != nil {
		return nil, err
	}
	return po, nil
}

func (r *PurchaseOrderRepo) List(ctx context.Context, f repository.PurchaseOrderFilter) ([]*entity.PurchaseOrder, error) {
	var (
		where []string
		args  []any
	)
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.SupplierID != "" {
		args = append(args, f.SupplierID)
		where = append(where, fmt.Sprintf("supplier_id = $%d", len(args)))
	}
	query := `SELECT ` + poSelect + ` FROM purchase_orders`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, number"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	var out []*entity.PurchaseOrder
	for rows.Next() {
		po, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		out = append(out, po)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadLines(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// loadLines carga las líneas de todas las órdenes con una sola consulta.
func (r *PurchaseOrderRepo) loadLines(ctx context.Context, orders []*entity.PurchaseOrder) error {
	if len(orders) == 0 {
		return nil
	}
	byID := make(map[string]*entity.PurchaseOrder, len(orders))
	ids := make([]string, 0, len(orders))
	for _, po := range orders {
		byID[po.ID] = po
		ids = append(ids, po.ID)
	}

	rows, err := r.q.Query(ctx, `
		SELECT purchase_order_id::text, sku, name, quantity, received_qty, unit_cost
		FROM purchase_order_lines
		WHERE purchase_order_id = ANY($1::uuid[])
		ORDER BY purchase_order_id, line_no`, ids)
	if err != nil {
		return fmt.Errorf("list purchase order lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			poID string
			l    entity.PurchaseOrderLine
		)
		if err := rows.Scan(&poID, &l.SKU, &l.Name, &l.Quantity, &l.ReceivedQty, &l.UnitCost); err != nil {
			return fmt.Errorf("scan purchase order line: %w", err)
		}
		if po, ok := byID[poID]; ok {
			po.Lines = append(po.Lines, l)
		}
	}
	return rows.Err()
}

var _ repository.GoodsReceiptRepository = (*GoodsReceiptRepo)(nil)

// GoodsReceiptRepo recepciones de mercancía.
type GoodsReceiptRepo struct {
	q Querier
}

// NewGoodsReceiptRepository construye el adaptador. Pasar pool o tx (Querier).
func NewGoodsReceiptRepository(q Querier) *GoodsReceiptRepo {
	return &GoodsReceiptRepo{q: q}
}

func (r *GoodsReceiptRepo) Create(ctx context.Context, gr *entity.GoodsReceipt) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO goods_receipts (id, purchase_order_id, received_by, received_at)
		VALUES ($1, $2, $3, $4)`,
		gr.ID, gr.PurchaseOrderID, gr.ReceivedBy, gr.ReceivedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: recepción %s", domain.ErrConflict, gr.ID)
		}
		return fmt.Errorf("insert goods receipt: %w", err)
	}
	for _, l := range gr.Lines {
		if _, err := r.q.Exec(ctx,
			`INSERT INTO goods_receipt_lines (goods_receipt_id, sku, quantity) VALUES ($1, $2, $3)`,
			gr.ID, l.SKU, l.Quantity,
		); err != nil {
			return fmt.Errorf("insert goods receipt line %s: %w", l.SKU, err)
		}
	}
	return nil
}

func (r *GoodsReceiptRepo) ListByPurchaseOrder(ctx context.Context, purchaseOrderID string) ([]*entity.GoodsReceipt, error) {
	if _, err := uuid.Parse(purchaseOrderID); err != nil {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT gr.id::text, gr.purchase_order_id::text, gr.received_by, gr.received_at, l.sku, l.quantity
		FROM goods_receipts gr
		JOIN goods_receipt_lines l ON l.goods_receipt_id = gr.id
		WHERE gr.purchase_order_id = $1
		ORDER BY gr.received_at, gr.id, l.sku`, purchaseOrderID)
	if err != nil {
		return nil, fmt.Errorf("list goods receipts: %w", err)
	}
	defer rows.Close()

	var (
		out  []*entity.GoodsReceipt
		last *entity.GoodsReceipt
	)
	for rows.Next() {
		var (
			gr entity.GoodsReceipt
			l  entity.GoodsReceiptLine
		)
		if err := rows.Scan(&gr.ID, &gr.PurchaseOrderID, &gr.ReceivedBy, &gr.ReceivedAt, &l.SKU, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan goods receipt: %w", err)
		}
		if last == nil || last.ID != gr.ID {
			last = &gr
			out = append(out, last)
		}
		last.Lines = append(last.Lines, l)
	}
	return out, rows.Err()
}
