package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/core-stock/internal/domain"
	"github.com/jhoicas/core-stock/internal/domain/reorder"
	"github.com/jhoicas/core-stock/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const snapshotColumns = `sku, name, stock, min_qty, pack_size, lead_time_days, supplier_id, unit_cost`

func scanSnapshot(row pgx.Row) (reorder.StockSnapshot, error) {
	var s reorder.StockSnapshot
	err := row.Scan(&s.SKU, &s.Name, &s.Stock, &s.Min, &s.PackSize, &s.LeadTimeDays, &s.SupplierID, &s.UnitCost)
	return s, err
}

// ListSnapshots SKUs activos ordenados por SKU.
func (r *StockRepo) ListSnapshots(ctx context.Context) ([]reorder.StockSnapshot, error) {
	rows, err := r.q.Query(ctx, `SELECT `+snapshotColumns+` FROM stock_items WHERE active ORDER BY sku`)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var out []reorder.StockSnapshot
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetSnapshot nil, nil si el SKU no existe.
func (r *StockRepo) GetSnapshot(ctx context.Context, sku string) (*reorder.StockSnapshot, error) {
	s, err := scanSnapshot(r.q.QueryRow(ctx, `SELECT `+snapshotColumns+` FROM stock_items WHERE sku = $1`, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	return &s, nil
}

// AddStock suma qty en una sola sentencia (sin lectura previa).
func (r *StockRepo) AddStock(ctx context.Context, sku string, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: cantidad debe ser positiva", domain.ErrInvalidInput)
	}
	tag, err := r.q.Exec(ctx,
		`UPDATE stock_items SET stock = stock + $2, updated_at = now() WHERE sku = $1`, sku, qty)
	if err != nil {
		return fmt.Errorf("add stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: SKU %s", domain.ErrNotFound, sku)
	}
	return nil
}

// SetUnitCost reemplaza unit_cost (NUMERIC vía pgx-shopspring-decimal).
func (r *StockRepo) SetUnitCost(ctx context.Context, sku string, cost decimal.Decimal) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE stock_items SET unit_cost = $2, updated_at = now() WHERE sku = $1`, sku, cost)
	if err != nil {
		return fmt.Errorf("set unit cost: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: SKU %s", domain.ErrNotFound, sku)
	}
	return nil
}

// RemoveStock resta qty solo si alcanza; si no se actualizó nada distingue SKU
// inexistente de stock insuficiente.
func (r *StockRepo) RemoveStock(ctx context.Context, sku string, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: cantidad debe ser positiva", domain.ErrInvalidInput)
	}
	tag, err := r.q.Exec(ctx,
		`UPDATE stock_items SET stock = stock - $2, updated_at = now() WHERE sku = $1 AND stock >= $2`, sku, qty)
	if err != nil {
		return fmt.Errorf("remove stock: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	s, err := r.GetSnapshot(ctx, sku)
	if err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("%w: SKU %s", domain.ErrNotFound, sku)
	}
	return fmt.Errorf("%w: %s tiene %d, se piden %d", domain.ErrInsufficientStock, sku, s.Stock, qty)
}

// Upsert inserta o actualiza un SKU (importación de catálogo).
func (r *StockRepo) Upsert(ctx context.Context, s reorder.StockSnapshot) error {
	query := `
		INSERT INTO stock_items (` + snapshotColumns + `, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		ON CONFLICT (sku) DO UPDATE SET
			name = EXCLUDED.name, stock = EXCLUDED.stock, min_qty = EXCLUDED.min_qty,
			pack_size = EXCLUDED.pack_size, lead_time_days = EXCLUDED.lead_time_days,
			supplier_id = EXCLUDED.supplier_id, unit_cost = EXCLUDED.unit_cost,
			active = TRUE, updated_at = now()`
	_, err := r.q.Exec(ctx, query,
		s.SKU, s.Name, s.Stock, s.Min, s.PackSize, s.LeadTimeDays, s.SupplierID, s.UnitCost)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%w: proveedor %s no existe (SKU %s)", domain.ErrInvalidInput, s.SupplierID, s.SKU)
	}
	if err != nil {
		return fmt.Errorf("upsert stock item %s: %w", s.SKU, err)
	}
	return nil
}

var _ repository.UsageRepository = (*UsageRepo)(nil)

// UsageRepo historial de salidas (stock_issues).
type UsageRepo struct {
	q Querier
}

// NewUsageRepository construye el adaptador de consumo.
func NewUsageRepository(q Querier) *UsageRepo {
	return &UsageRepo{q: q}
}

// ListIssuesSince salidas con issued_at > since.
func (r *UsageRepo) ListIssuesSince(ctx context.Context, since time.Time) ([]reorder.IssueRecord, error) {
	rows, err := r.q.Query(ctx,
		`SELECT sku, issued_at, quantity FROM stock_issues WHERE issued_at > $1 ORDER BY issued_at`, since)
	if err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}
	defer rows.Close()

	var out []reorder.IssueRecord
	for rows.Next() {
		var is reorder.IssueRecord
		if err := rows.Scan(&is.SKU, &is.Date, &is.Quantity); err != nil {
			return nil, fmt.Errorf("scan issue: %w", err)
		}
		out = append(out, is)
	}
	return out, rows.Err()
}

// Record registra una salida.
func (r *UsageRepo) Record(ctx context.Context, is reorder.IssueRecord) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO stock_issues (sku, issued_at, quantity) VALUES ($1, $2, $3)`, is.SKU, is.Date, is.Quantity)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%w: SKU %s", domain.ErrNotFound, is.SKU)
	}
	if err != nil {
		return fmt.Errorf("record issue: %w", err)
	}
	return nil
}
