package memory

import (
	"context"

	"github.com/jhoicas/core-stock/internal/application/inventory"
	"github.com/jhoicas/core-stock/internal/application/purchasing"
	"github.com/jhoicas/core-stock/internal/domain/repository"
)

// TxRunner serializa las "transacciones" en memoria: guarda una copia del estado mutable
// y la restaura si fn falla. Lecturas concurrentes fuera de la tx pueden ver estado intermedio.
type TxRunner struct {
	store *Store
}

// NewTxRunner crea el runner sobre store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

var (
	_ purchasing.TxRunner     = (*TxRunner)(nil)
	_ inventory.IssueTxRunner = (*TxRunner)(nil)
)

// Run ejecuta fn; si devuelve error (o ctx está cancelado) se revierte todo.
func (t *TxRunner) Run(ctx context.Context, fn func(
	poRepo repository.PurchaseOrderRepository,
	receiptRepo repository.GoodsReceiptRepository,
	stockRepo repository.StockRepository,
) error) error {
	return t.atomically(ctx, func() error {
		return fn(
			NewPurchaseOrderRepository(t.store),
			NewGoodsReceiptRepository(t.store),
			NewStockRepository(t.store),
		)
	})
}

// RunIssue igual que Run, para salidas de stock.
func (t *TxRunner) RunIssue(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	issues repository.IssueRecorder,
) error) error {
	return t.atomically(ctx, func() error {
		return fn(NewStockRepository(t.store), NewUsageRepository(t.store))
	})
}

func (t *TxRunner) atomically(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.store.txMu.Lock()
	defer t.store.txMu.Unlock()

	saved := t.store.save()
	err := fn()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		t.store.restore(saved)
		return err
	}
	return nil
}
