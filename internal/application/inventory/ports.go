package inventory

import (
	"context"

	"github.com/jhoicas/core-stock/internal/domain/repository"
)

// IssueTxRunner ejecuta fn dentro de una transacción. Si fn retorna error se hace Rollback.
// Los repositorios recibidos operan sobre la misma transacción.
type IssueTxRunner interface {
	RunIssue(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		issues repository.IssueRecorder,
	) error) error
}
