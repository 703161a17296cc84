package repository

import (
	"context"
	"time"

	"github.com/jhoicas/core-stock/internal/domain/reorder"
)

// UsageRepository lectura del historial de salidas (consumo) de stock.
type UsageRepository interface {
	// ListIssuesSince salidas con fecha posterior a since, de todos los SKUs.
	ListIssuesSince(ctx context.Context, since time.Time) ([]reorder.IssueRecord, error)
}

// IssueRecorder registra nuevas salidas; solo se usa dentro de transacciones.
type IssueRecorder interface {
	Record(ctx context.Context, is reorder.IssueRecord) error
}
