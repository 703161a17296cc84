package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/core-stock/internal/application/analytics"
	"github.com/jhoicas/core-stock/internal/domain/entity"
	"github.com/jhoicas/core-stock/internal/domain/reorder"
	"github.com/jhoicas/core-stock/internal/infrastructure/memory"
)

var now = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

type staticSuggestions struct {
	list []reorder.Suggestion
	err  error
}

func (s staticSuggestions) Suggestions(context.Context) ([]reorder.Suggestion, error) {
	return s.list, s.err
}

func newDashboard(t *testing.T, src staticSuggestions) *analytics.DashboardUseCase {
	t.Helper()
	st := memory.NewStore()
	monthStart := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	st.AddIssues(
		reorder.IssueRecord{SKU: "A", Date: now.Add(-2 * time.Hour), Quantity: 4},
		reorder.IssueRecord{SKU: "B", Date: now.AddDate(0, 0, -3), Quantity: 10},
		reorder.IssueRecord{SKU: "A", Date: monthStart, Quantity: 1},
		reorder.IssueRecord{SKU: "C", Date: now.AddDate(0, -1, 0), Quantity: 99}, // mes anterior
	)
	poRepo := memory.NewPurchaseOrderRepository(st)
	for i, status := range []string{entity.POStatusDraft, entity.POStatusOrdered, entity.POStatusOrdered} {
		require.NoError(t, poRepo.Create(context.Background(), &entity.PurchaseOrder{
			ID: string(rune('a' + i)), Number: string(rune('A' + i)), SupplierID: "S1", Status: status, CreatedAt: now,
		}))
	}
	return analytics.NewDashboardUseCase(src, poRepo, memory.NewUsageRepository(st)).
		WithClock(func() time.Time { return now })
}

func TestGetSummary(t *testing.T) {
	uc := newDashboard(t, staticSuggestions{list: []reorder.Suggestion{
		{SKU: "A", Name: "Alfa", SuggestQty: 10, EstimatedCost: decimal.NewFromInt(100)},
		{SKU: "B", Name: "Beta", SuggestQty: 0},
		{SKU: "C", Name: "Gama", SuggestQty: 5, EstimatedCost: decimal.NewFromInt(250)},
	}})

	out, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, out.Candidates)
	assert.True(t, decimal.NewFromInt(350).Equal(out.ReorderCost))
	require.Len(t, out.TopReorder, 2)
	assert.Equal(t, "C", out.TopReorder[0].SKU, "el más costoso primero")

	assert.Equal(t, map[string]int{entity.POStatusDraft: 1, entity.POStatusOrdered: 2}, out.OrdersByStatus)

	assert.Equal(t, 4, out.TodayIssuedUnits)
	assert.Equal(t, 15, out.MonthIssuedUnits, "el mes anterior no cuenta")
	require.Len(t, out.TopIssued, 2)
	assert.Equal(t, "B", out.TopIssued[0].SKU)
	assert.Equal(t, "Beta", out.TopIssued[0].Name)
	assert.Equal(t, 5, out.TopIssued[1].Units)

	assert.Equal(t, "Marzo 2026", out.DateLabel)
}

func TestGetSummary_Vacio(t *testing.T) {
	uc := analytics.NewDashboardUseCase(staticSuggestions{}, memory.NewPurchaseOrderRepository(memory.NewStore()),
		memory.NewUsageRepository(memory.NewStore())).WithClock(func() time.Time { return now })

	out, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, out.Candidates)
	assert.NotNil(t, out.TopReorder)
	assert.NotNil(t, out.TopIssued)
	assert.Empty(t, out.OrdersByStatus)
}

func TestGetSummary_PropagaError(t *testing.T) {
	boom := errors.New("boom")
	uc := analytics.NewDashboardUseCase(staticSuggestions{err: boom}, memory.NewPurchaseOrderRepository(memory.NewStore()),
		memory.NewUsageRepository(memory.NewStore()))

	_, err := uc.GetSummary(context.Background())
	assert.ErrorIs(t, err, boom)
}
