package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/core-stock/internal/domain/entity"
)

func TestCanTransition(t *testing.T) {
	allowed := [][2]string{
		{entity.POStatusDraft, entity.POStatusOrdered},
		{entity.POStatusDraft, entity.POStatusCancelled},
		{entity.POStatusOrdered, entity.POStatusPartiallyReceived},
		{entity.POStatusOrdered, entity.POStatusReceived},
		{entity.POStatusOrdered, entity.POStatusCancelled},
		{entity.POStatusPartiallyReceived, entity.POStatusPartiallyReceived},
		{entity.POStatusPartiallyReceived, entity.POStatusReceived},
	}
	for _, tr := range allowed {
		assert.True(t, entity.CanTransition(tr[0], tr[1]), "%s → %s", tr[0], tr[1])
	}

	denied := [][2]string{
		{entity.POStatusDraft, entity.POStatusReceived},
		{entity.POStatusPartiallyReceived, entity.POStatusCancelled},
		{entity.POStatusReceived, entity.POStatusOrdered},
		{entity.POStatusCancelled, entity.POStatusDraft},
		{"desconocido", entity.POStatusOrdered},
	}
	for _, tr := range denied {
		assert.False(t, entity.CanTransition(tr[0], tr[1]), "%s → %s", tr[0], tr[1])
	}
}

func TestPurchaseOrder_TotalYPendiente(t *testing.T) {
	po := &entity.PurchaseOrder{Lines: []entity.PurchaseOrderLine{
		{SKU: "A", Quantity: 10, ReceivedQty: 4, UnitCost: decimal.NewFromInt(100)},
		{SKU: "B", Quantity: 5, ReceivedQty: 7, UnitCost: decimal.RequireFromString("2.5")},
	}}
	assert.True(t, decimal.RequireFromString("1012.5").Equal(po.Total()))
	assert.Equal(t, 6, po.Lines[0].Outstanding())
	assert.Equal(t, 0, po.Lines[1].Outstanding(), "sobre-recepción no da pendiente negativo")
}
