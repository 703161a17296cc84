package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/core-stock/internal/application/labels"
	"github.com/jhoicas/core-stock/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":       "0",
		"999":     "999",
		"25000":   "25.000",
		"1000000": "1.000.000",
		"-1500":   "-1.500",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(in), in)
	}
}

func TestGeneratePurchaseOrderPDF(t *testing.T) {
	submitted := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	po := &entity.PurchaseOrder{
		ID: "po-1", Number: "OC-20260314-ABCDEF12", SupplierID: "SUP-01",
		Status: entity.POStatusOrdered, CreatedAt: submitted, SubmittedAt: &submitted,
		Lines: []entity.PurchaseOrderLine{
			{SKU: "FLT-001", Name: "Filtro", Quantity: 90, UnitCost: decimal.NewFromInt(1500)},
			{SKU: "TOR-0001", Name: "Tornillo", Quantity: 300, ReceivedQty: 100, UnitCost: decimal.NewFromInt(45)},
		},
	}

	out, err := NewPurchaseOrderGenerator().GeneratePurchaseOrderPDF(po, &entity.Supplier{ID: "SUP-01", Name: "Filtros SAS"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	// sin proveedor también genera
	out, err = NewPurchaseOrderGenerator().GeneratePurchaseOrderPDF(po, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestGenerateLabels(t *testing.T) {
	ls := make([]labels.Label, 0, 7)
	for i := 0; i < 7; i++ {
		ls = append(ls, labels.Label{SKU: "SKU-" + string(rune('A'+i)), Name: "Producto", PackSize: 10, Min: 5, UnitCost: decimal.NewFromInt(1200)})
	}
	out, err := NewLabelGenerator().GenerateLabels(ls)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	_, err = NewLabelGenerator().GenerateLabels(nil)
	assert.Error(t, err)
}
