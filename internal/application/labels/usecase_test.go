package labels_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/core-stock/internal/application/labels"
	"github.com/jhoicas/core-stock/internal/domain"
	"github.com/jhoicas/core-stock/internal/domain/entity"
	"github.com/jhoicas/core-stock/internal/domain/reorder"
	"github.com/jhoicas/core-stock/internal/infrastructure/memory"
)

type captureGenerator struct {
	got []labels.Label
}

func (c *captureGenerator) GenerateLabels(ls []labels.Label) ([]byte, error) {
	c.got = ls
	return []byte("%PDF"), nil
}

func newLabels(t *testing.T) (*labels.LabelsUseCase, *captureGenerator) {
	t.Helper()
	st := memory.NewStore()
	st.PutSupplier(entity.Supplier{ID: "S1", Name: "Acme"})
	st.PutSnapshot(reorder.StockSnapshot{SKU: "A", Name: "Alfa", PackSize: 10, Min: 5, SupplierID: "S1", UnitCost: decimal.NewFromInt(7)})
	st.PutSnapshot(reorder.StockSnapshot{SKU: "B", Name: "Beta", PackSize: 1, SupplierID: "S9"})
	gen := &captureGenerator{}
	return labels.NewLabelsUseCase(memory.NewStockRepository(st), memory.NewSupplierRepository(st), gen), gen
}

func TestGenerate(t *testing.T) {
	uc, gen := newLabels(t)
	out, err := uc.Generate(context.Background(), []string{"A", " B ", ""}, 2)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), out)

	require.Len(t, gen.got, 4)
	assert.Equal(t, "A", gen.got[0].SKU)
	assert.Equal(t, "Acme", gen.got[0].SupplierName)
	assert.Equal(t, "A", gen.got[1].SKU)
	assert.Equal(t, "B", gen.got[2].SKU)
	assert.Empty(t, gen.got[2].SupplierName, "proveedor inexistente")
}

func TestGenerate_Errors(t *testing.T) {
	uc, _ := newLabels(t)
	ctx := context.Background()

	_, err := uc.Generate(ctx, nil, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Generate(ctx, []string{"A", "NOPE"}, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Generate(ctx, []string{"A"}, labels.MaxLabels+1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
