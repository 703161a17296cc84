package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestWeightedAverageCost(t *testing.T) {
	d := decimal.RequireFromString
	cases := []struct {
		name   string
		stock  int
		cost   string
		qtyIn  int
		costIn string
		want   string
	}{
		{"sin stock previo", 0, "0", 10, "1500", "1500"},
		{"mismo costo", 5, "100", 5, "100", "100"},
		{"promedio", 10, "100", 30, "200", "175"},
		{"redondeo a 2 decimales", 1, "10", 2, "11", "10.67"},
		{"stock negativo se trata como cero", -3, "999", 4, "50", "50"},
		{"sin entrada ni stock", 0, "80", 0, "90", "90"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := WeightedAverageCost(tc.stock, d(tc.cost), tc.qtyIn, d(tc.costIn))
			assert.True(t, d(tc.want).Equal(got), "got %s", got)
		})
	}
}
