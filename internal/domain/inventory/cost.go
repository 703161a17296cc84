// Package inventory reglas de valorización del stock.
package inventory

import "github.com/shopspring/decimal"

// costDecimals precisión del costo unitario almacenado.
const costDecimals = 2

// WeightedAverageCost costo promedio ponderado tras una entrada:
//
//	nuevo = (stock*costo + entrada*costoEntrada) / (stock + entrada)
//
// Un stock resultante <= 0 devuelve el costo de la entrada.
func WeightedAverageCost(stock int, cost decimal.Decimal, qtyIn int, costIn decimal.Decimal) decimal.Decimal {
	if stock < 0 {
		stock = 0
	}
	total := decimal.NewFromInt(int64(stock + qtyIn))
	if !total.IsPositive() {
		return costIn.Round(costDecimals)
	}
	num := decimal.NewFromInt(int64(stock)).Mul(cost).Add(decimal.NewFromInt(int64(qtyIn)).Mul(costIn))
	return num.Div(total).Round(costDecimals)
}
