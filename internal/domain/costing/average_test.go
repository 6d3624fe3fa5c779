package costing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/jhoicas/bom-engine/internal/domain/costing"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestWeightedAverage_PonderaPorCantidad(t *testing.T) {
	// 10 kg a 2.00 + 10 kg a 4.00 → promedio 3.00
	got := costing.WeightedAverage(dec("10"), dec("2.00"), dec("10"), dec("4.00"))
	assert.True(t, dec("3.00").Equal(got), "esperado 3.00, obtenido %s", got)
}

func TestWeightedAverage_EntradaDominante(t *testing.T) {
	// 1 kg a 10.00 + 99 kg a 1.00 → (10 + 99) / 100 = 1.09
	got := costing.WeightedAverage(dec("1"), dec("10.00"), dec("99"), dec("1.00"))
	assert.True(t, dec("1.09").Equal(got))
}

func TestWeightedAverage_StockInicialCero(t *testing.T) {
	// Sin stock previo el costo es el de la entrada.
	got := costing.WeightedAverage(decimal.Zero, decimal.Zero, dec("5"), dec("7.50"))
	assert.True(t, dec("7.50").Equal(got))
}

func TestWeightedAverage_SumaNoPositivaDevuelveCero(t *testing.T) {
	got := costing.WeightedAverage(dec("-5"), dec("2.00"), dec("5"), dec("3.00"))
	assert.True(t, got.IsZero())
}
