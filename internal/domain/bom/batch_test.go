package bom_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/bom-engine/internal/domain"
	"github.com/jhoicas/bom-engine/internal/domain/bom"
)

func TestPlanBatch_CalculaRequerimientosYFaltantes(t *testing.T) {
	version, materials := cakeFixture()

	plan, err := bom.PlanBatch(version, materials, dec("20"))
	require.NoError(t, err)
	require.Len(t, plan.Requirements, 2)

	flour := plan.Requirements[0]
	assert.Equal(t, flourID, flour.MaterialID)
	assert.True(t, dec("10").Equal(flour.RequiredQuantity))
	assert.True(t, flour.Shortfall.IsZero(), "la harina alcanza, sin faltante")

	sugar := plan.Requirements[1]
	assert.Equal(t, sugarID, sugar.MaterialID)
	assert.True(t, dec("4").Equal(sugar.RequiredQuantity))
	assert.True(t, dec("1").Equal(sugar.Shortfall))

	// Solo se compra el faltante: 1 kg de azúcar a 4.00.
	assert.True(t, dec("4.00").Equal(plan.PurchaseCost))
}

func TestPlanBatch_ObjetivoCero(t *testing.T) {
	version, materials := cakeFixture()

	plan, err := bom.PlanBatch(version, materials, decimal.Zero)
	require.NoError(t, err)

	for _, req := range plan.Requirements {
		assert.True(t, req.RequiredQuantity.IsZero())
		assert.True(t, req.Shortfall.IsZero())
	}
	assert.True(t, plan.PurchaseCost.IsZero())
}

func TestPlanBatch_ObjetivoNegativo(t *testing.T) {
	version, materials := cakeFixture()

	_, err := bom.PlanBatch(version, materials, dec("-1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPlanBatch_ObjetivoDisponibleNoGeneraFaltantes(t *testing.T) {
	version, materials := cakeFixture()

	avail, err := bom.AvailableQuantity(version, materials)
	require.NoError(t, err)

	// Planificar exactamente lo disponible nunca produce faltantes.
	plan, err := bom.PlanBatch(version, materials, decimal.NewFromInt(avail.AvailableUnits))
	require.NoError(t, err)

	for _, req := range plan.Requirements {
		assert.True(t, req.Shortfall.IsZero(),
			"faltante inesperado de %s para %s", req.Shortfall, req.MaterialID)
	}
	assert.True(t, plan.PurchaseCost.IsZero())
}

func TestPlanBatch_ConservaOrdenDeComponentes(t *testing.T) {
	version, materials := cakeFixture()

	plan, err := bom.PlanBatch(version, materials, dec("5"))
	require.NoError(t, err)
	require.Len(t, plan.Requirements, 2)

	assert.Equal(t, flourID, plan.Requirements[0].MaterialID)
	assert.Equal(t, sugarID, plan.Requirements[1].MaterialID)
}
