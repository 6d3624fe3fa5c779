package bom_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/bom-engine/internal/domain"
	"github.com/jhoicas/bom-engine/internal/domain/bom"
)

func TestRecipeCost_SumaComponentes(t *testing.T) {
	version, materials := cakeFixture()

	result, err := bom.RecipeCost(version, materials)
	require.NoError(t, err)

	// 0.5 kg * 2.50 + 0.2 kg * 4.00 = 1.25 + 0.80 = 2.05
	assert.True(t, dec("2.05").Equal(result.TotalMaterialCost),
		"costo total esperado 2.05, obtenido %s", result.TotalMaterialCost)
	assert.True(t, dec("2.05").Equal(result.CostPerYieldUnit))
	assert.False(t, result.Incomplete)
}

func TestRecipeCost_RendimientoMayorAUno(t *testing.T) {
	version, materials := cakeFixture()
	version.YieldQuantity = dec("4")

	result, err := bom.RecipeCost(version, materials)
	require.NoError(t, err)

	// El costo total no cambia; el costo por unidad de rendimiento se divide.
	assert.True(t, dec("2.05").Equal(result.TotalMaterialCost))
	assert.True(t, dec("0.5125").Equal(result.CostPerYieldUnit))
}

func TestRecipeCost_SinComponentes(t *testing.T) {
	result, err := bom.RecipeCost(emptyVersion(), bom.MaterialIndex{})
	require.NoError(t, err)

	assert.True(t, result.TotalMaterialCost.IsZero())
	assert.True(t, result.CostPerYieldUnit.IsZero())
	assert.True(t, result.Incomplete)
}

func TestRecipeCost_RendimientoInvalido(t *testing.T) {
	version, materials := cakeFixture()
	version.YieldQuantity = dec("0")

	_, err := bom.RecipeCost(version, materials)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestRecipeCost_MaterialFaltante(t *testing.T) {
	version, materials := cakeFixture()
	delete(materials, sugarID)

	_, err := bom.RecipeCost(version, materials)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecipeCost_UnidadIncompatible(t *testing.T) {
	version, materials := cakeFixture()
	materials[sugarID].Unit = "g"

	_, err := bom.RecipeCost(version, materials)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestRecipeCost_CantidadNoPositiva(t *testing.T) {
	version, materials := cakeFixture()
	version.Components[0].QuantityPerUnit = dec("0")

	_, err := bom.RecipeCost(version, materials)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestRecipeCost_CostoUnitarioCero(t *testing.T) {
	version, materials := cakeFixture()
	materials[flourID].UnitCost = decimal.Zero

	result, err := bom.RecipeCost(version, materials)
	require.NoError(t, err)

	// Un costo unitario en cero aporta cero al total, sin error.
	assert.True(t, dec("0.80").Equal(result.TotalMaterialCost))
}
