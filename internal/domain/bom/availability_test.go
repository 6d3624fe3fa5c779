package bom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/bom-engine/internal/domain"
	"github.com/jhoicas/bom-engine/internal/domain/bom"
	"github.com/jhoicas/bom-engine/internal/domain/entity"
)

func TestAvailableQuantity_LimitadoPorComponenteMasEscaso(t *testing.T) {
	version, materials := cakeFixture()

	avail, err := bom.AvailableQuantity(version, materials)
	require.NoError(t, err)

	// Harina alcanza para 20, azúcar solo para 15.
	assert.Equal(t, int64(15), avail.AvailableUnits)
	assert.Equal(t, sugarID, avail.LimitingMaterialID)
	assert.False(t, avail.NoComponents)
}

func TestAvailableQuantity_EmpateConservaPrimerComponente(t *testing.T) {
	version, materials := cakeFixture()
	// Ambos componentes permiten exactamente 15 unidades.
	materials[flourID].CurrentStock = dec("7.5")

	avail, err := bom.AvailableQuantity(version, materials)
	require.NoError(t, err)

	assert.Equal(t, int64(15), avail.AvailableUnits)
	assert.Equal(t, flourID, avail.LimitingMaterialID,
		"en empate gana el componente con menor posición")
}

func TestAvailableQuantity_StockCeroProduceCeroUnidades(t *testing.T) {
	version, materials := cakeFixture()
	materials[sugarID].CurrentStock = dec("0")

	avail, err := bom.AvailableQuantity(version, materials)
	require.NoError(t, err)

	assert.Equal(t, int64(0), avail.AvailableUnits)
	assert.Equal(t, sugarID, avail.LimitingMaterialID)
}

func TestAvailableQuantity_StockNegativoSeTrataComoCero(t *testing.T) {
	version, materials := cakeFixture()
	materials[sugarID].CurrentStock = dec("-2")

	avail, err := bom.AvailableQuantity(version, materials)
	require.NoError(t, err)

	assert.Equal(t, int64(0), avail.AvailableUnits)
}

func TestAvailableQuantity_TruncaHaciaAbajo(t *testing.T) {
	version := &entity.RecipeVersion{
		ID:            "ver-x",
		TenantID:      testTenant,
		YieldQuantity: dec("1"),
		YieldUnit:     "unidad",
		Components: []entity.RecipeComponent{
			{VersionID: "ver-x", MaterialID: flourID, QuantityPerUnit: dec("3"), Unit: "kg"},
		},
	}
	materials := bom.MaterialIndex{
		flourID: testMaterial(flourID, "Harina", "kg", "10", "2.50"),
	}

	avail, err := bom.AvailableQuantity(version, materials)
	require.NoError(t, err)

	// 10 / 3 = 3.33… → 3 unidades completas.
	assert.Equal(t, int64(3), avail.AvailableUnits)
}

func TestAvailableQuantity_MonotonaEnElStock(t *testing.T) {
	version, materials := cakeFixture()

	base, err := bom.AvailableQuantity(version, materials)
	require.NoError(t, err)

	// Subir el stock de cualquier material nunca reduce la disponibilidad.
	materials[sugarID].CurrentStock = materials[sugarID].CurrentStock.Add(dec("1"))
	more, err := bom.AvailableQuantity(version, materials)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, more.AvailableUnits, base.AvailableUnits)

	// Y bajarlo nunca la aumenta.
	materials[sugarID].CurrentStock = dec("1")
	less, err := bom.AvailableQuantity(version, materials)
	require.NoError(t, err)
	assert.LessOrEqual(t, less.AvailableUnits, base.AvailableUnits)
}

func TestAvailableQuantity_SinComponentes(t *testing.T) {
	avail, err := bom.AvailableQuantity(emptyVersion(), bom.MaterialIndex{})
	require.NoError(t, err)

	assert.Equal(t, int64(0), avail.AvailableUnits)
	assert.Empty(t, avail.LimitingMaterialID)
	assert.True(t, avail.NoComponents)
}

func TestAvailableQuantity_MaterialFaltante(t *testing.T) {
	version, materials := cakeFixture()
	delete(materials, flourID)

	_, err := bom.AvailableQuantity(version, materials)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAvailableQuantity_UnidadIncompatible(t *testing.T) {
	version, materials := cakeFixture()
	materials[flourID].Unit = "lb"

	_, err := bom.AvailableQuantity(version, materials)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}
