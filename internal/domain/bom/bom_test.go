package bom_test

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/bom-engine/internal/domain/bom"
	"github.com/jhoicas/bom-engine/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test: la receta "Torta" de referencia.
//
//	Harina: 0.5 kg por unidad, stock 10 kg → máximo 20 unidades
//	Azúcar: 0.2 kg por unidad, stock 3 kg  → máximo 15 unidades
//
// Disponibilidad esperada: 15 unidades, limitada por el azúcar.
// ──────────────────────────────────────────────────────────────────────────────

const (
	testTenant   = "tenant-a"
	flourID      = "mat-harina"
	sugarID      = "mat-azucar"
	cakeRecipeID = "rec-torta"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testMaterial(id, name, unit, stock, unitCost string) *entity.Material {
	return &entity.Material{
		ID:           id,
		TenantID:     testTenant,
		Name:         name,
		Unit:         unit,
		UnitCost:     dec(unitCost),
		CurrentStock: dec(stock),
		ReorderPoint: dec("5"),
	}
}

// cakeFixture construye la versión de la receta de torta y su índice de materiales.
func cakeFixture() (*entity.RecipeVersion, bom.MaterialIndex) {
	materials := bom.MaterialIndex{
		flourID: testMaterial(flourID, "Harina", "kg", "10", "2.50"),
		sugarID: testMaterial(sugarID, "Azúcar", "kg", "3", "4.00"),
	}
	version := &entity.RecipeVersion{
		ID:            "ver-torta-1",
		RecipeID:      cakeRecipeID,
		TenantID:      testTenant,
		Version:       1,
		State:         entity.RecipeStateActive,
		YieldQuantity: dec("1"),
		YieldUnit:     "unidad",
		Components: []entity.RecipeComponent{
			{VersionID: "ver-torta-1", MaterialID: flourID, QuantityPerUnit: dec("0.5"), Unit: "kg", Position: 0},
			{VersionID: "ver-torta-1", MaterialID: sugarID, QuantityPerUnit: dec("0.2"), Unit: "kg", Position: 1},
		},
	}
	return version, materials
}

func emptyVersion() *entity.RecipeVersion {
	return &entity.RecipeVersion{
		ID:            "ver-vacia",
		RecipeID:      "rec-vacia",
		TenantID:      testTenant,
		Version:       1,
		State:         entity.RecipeStateDraft,
		YieldQuantity: dec("1"),
		YieldUnit:     "unidad",
	}
}
