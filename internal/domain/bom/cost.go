package bom

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/bom-engine/internal/domain"
	"github.com/jhoicas/bom-engine/internal/domain/entity"
)

// CostResult es el costo agregado de una versión de receta.
type CostResult struct {
	TotalMaterialCost decimal.Decimal // Σ cantidad × costo unitario
	CostPerYieldUnit  decimal.Decimal // total / cantidad de rendimiento
	Incomplete        bool            // receta sin componentes: costo 0, no es error
}

// RecipeCost calcula el costo de materiales de la versión. Una receta sin
// componentes devuelve costo cero marcada como incompleta en vez de fallar.
func RecipeCost(version *entity.RecipeVersion, materials MaterialIndex) (CostResult, error) {
	if len(version.Components) == 0 {
		return CostResult{TotalMaterialCost: decimal.Zero, CostPerYieldUnit: decimal.Zero, Incomplete: true}, nil
	}
	if version.YieldQuantity.LessThanOrEqual(decimal.Zero) {
		return CostResult{}, fmt.Errorf("rendimiento debe ser > 0: %w", domain.ErrConfiguration)
	}

	total := decimal.Zero
	for _, c := range version.Components {
		m, err := componentMaterial(c, materials)
		if err != nil {
			return CostResult{}, err
		}
		total = total.Add(c.QuantityPerUnit.Mul(m.UnitCost))
	}
	return CostResult{
		TotalMaterialCost: total,
		CostPerYieldUnit:  total.Div(version.YieldQuantity),
	}, nil
}
