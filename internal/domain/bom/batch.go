package bom

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/bom-engine/internal/domain"
	"github.com/jhoicas/bom-engine/internal/domain/entity"
)

// Requirement es la necesidad de un material para un lote de producción.
type Requirement struct {
	MaterialID       string
	MaterialName     string
	Unit             string
	RequiredQuantity decimal.Decimal // cantidadPorUnidad × objetivo
	CurrentStock     decimal.Decimal
	Shortfall        decimal.Decimal // max(0, requerido − stock)
	UnitCost         decimal.Decimal
}

// BatchPlan es el resultado de planificar un lote: requerimientos por material
// en el orden de la receta y el costo agregado de compra de los faltantes.
type BatchPlan struct {
	Requirements []Requirement
	PurchaseCost decimal.Decimal // Σ faltante × costo unitario
}

// PlanBatch calcula los requerimientos por material para producir
// targetOutputQuantity unidades. Escala lineal, sin tamaños de lote mínimos.
// Si el objetivo no supera la cantidad producible actual, todos los faltantes
// resultan cero.
func PlanBatch(version *entity.RecipeVersion, materials MaterialIndex, targetOutputQuantity decimal.Decimal) (BatchPlan, error) {
	if targetOutputQuantity.LessThan(decimal.Zero) {
		return BatchPlan{}, fmt.Errorf("cantidad objetivo negativa: %w", domain.ErrInvalidInput)
	}

	plan := BatchPlan{
		Requirements: make([]Requirement, 0, len(version.Components)),
		PurchaseCost: decimal.Zero,
	}
	for _, c := range version.Components {
		m, err := componentMaterial(c, materials)
		if err != nil {
			return BatchPlan{}, err
		}
		required := c.QuantityPerUnit.Mul(targetOutputQuantity)
		shortfall := required.Sub(m.CurrentStock)
		if shortfall.LessThan(decimal.Zero) {
			shortfall = decimal.Zero
		}
		plan.Requirements = append(plan.Requirements, Requirement{
			MaterialID:       m.ID,
			MaterialName:     m.Name,
			Unit:             m.Unit,
			RequiredQuantity: required,
			CurrentStock:     m.CurrentStock,
			Shortfall:        shortfall,
			UnitCost:         m.UnitCost,
		})
		if shortfall.GreaterThan(decimal.Zero) {
			plan.PurchaseCost = plan.PurchaseCost.Add(shortfall.Mul(m.UnitCost))
		}
	}
	return plan, nil
}
