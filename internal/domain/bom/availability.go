package bom

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/bom-engine/internal/domain/entity"
)

// Availability es la cantidad máxima producible con el stock disponible.
type Availability struct {
	AvailableUnits     int64
	LimitingMaterialID string // vacío cuando no hay componentes
	NoComponents       bool
}

// AvailableQuantity calcula cuántas unidades completas se pueden producir con
// el stock actual: min sobre los componentes de floor(stock / cantidadPorUnidad).
// En empate gana el componente que aparece primero en el orden almacenado de la
// receta, para que el material limitante sea determinista.
func AvailableQuantity(version *entity.RecipeVersion, materials MaterialIndex) (Availability, error) {
	return availableWithStock(version, materials, func(m *entity.Material) decimal.Decimal {
		return m.CurrentStock
	})
}

// availableWithStock es la forma general: stockOf permite evaluar sobre stock
// proyectado (la usa el pronóstico de capacidad) sin duplicar la búsqueda del mínimo.
func availableWithStock(
	version *entity.RecipeVersion,
	materials MaterialIndex,
	stockOf func(m *entity.Material) decimal.Decimal,
) (Availability, error) {
	if len(version.Components) == 0 {
		return Availability{AvailableUnits: 0, NoComponents: true}, nil
	}

	var (
		minUnits  int64
		limiting  string
		evaluated bool
	)
	for _, c := range version.Components {
		m, err := componentMaterial(c, materials)
		if err != nil {
			return Availability{}, err
		}
		stock := stockOf(m)
		if stock.LessThan(decimal.Zero) {
			stock = decimal.Zero
		}
		units := stock.Div(c.QuantityPerUnit).Floor().IntPart()
		// Estrictamente menor: el primer componente en orden conserva el empate
		if !evaluated || units < minUnits {
			minUnits = units
			limiting = c.MaterialID
			evaluated = true
		}
	}
	return Availability{AvailableUnits: minUnits, LimitingMaterialID: limiting}, nil
}
