// Package bom contiene los cálculos puros del motor de recetas: costo,
// cantidad producible, planificación de lotes y proyección de capacidad.
// Todo el cálculo interno usa decimal con precisión completa; el redondeo
// a 2 decimales ocurre solo en la capa de presentación.
package bom

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/bom-engine/internal/domain"
	"github.com/jhoicas/bom-engine/internal/domain/entity"
)

// MaterialIndex es el lookup de materiales por ID que alimenta los cálculos.
// La capa de aplicación lo construye a partir del repositorio, siempre
// acotado al tenant de la llamada.
type MaterialIndex map[string]*entity.Material

// componentMaterial valida un componente contra su material y lo devuelve.
// Reglas: el material debe existir, la cantidad debe ser > 0 y la unidad del
// componente debe coincidir exactamente con la unidad base del material
// (sin conversión implícita gramos↔kilos: es preferible rechazar a convertir mal).
func componentMaterial(c entity.RecipeComponent, materials MaterialIndex) (*entity.Material, error) {
	m, ok := materials[c.MaterialID]
	if !ok {
		return nil, fmt.Errorf("material %s: %w", c.MaterialID, domain.ErrNotFound)
	}
	if c.QuantityPerUnit.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("material %s: cantidad por unidad debe ser > 0: %w", c.MaterialID, domain.ErrConfiguration)
	}
	if c.Unit != m.Unit {
		return nil, fmt.Errorf("material %s: unidad %q del componente no coincide con la unidad base %q: %w",
			c.MaterialID, c.Unit, m.Unit, domain.ErrConfiguration)
	}
	return m, nil
}
