// Package alert contiene la política de severidad y la máquina de estados de
// las alertas de stock bajo.
package alert

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/bom-engine/internal/domain/entity"
)

// SeverityHealthy marca un material sin problema de stock (no genera alerta).
const SeverityHealthy = "healthy"

// criticalRatio es la frontera entre low y critical como fracción del punto de
// reorden. 50% es el valor por defecto documentado; el límite es inclusivo
// (stock exactamente en la mitad del reorden ya es crítico).
var criticalRatio = decimal.NewFromFloat(0.5)

// Classify determina la severidad del stock de un material frente a su punto
// de reorden:
//
//	out_of_stock  si stock ≤ 0
//	critical      si 0 < stock ≤ 0.5 × punto de reorden
//	low           si stock ≤ punto de reorden
//	healthy       en otro caso
//
// Un punto de reorden ≤ 0 desactiva las alertas para el material.
func Classify(stock, reorderPoint decimal.Decimal) string {
	if reorderPoint.LessThanOrEqual(decimal.Zero) {
		return SeverityHealthy
	}
	if stock.LessThanOrEqual(decimal.Zero) {
		return entity.SeverityOutOfStock
	}
	if stock.GreaterThan(reorderPoint) {
		return SeverityHealthy
	}
	if stock.LessThanOrEqual(reorderPoint.Mul(criticalRatio)) {
		return entity.SeverityCritical
	}
	return entity.SeverityLow
}

// ClassifyMaterial aplica Classify sobre el estado actual del material.
func ClassifyMaterial(m *entity.Material) string {
	return Classify(m.CurrentStock, m.ReorderPoint)
}
