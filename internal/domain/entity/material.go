package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Material representa una materia prima del inventario de un tenant.
// CurrentStock nunca es negativo; los materiales no se borran, se archivan.
// ReorderQuantity es opcional: nil significa que la cantidad sugerida de pedido
// se calcula a partir del punto de reorden.
type Material struct {
	ID              string
	TenantID        string
	Name            string
	Unit            string // unidad base: kg, g, l, unidad, etc.
	Category        string
	UnitCost        decimal.Decimal
	CurrentStock    decimal.Decimal
	ReorderPoint    decimal.Decimal
	ReorderQuantity *decimal.Decimal
	Archived        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// StockRatio devuelve stock / punto de reorden. Si el punto de reorden es cero
// devuelve cero (material sin política de reposición).
func (m *Material) StockRatio() decimal.Decimal {
	if m.ReorderPoint.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return m.CurrentStock.Div(m.ReorderPoint)
}
