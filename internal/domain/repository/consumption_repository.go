package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// ConsumptionRepository expone la historia de consumo derivada de los
// movimientos de stock. Alimenta el pronóstico de capacidad y el
// enriquecimiento de recomendaciones; el motor no calcula velocidades por su
// cuenta.
type ConsumptionRepository interface {
	// AverageDaily devuelve el consumo promedio diario por material sobre la
	// ventana indicada (movimientos CONSUMPTION). Materiales sin historia no
	// aparecen en el mapa.
	AverageDaily(ctx context.Context, tenantID string, materialIDs []string, windowDays int) (map[string]decimal.Decimal, error)
}
