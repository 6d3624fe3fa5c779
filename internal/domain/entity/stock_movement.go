package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock de materiales.
const (
	MovementTypeIN          = "IN"          // recepción de compra
	MovementTypeCONSUMPTION = "CONSUMPTION" // consumo por producción
	MovementTypeADJUSTMENT  = "ADJUSTMENT"  // ajuste manual (+ o -)
)

// StockMovement es el registro de auditoría de cada mutación de stock.
// Se escribe en la misma transacción que el cambio de stock: nunca puede
// existir un cambio de stock sin su movimiento ni al revés.
type StockMovement struct {
	ID            string
	TransactionID string
	TenantID      string
	MaterialID    string
	Type          string
	Quantity      decimal.Decimal // con signo: negativo para salidas
	StockAfter    decimal.Decimal
	Reason        string
	Date          time.Time
	CreatedAt     time.Time
	CreatedBy     string
}
