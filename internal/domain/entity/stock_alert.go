package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Severidad de una alerta de stock.
const (
	SeverityLow        = "low"
	SeverityCritical   = "critical"
	SeverityOutOfStock = "out_of_stock"
)

// Estados de una alerta. pending y acknowledged son estados abiertos;
// resolved y dismissed son terminales.
const (
	AlertStatusPending      = "pending"
	AlertStatusAcknowledged = "acknowledged"
	AlertStatusResolved     = "resolved"
	AlertStatusDismissed    = "dismissed"
)

// StockAlert es una alerta de stock bajo para un material de un tenant.
// Invariante: a lo sumo una alerta abierta (pending o acknowledged) por
// (tenant_id, material_id). Una recurrencia después de un estado terminal
// crea una alerta nueva, nunca revive la anterior.
type StockAlert struct {
	ID                   string
	TenantID             string
	MaterialID           string
	StockSnapshot        decimal.Decimal // stock al momento de la detección
	ReorderPointSnapshot decimal.Decimal
	Severity             string
	Status               string
	ActionNotes          string
	DetectedAt           time.Time
	AcknowledgedAt       *time.Time
	ResolvedAt           *time.Time
	UpdatedAt            time.Time
}

// IsOpen indica si la alerta sigue abierta (pending o acknowledged).
func (a *StockAlert) IsOpen() bool {
	return a.Status == AlertStatusPending || a.Status == AlertStatusAcknowledged
}
