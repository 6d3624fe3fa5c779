package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/bom-engine/internal/domain/entity"
)

// StockAlertDTO representación de una alerta para la capa de API.
type StockAlertDTO struct {
	ID                   string          `json:"id"`
	TenantID             string          `json:"tenant_id"`
	MaterialID           string          `json:"material_id"`
	StockSnapshot        decimal.Decimal `json:"stock_snapshot"`
	ReorderPointSnapshot decimal.Decimal `json:"reorder_point_snapshot"`
	Severity             string          `json:"severity"`
	Status               string          `json:"status"`
	ActionNotes          string          `json:"action_notes,omitempty"`
	DetectedAt           time.Time       `json:"detected_at"`
	AcknowledgedAt       *time.Time      `json:"acknowledged_at,omitempty"`
	ResolvedAt           *time.Time      `json:"resolved_at,omitempty"`
}

// NewStockAlertDTO mapea la entidad al DTO.
func NewStockAlertDTO(a *entity.StockAlert) StockAlertDTO {
	return StockAlertDTO{
		ID:                   a.ID,
		TenantID:             a.TenantID,
		MaterialID:           a.MaterialID,
		StockSnapshot:        a.StockSnapshot,
		ReorderPointSnapshot: a.ReorderPointSnapshot,
		Severity:             a.Severity,
		Status:               a.Status,
		ActionNotes:          a.ActionNotes,
		DetectedAt:           a.DetectedAt,
		AcknowledgedAt:       a.AcknowledgedAt,
		ResolvedAt:           a.ResolvedAt,
	}
}

// ScanSummaryDTO resumen de éxito parcial de un escaneo de stock bajo.
// Un fallo en un tenant no aborta el resto: se cuenta aquí y el escaneo sigue.
type ScanSummaryDTO struct {
	TenantsScanned int `json:"tenants_scanned"`
	AlertsCreated  int `json:"alerts_created"`
	AlertsUpdated  int `json:"alerts_updated"`
	AlertsSkipped  int `json:"alerts_skipped"`
	Failed         int `json:"failed"`
}

// Merge acumula el resumen de otro tenant sobre este.
func (s *ScanSummaryDTO) Merge(other ScanSummaryDTO) {
	s.TenantsScanned += other.TenantsScanned
	s.AlertsCreated += other.AlertsCreated
	s.AlertsUpdated += other.AlertsUpdated
	s.AlertsSkipped += other.AlertsSkipped
	s.Failed += other.Failed
}

// ReorderRecommendationDTO una sugerencia de reposición rankeada.
type ReorderRecommendationDTO struct {
	MaterialID             string          `json:"material_id"`
	MaterialName           string          `json:"material_name"`
	Severity               string          `json:"severity"`
	Priority               string          `json:"priority"` // high, medium, low
	CurrentStock           decimal.Decimal `json:"current_stock"`
	ReorderPoint           decimal.Decimal `json:"reorder_point"`
	StockRatio             decimal.Decimal `json:"stock_ratio"` // stock / punto de reorden
	SuggestedOrderQuantity decimal.Decimal `json:"suggested_order_quantity"`
	EstimatedCost          decimal.Decimal `json:"estimated_cost"`
	AvgDailyConsumption    decimal.Decimal `json:"avg_daily_consumption"` // 0 si sin historia
	DaysOfCover            decimal.Decimal `json:"days_of_cover"`         // stock / consumo diario; 0 si sin historia
}
