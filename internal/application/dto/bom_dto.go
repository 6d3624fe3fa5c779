package dto

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/bom-engine/internal/domain/bom"
)

// RecipeCostDTO respuesta de GetRecipeCost. Los montos van redondeados a 2
// decimales; el cálculo interno conserva la precisión completa.
type RecipeCostDTO struct {
	RecipeID          string          `json:"recipe_id"`
	Version           int             `json:"version"`
	TotalMaterialCost decimal.Decimal `json:"total_material_cost"`
	CostPerYieldUnit  decimal.Decimal `json:"cost_per_yield_unit"`
	Incomplete        bool            `json:"incomplete"` // receta sin componentes
}

// AvailabilityDTO respuesta de GetAvailableQuantity.
type AvailabilityDTO struct {
	RecipeID           string `json:"recipe_id"`
	Version            int    `json:"version"`
	AvailableUnits     int64  `json:"available_units"`
	LimitingMaterialID string `json:"limiting_material_id,omitempty"`
	NoComponents       bool   `json:"no_components,omitempty"`
}

// BatchRequirementDTO necesidad de un material dentro de un plan de lote.
type BatchRequirementDTO struct {
	MaterialID       string          `json:"material_id"`
	MaterialName     string          `json:"material_name"`
	Unit             string          `json:"unit"`
	RequiredQuantity decimal.Decimal `json:"required_quantity"`
	CurrentStock     decimal.Decimal `json:"current_stock"`
	Shortfall        decimal.Decimal `json:"shortfall"`
}

// BatchPlanDTO respuesta de PlanBatch.
type BatchPlanDTO struct {
	RecipeID       string                `json:"recipe_id"`
	Version        int                   `json:"version"`
	TargetQuantity decimal.Decimal       `json:"target_quantity"`
	Requirements   []BatchRequirementDTO `json:"requirements"`
	PurchaseCost   decimal.Decimal       `json:"purchase_cost"` // Σ faltante × costo unitario
}

// ForecastDayDTO un día de la proyección de capacidad.
type ForecastDayDTO struct {
	Day                int    `json:"day"`
	AvailableUnits     int64  `json:"available_units"`
	LimitingMaterialID string `json:"limiting_material_id,omitempty"`
}

// NewForecastDayDTO mapea la fotografía de dominio al DTO.
func NewForecastDayDTO(s bom.DaySnapshot) ForecastDayDTO {
	return ForecastDayDTO{
		Day:                s.Day,
		AvailableUnits:     s.AvailableUnits,
		LimitingMaterialID: s.LimitingMaterialID,
	}
}
