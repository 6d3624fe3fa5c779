// Package bom expone las operaciones de cálculo del motor de recetas a la capa
// de API: costo, disponibilidad, planes de lote y pronóstico de capacidad.
package bom

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/bom-engine/internal/application/dto"
	"github.com/jhoicas/bom-engine/internal/domain"
	"github.com/jhoicas/bom-engine/internal/domain/bom"
	"github.com/jhoicas/bom-engine/internal/domain/entity"
	"github.com/jhoicas/bom-engine/internal/domain/repository"
)

// consumptionWindowDays ventana de historia usada para estimar el consumo
// diario cuando el caller no aporta velocidades propias.
const consumptionWindowDays = 30

// UseCase orquesta los cálculos de receta: carga la versión y sus materiales
// (siempre acotados al tenant) y delega en los servicios puros de dominio.
type UseCase struct {
	recipeRepo      repository.RecipeRepository
	materialRepo    repository.MaterialRepository
	consumptionRepo repository.ConsumptionRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	recipeRepo repository.RecipeRepository,
	materialRepo repository.MaterialRepository,
	consumptionRepo repository.ConsumptionRepository,
) *UseCase {
	return &UseCase{
		recipeRepo:      recipeRepo,
		materialRepo:    materialRepo,
		consumptionRepo: consumptionRepo,
	}
}

// loadVersion resuelve la versión pedida (o la activa si version es nil) y
// construye el índice de materiales de sus componentes. La validación de
// tenant ocurre aquí, antes de cualquier cálculo.
func (uc *UseCase) loadVersion(ctx context.Context, tenantID, recipeID string, version *int) (*entity.RecipeVersion, bom.MaterialIndex, error) {
	if tenantID == "" || recipeID == "" {
		return nil, nil, domain.ErrInvalidInput
	}

	var (
		v   *entity.RecipeVersion
		err error
	)
	if version != nil {
		v, err = uc.recipeRepo.GetVersion(ctx, tenantID, recipeID, *version)
	} else {
		v, err = uc.recipeRepo.GetActiveVersion(ctx, tenantID, recipeID)
	}
	if err != nil {
		return nil, nil, err
	}

	ids := make([]string, 0, len(v.Components))
	for _, c := range v.Components {
		ids = append(ids, c.MaterialID)
	}
	mats, err := uc.materialRepo.ListByIDs(ctx, tenantID, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("cargar materiales de la receta: %w", err)
	}
	index := make(bom.MaterialIndex, len(mats))
	for _, m := range mats {
		index[m.ID] = m
	}
	return v, index, nil
}

// GetRecipeCost devuelve el costo total de materiales y el costo por unidad de
// rendimiento. Montos redondeados a 2 decimales solo en esta frontera.
func (uc *UseCase) GetRecipeCost(ctx context.Context, tenantID, recipeID string, version *int) (dto.RecipeCostDTO, error) {
	v, index, err := uc.loadVersion(ctx, tenantID, recipeID, version)
	if err != nil {
		return dto.RecipeCostDTO{}, err
	}
	cost, err := bom.RecipeCost(v, index)
	if err != nil {
		return dto.RecipeCostDTO{}, err
	}
	return dto.RecipeCostDTO{
		RecipeID:          recipeID,
		Version:           v.Version,
		TotalMaterialCost: cost.TotalMaterialCost.Round(2),
		CostPerYieldUnit:  cost.CostPerYieldUnit.Round(2),
		Incomplete:        cost.Incomplete,
	}, nil
}

// GetAvailableQuantity devuelve la cantidad producible con el stock actual y el
// material limitante (desempate por orden de componentes).
func (uc *UseCase) GetAvailableQuantity(ctx context.Context, tenantID, recipeID string) (dto.AvailabilityDTO, error) {
	v, index, err := uc.loadVersion(ctx, tenantID, recipeID, nil)
	if err != nil {
		return dto.AvailabilityDTO{}, err
	}
	avail, err := bom.AvailableQuantity(v, index)
	if err != nil {
		return dto.AvailabilityDTO{}, err
	}
	return dto.AvailabilityDTO{
		RecipeID:           recipeID,
		Version:            v.Version,
		AvailableUnits:     avail.AvailableUnits,
		LimitingMaterialID: avail.LimitingMaterialID,
		NoComponents:       avail.NoComponents,
	}, nil
}

// PlanBatch calcula requerimientos y faltantes para producir targetQuantity
// unidades, más el costo agregado de compra de los faltantes.
func (uc *UseCase) PlanBatch(ctx context.Context, tenantID, recipeID string, targetQuantity decimal.Decimal) (dto.BatchPlanDTO, error) {
	v, index, err := uc.loadVersion(ctx, tenantID, recipeID, nil)
	if err != nil {
		return dto.BatchPlanDTO{}, err
	}
	plan, err := bom.PlanBatch(v, index, targetQuantity)
	if err != nil {
		return dto.BatchPlanDTO{}, err
	}

	reqs := make([]dto.BatchRequirementDTO, 0, len(plan.Requirements))
	for _, r := range plan.Requirements {
		reqs = append(reqs, dto.BatchRequirementDTO{
			MaterialID:       r.MaterialID,
			MaterialName:     r.MaterialName,
			Unit:             r.Unit,
			RequiredQuantity: r.RequiredQuantity,
			CurrentStock:     r.CurrentStock,
			Shortfall:        r.Shortfall,
		})
	}
	return dto.BatchPlanDTO{
		RecipeID:       recipeID,
		Version:        v.Version,
		TargetQuantity: targetQuantity,
		Requirements:   reqs,
		PurchaseCost:   plan.PurchaseCost.Round(2),
	}, nil
}

// ForecastCapacity proyecta la disponibilidad día a día usando el consumo
// promedio histórico de los materiales de la receta. La secuencia corta en el
// primer día sin disponibilidad o al agotar el horizonte.
func (uc *UseCase) ForecastCapacity(ctx context.Context, tenantID, recipeID string, horizonDays int) ([]dto.ForecastDayDTO, error) {
	v, index, err := uc.loadVersion(ctx, tenantID, recipeID, nil)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(index))
	for id := range index {
		ids = append(ids, id)
	}
	rates, err := uc.consumptionRepo.AverageDaily(ctx, tenantID, ids, consumptionWindowDays)
	if err != nil {
		return nil, fmt.Errorf("historia de consumo: %w", err)
	}
	return uc.forecast(v, index, rates, horizonDays)
}

// ForecastCapacityWithRates proyecta con velocidades de consumo aportadas por
// el caller, sin consultar la historia.
func (uc *UseCase) ForecastCapacityWithRates(
	ctx context.Context,
	tenantID, recipeID string,
	rates map[string]decimal.Decimal,
	horizonDays int,
) ([]dto.ForecastDayDTO, error) {
	v, index, err := uc.loadVersion(ctx, tenantID, recipeID, nil)
	if err != nil {
		return nil, err
	}
	return uc.forecast(v, index, rates, horizonDays)
}

func (uc *UseCase) forecast(
	v *entity.RecipeVersion,
	index bom.MaterialIndex,
	rates map[string]decimal.Decimal,
	horizonDays int,
) ([]dto.ForecastDayDTO, error) {
	fc, err := bom.NewForecast(v, index, rates, horizonDays)
	if err != nil {
		return nil, err
	}
	days := make([]dto.ForecastDayDTO, 0, horizonDays)
	for {
		s, ok := fc.Next()
		if !ok {
			return days, nil
		}
		days = append(days, dto.NewForecastDayDTO(s))
	}
}
