// Package reorder genera la lista rankeada de recomendaciones de reposición
// para los materiales con stock deficiente de un tenant.
package reorder

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/bom-engine/internal/application/dto"
	"github.com/jhoicas/bom-engine/internal/domain"
	"github.com/jhoicas/bom-engine/internal/domain/alert"
	"github.com/jhoicas/bom-engine/internal/domain/entity"
	"github.com/jhoicas/bom-engine/internal/domain/repository"
)

// Prioridades de recomendación.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// consumptionWindowDays ventana de historia para el enriquecimiento de
// días de cobertura.
const consumptionWindowDays = 90

// UseCase construye recomendaciones de reposición: solo materiales con
// severidad distinta de healthy, rankeados por urgencia y enriquecidos con la
// historia de consumo cuando existe.
type UseCase struct {
	materialRepo    repository.MaterialRepository
	consumptionRepo repository.ConsumptionRepository
}

// NewUseCase construye el caso de uso de recomendaciones.
func NewUseCase(
	materialRepo repository.MaterialRepository,
	consumptionRepo repository.ConsumptionRepository,
) *UseCase {
	return &UseCase{materialRepo: materialRepo, consumptionRepo: consumptionRepo}
}

// GenerateRecommendations devuelve la lista rankeada para el tenant:
// prioridad descendente y, dentro de la misma prioridad, razón stock/reorden
// ascendente (el más agotado primero).
func (uc *UseCase) GenerateRecommendations(ctx context.Context, tenantID string) ([]dto.ReorderRecommendationDTO, error) {
	if tenantID == "" {
		return nil, domain.ErrInvalidInput
	}
	materials, err := uc.materialRepo.ListAlertable(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	// 1. Filtrar materiales deficientes
	type ranked struct {
		material *entity.Material
		severity string
		priority string
		ratio    decimal.Decimal
	}
	candidates := make([]ranked, 0, len(materials))
	ids := make([]string, 0, len(materials))
	for _, m := range materials {
		severity := alert.ClassifyMaterial(m)
		if severity == alert.SeverityHealthy {
			continue
		}
		priority := PriorityMedium
		if severity == entity.SeverityCritical || severity == entity.SeverityOutOfStock {
			priority = PriorityHigh
		}
		candidates = append(candidates, ranked{
			material: m,
			severity: severity,
			priority: priority,
			ratio:    m.StockRatio(),
		})
		ids = append(ids, m.ID)
	}
	if len(candidates) == 0 {
		return []dto.ReorderRecommendationDTO{}, nil
	}

	// 2. Historia de consumo (opcional: sin historia los campos quedan en cero)
	rates, _ := uc.consumptionRepo.AverageDaily(ctx, tenantID, ids, consumptionWindowDays)

	// 3. Ordenar: prioridad desc, luego razón stock/reorden asc
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.priority != b.priority {
			return a.priority == PriorityHigh
		}
		return a.ratio.LessThan(b.ratio)
	})

	// 4. Construir los DTOs
	out := make([]dto.ReorderRecommendationDTO, 0, len(candidates))
	for _, c := range candidates {
		m := c.material
		qty := suggestedOrderQuantity(m)
		rec := dto.ReorderRecommendationDTO{
			MaterialID:             m.ID,
			MaterialName:           m.Name,
			Severity:               c.severity,
			Priority:               c.priority,
			CurrentStock:           m.CurrentStock,
			ReorderPoint:           m.ReorderPoint,
			StockRatio:             c.ratio.Round(4),
			SuggestedOrderQuantity: qty,
			EstimatedCost:          qty.Mul(m.UnitCost).Round(2),
		}
		if rate, ok := rates[m.ID]; ok && rate.GreaterThan(decimal.Zero) {
			rec.AvgDailyConsumption = rate.Round(4)
			rec.DaysOfCover = m.CurrentStock.Div(rate).Round(1)
		}
		out = append(out, rec)
	}
	return out, nil
}

// suggestedOrderQuantity usa la cantidad de reorden configurada; si no hay,
// repone hasta el doble del punto de reorden con un mínimo de 1.
func suggestedOrderQuantity(m *entity.Material) decimal.Decimal {
	if m.ReorderQuantity != nil && m.ReorderQuantity.GreaterThan(decimal.Zero) {
		return *m.ReorderQuantity
	}
	two := decimal.NewFromInt(2)
	qty := two.Mul(m.ReorderPoint).Sub(m.CurrentStock)
	if qty.LessThan(decimal.NewFromInt(1)) {
		return decimal.NewFromInt(1)
	}
	return qty
}
