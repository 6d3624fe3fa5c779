package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/bom-engine/internal/domain/entity"
	"github.com/jhoicas/bom-engine/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepository)(nil)
var _ repository.ConsumptionRepository = (*MovementRepository)(nil)

// MovementRepository almacena movimientos de stock en memoria y sirve también
// como fuente de historia de consumo.
type MovementRepository struct {
	mu        sync.RWMutex
	movements []*entity.StockMovement
}

// NewMovementRepository crea el repositorio vacío.
func NewMovementRepository() *MovementRepository {
	return &MovementRepository{}
}

func (r *MovementRepository) Create(ctx context.Context, mov *entity.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *mov
	r.movements = append(r.movements, &c)
	return nil
}

func (r *MovementRepository) ListByMaterial(ctx context.Context, tenantID, materialID string, limit, offset int) ([]*entity.StockMovement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*entity.StockMovement
	for _, m := range r.movements {
		if m.TenantID == tenantID && m.MaterialID == materialID {
			c := *m
			list = append(list, &c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Date.After(list[j].Date) })
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

// AverageDaily promedia los consumos de la ventana, igual que el adaptador SQL.
func (r *MovementRepository) AverageDaily(ctx context.Context, tenantID string, materialIDs []string, windowDays int) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(materialIDs))
	if len(materialIDs) == 0 || windowDays <= 0 {
		return out, nil
	}
	wanted := make(map[string]bool, len(materialIDs))
	for _, id := range materialIDs {
		wanted[id] = true
	}
	cutoff := time.Now().AddDate(0, 0, -windowDays)

	r.mu.RLock()
	defer r.mu.RUnlock()
	totals := make(map[string]decimal.Decimal)
	for _, m := range r.movements {
		if m.TenantID != tenantID || m.Type != entity.MovementTypeCONSUMPTION {
			continue
		}
		if !wanted[m.MaterialID] || m.Date.Before(cutoff) {
			continue
		}
		totals[m.MaterialID] = totals[m.MaterialID].Add(m.Quantity.Neg())
	}
	days := decimal.NewFromInt(int64(windowDays))
	for id, total := range totals {
		out[id] = total.Div(days)
	}
	return out, nil
}
