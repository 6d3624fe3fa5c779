package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/bom-engine/internal/domain"
	"github.com/jhoicas/bom-engine/internal/domain/entity"
	"github.com/jhoicas/bom-engine/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepository)(nil)

// AlertRepository almacena alertas en memoria. El chequeo de unicidad de
// alerta abierta ocurre bajo el mismo mutex que la inserción, así que es
// atómico igual que el índice único parcial en PostgreSQL.
type AlertRepository struct {
	mu     sync.Mutex
	alerts map[string]*entity.StockAlert // por ID
}

// NewAlertRepository crea el repositorio vacío.
func NewAlertRepository() *AlertRepository {
	return &AlertRepository{alerts: make(map[string]*entity.StockAlert)}
}

func copyAlert(a *entity.StockAlert) *entity.StockAlert {
	c := *a
	if a.AcknowledgedAt != nil {
		t := *a.AcknowledgedAt
		c.AcknowledgedAt = &t
	}
	if a.ResolvedAt != nil {
		t := *a.ResolvedAt
		c.ResolvedAt = &t
	}
	return &c
}

func (r *AlertRepository) openFor(tenantID, materialID string) *entity.StockAlert {
	for _, a := range r.alerts {
		if a.TenantID == tenantID && a.MaterialID == materialID && a.IsOpen() {
			return a
		}
	}
	return nil
}

// Create inserta la alerta; ErrConflict si ya hay una abierta para el material.
func (r *AlertRepository) Create(ctx context.Context, a *entity.StockAlert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.IsOpen() && r.openFor(a.TenantID, a.MaterialID) != nil {
		return domain.ErrConflict
	}
	if _, ok := r.alerts[a.ID]; ok {
		return domain.ErrConflict
	}
	r.alerts[a.ID] = copyAlert(a)
	return nil
}

func (r *AlertRepository) Update(ctx context.Context, a *entity.StockAlert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.alerts[a.ID]; !ok {
		return domain.ErrNotFound
	}
	r.alerts[a.ID] = copyAlert(a)
	return nil
}

func (r *AlertRepository) GetByID(ctx context.Context, tenantID, alertID string) (*entity.StockAlert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.alerts[alertID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if a.TenantID != tenantID {
		return nil, domain.ErrTenantMismatch
	}
	return copyAlert(a), nil
}

func (r *AlertRepository) GetOpenByMaterial(ctx context.Context, tenantID, materialID string) (*entity.StockAlert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a := r.openFor(tenantID, materialID); a != nil {
		return copyAlert(a), nil
	}
	return nil, nil
}

func (r *AlertRepository) ListOpenByTenant(ctx context.Context, tenantID string) ([]*entity.StockAlert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.StockAlert
	for _, a := range r.alerts {
		if a.TenantID == tenantID && a.IsOpen() {
			list = append(list, copyAlert(a))
		}
	}
	severityRank := map[string]int{
		entity.SeverityOutOfStock: 0,
		entity.SeverityCritical:   1,
		entity.SeverityLow:        2,
	}
	sort.Slice(list, func(i, j int) bool {
		if severityRank[list[i].Severity] != severityRank[list[j].Severity] {
			return severityRank[list[i].Severity] < severityRank[list[j].Severity]
		}
		return list[i].DetectedAt.Before(list[j].DetectedAt)
	})
	return list, nil
}
