// Package memory contiene implementaciones en memoria de los puertos de
// persistencia, serializadas con mutex. Se usan en tests y en entornos sin
// PostgreSQL; la semántica (incluida la unicidad de alerta abierta) replica a
// la de los adaptadores SQL.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/bom-engine/internal/domain"
	"github.com/jhoicas/bom-engine/internal/domain/entity"
	"github.com/jhoicas/bom-engine/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepository)(nil)

// MaterialRepository almacena materiales en memoria.
type MaterialRepository struct {
	mu        sync.RWMutex
	materials map[string]*entity.Material // por ID
}

// NewMaterialRepository crea el repositorio vacío.
func NewMaterialRepository() *MaterialRepository {
	return &MaterialRepository{materials: make(map[string]*entity.Material)}
}

func copyMaterial(m *entity.Material) *entity.Material {
	c := *m
	if m.ReorderQuantity != nil {
		q := *m.ReorderQuantity
		c.ReorderQuantity = &q
	}
	return &c
}

func (r *MaterialRepository) Create(ctx context.Context, m *entity.Material) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.materials[m.ID]; ok {
		return domain.ErrConflict
	}
	r.materials[m.ID] = copyMaterial(m)
	return nil
}

func (r *MaterialRepository) get(tenantID, id string) (*entity.Material, error) {
	m, ok := r.materials[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if m.TenantID != tenantID {
		return nil, domain.ErrTenantMismatch
	}
	return m, nil
}

func (r *MaterialRepository) GetByID(ctx context.Context, tenantID, id string) (*entity.Material, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, err := r.get(tenantID, id)
	if err != nil {
		return nil, err
	}
	return copyMaterial(m), nil
}

// GetForUpdate en memoria equivale a GetByID: la serialización la da el mutex.
func (r *MaterialRepository) GetForUpdate(ctx context.Context, tenantID, id string) (*entity.Material, error) {
	return r.GetByID(ctx, tenantID, id)
}

func (r *MaterialRepository) ListByIDs(ctx context.Context, tenantID string, ids []string) ([]*entity.Material, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*entity.Material
	for _, id := range ids {
		if m, ok := r.materials[id]; ok && m.TenantID == tenantID {
			list = append(list, copyMaterial(m))
		}
	}
	return list, nil
}

func (r *MaterialRepository) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Material, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*entity.Material
	for _, m := range r.materials {
		if m.TenantID == tenantID {
			list = append(list, copyMaterial(m))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

func (r *MaterialRepository) ListAlertable(ctx context.Context, tenantID string) ([]*entity.Material, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*entity.Material
	for _, m := range r.materials {
		if m.TenantID == tenantID && !m.Archived && m.ReorderPoint.GreaterThan(decimal.Zero) {
			list = append(list, copyMaterial(m))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *MaterialRepository) ListTenantIDs(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]bool)
	var ids []string
	for _, m := range r.materials {
		if !seen[m.TenantID] {
			seen[m.TenantID] = true
			ids = append(ids, m.TenantID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *MaterialRepository) UpdateStock(ctx context.Context, tenantID, id string, stock decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, err := r.get(tenantID, id)
	if err != nil {
		return err
	}
	m.CurrentStock = stock
	m.UpdatedAt = time.Now()
	return nil
}

func (r *MaterialRepository) UpdateUnitCost(ctx context.Context, tenantID, id string, cost decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, err := r.get(tenantID, id)
	if err != nil {
		return err
	}
	m.UnitCost = cost
	m.UpdatedAt = time.Now()
	return nil
}

func (r *MaterialRepository) UpdateReorderPolicy(ctx context.Context, tenantID, id string, reorderPoint decimal.Decimal, reorderQuantity *decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, err := r.get(tenantID, id)
	if err != nil {
		return err
	}
	m.ReorderPoint = reorderPoint
	if reorderQuantity != nil {
		q := *reorderQuantity
		m.ReorderQuantity = &q
	} else {
		m.ReorderQuantity = nil
	}
	m.UpdatedAt = time.Now()
	return nil
}

func (r *MaterialRepository) Archive(ctx context.Context, tenantID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, err := r.get(tenantID, id)
	if err != nil {
		return err
	}
	m.Archived = true
	m.UpdatedAt = time.Now()
	return nil
}
