package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/bom-engine/internal/domain"
	"github.com/jhoicas/bom-engine/internal/domain/entity"
	"github.com/jhoicas/bom-engine/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo implementación de MaterialRepository sobre PostgreSQL (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador de materiales. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

const materialColumns = `id, tenant_id, name, unit, category, unit_cost, current_stock,
	reorder_point, reorder_quantity, archived, created_at, updated_at`

func scanMaterial(row pgx.Row) (*entity.Material, error) {
	var m entity.Material
	err := row.Scan(&m.ID, &m.TenantID, &m.Name, &m.Unit, &m.Category, &m.UnitCost,
		&m.CurrentStock, &m.ReorderPoint, &m.ReorderQuantity, &m.Archived, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create persiste un nuevo material.
func (r *MaterialRepo) Create(ctx context.Context, m *entity.Material) error {
	query := `
		INSERT INTO materials (id, tenant_id, name, unit, category, unit_cost, current_stock,
			reorder_point, reorder_quantity, archived, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())`
	_, err := r.q.Exec(ctx, query, m.ID, m.TenantID, m.Name, m.Unit, m.Category,
		m.UnitCost, m.CurrentStock, m.ReorderPoint, m.ReorderQuantity, m.Archived)
	if err != nil {
		return fmt.Errorf("create material: %w", err)
	}
	return nil
}

// GetByID obtiene el material y verifica el tenant antes de devolverlo:
// un material de otro tenant produce ErrTenantMismatch, no ErrNotFound.
func (r *MaterialRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE id = $1`
	m, err := scanMaterial(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	if m.TenantID != tenantID {
		return nil, domain.ErrTenantMismatch
	}
	return m, nil
}

// GetForUpdate obtiene el material y bloquea la fila (SELECT FOR UPDATE).
func (r *MaterialRepo) GetForUpdate(ctx context.Context, tenantID, id string) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE id = $1 FOR UPDATE`
	m, err := scanMaterial(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get material for update: %w", err)
	}
	if m.TenantID != tenantID {
		return nil, domain.ErrTenantMismatch
	}
	return m, nil
}

func (r *MaterialRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Material, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// ListByIDs devuelve los materiales del tenant cuyos IDs están en ids.
func (r *MaterialRepo) ListByIDs(ctx context.Context, tenantID string, ids []string) ([]*entity.Material, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + materialColumns + ` FROM materials WHERE tenant_id = $1 AND id = ANY($2)`
	return r.list(ctx, query, tenantID, ids)
}

func (r *MaterialRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials
		WHERE tenant_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	return r.list(ctx, query, tenantID, limit, offset)
}

// ListAlertable devuelve los materiales no archivados con punto de reorden configurado.
func (r *MaterialRepo) ListAlertable(ctx context.Context, tenantID string) ([]*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials
		WHERE tenant_id = $1 AND archived = false AND reorder_point > 0
		ORDER BY name`
	return r.list(ctx, query, tenantID)
}

// ListTenantIDs devuelve los tenants con materiales registrados.
func (r *MaterialRepo) ListTenantIDs(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT DISTINCT tenant_id FROM materials ORDER BY tenant_id`)
	if err != nil {
		return nil, fmt.Errorf("list tenant ids: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan tenant id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// UpdateStock fija el stock actual del material.
func (r *MaterialRepo) UpdateStock(ctx context.Context, tenantID, id string, stock decimal.Decimal) error {
	query := `UPDATE materials SET current_stock = $3, updated_at = now()
		WHERE tenant_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query, tenantID, id, stock)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateUnitCost fija el costo promedio ponderado del material.
func (r *MaterialRepo) UpdateUnitCost(ctx context.Context, tenantID, id string, cost decimal.Decimal) error {
	query := `UPDATE materials SET unit_cost = $3, updated_at = now()
		WHERE tenant_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query, tenantID, id, cost)
	if err != nil {
		return fmt.Errorf("update unit cost: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateReorderPolicy fija punto de reorden y cantidad sugerida de pedido.
func (r *MaterialRepo) UpdateReorderPolicy(ctx context.Context, tenantID, id string, reorderPoint decimal.Decimal, reorderQuantity *decimal.Decimal) error {
	query := `UPDATE materials SET reorder_point = $3, reorder_quantity = $4, updated_at = now()
		WHERE tenant_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query, tenantID, id, reorderPoint, reorderQuantity)
	if err != nil {
		return fmt.Errorf("update reorder policy: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Archive marca el material como archivado (nunca se borra físicamente).
func (r *MaterialRepo) Archive(ctx context.Context, tenantID, id string) error {
	query := `UPDATE materials SET archived = true, updated_at = now()
		WHERE tenant_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query, tenantID, id)
	if err != nil {
		return fmt.Errorf("archive material: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
