package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/bom-engine/internal/domain/entity"
	"github.com/jhoicas/bom-engine/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación de MovementRepository sobre PostgreSQL.
// Los movimientos son el registro de auditoría del stock: solo se insertan,
// nunca se actualizan ni borran.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create guarda el registro del movimiento (misma tx que el cambio de stock).
func (r *MovementRepo) Create(ctx context.Context, mov *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, transaction_id, tenant_id, material_id, type,
			quantity, stock_after, reason, date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query, mov.ID, mov.TransactionID, mov.TenantID, mov.MaterialID,
		mov.Type, mov.Quantity, mov.StockAfter, mov.Reason, mov.Date, mov.CreatedAt, mov.CreatedBy)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// ListByMaterial devuelve el historial de movimientos del material, recientes primero.
func (r *MovementRepo) ListByMaterial(ctx context.Context, tenantID, materialID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, transaction_id, tenant_id, material_id, type, quantity, stock_after,
			reason, date, created_at, created_by
		FROM stock_movements
		WHERE tenant_id = $1 AND material_id = $2
		ORDER BY date DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, tenantID, materialID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.TransactionID, &m.TenantID, &m.MaterialID, &m.Type,
			&m.Quantity, &m.StockAfter, &m.Reason, &m.Date, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
