package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/bom-engine/internal/domain"
	"github.com/jhoicas/bom-engine/internal/domain/entity"
	"github.com/jhoicas/bom-engine/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo implementación de AlertRepository sobre PostgreSQL.
// La unicidad de alerta abierta por (tenant_id, material_id) la garantiza un
// índice único parcial sobre status IN ('pending','acknowledged'): dos
// escaneos simultáneos no pueden crear duplicados; el perdedor recibe
// ErrConflict y el caso de uso lo degrada a actualización.
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

const alertColumns = `id, tenant_id, material_id, stock_snapshot, reorder_point_snapshot,
	severity, status, action_notes, detected_at, acknowledged_at, resolved_at, updated_at`

func scanAlert(row pgx.Row) (*entity.StockAlert, error) {
	var a entity.StockAlert
	err := row.Scan(&a.ID, &a.TenantID, &a.MaterialID, &a.StockSnapshot, &a.ReorderPointSnapshot,
		&a.Severity, &a.Status, &a.ActionNotes, &a.DetectedAt, &a.AcknowledgedAt, &a.ResolvedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserta una alerta nueva. Devuelve ErrConflict si ya existe una
// alerta abierta para el mismo material (violación del índice único parcial).
func (r *AlertRepo) Create(ctx context.Context, a *entity.StockAlert) error {
	query := `
		INSERT INTO stock_alerts (id, tenant_id, material_id, stock_snapshot, reorder_point_snapshot,
			severity, status, action_notes, detected_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query, a.ID, a.TenantID, a.MaterialID, a.StockSnapshot,
		a.ReorderPointSnapshot, a.Severity, a.Status, a.ActionNotes, a.DetectedAt, a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("create alert: %w", err)
	}
	return nil
}

// Update persiste fotografía, severidad, estado y notas de la alerta.
func (r *AlertRepo) Update(ctx context.Context, a *entity.StockAlert) error {
	query := `
		UPDATE stock_alerts
		SET stock_snapshot = $2, reorder_point_snapshot = $3, severity = $4, status = $5,
			action_notes = $6, acknowledged_at = $7, resolved_at = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, a.ID, a.StockSnapshot, a.ReorderPointSnapshot,
		a.Severity, a.Status, a.ActionNotes, a.AcknowledgedAt, a.ResolvedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update alert: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene la alerta y verifica el tenant antes de devolverla.
func (r *AlertRepo) GetByID(ctx context.Context, tenantID, alertID string) (*entity.StockAlert, error) {
	query := `SELECT ` + alertColumns + ` FROM stock_alerts WHERE id = $1`
	a, err := scanAlert(r.q.QueryRow(ctx, query, alertID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get alert: %w", err)
	}
	if a.TenantID != tenantID {
		return nil, domain.ErrTenantMismatch
	}
	return a, nil
}

// GetOpenByMaterial devuelve la alerta abierta del material, o nil si no hay.
func (r *AlertRepo) GetOpenByMaterial(ctx context.Context, tenantID, materialID string) (*entity.StockAlert, error) {
	query := `SELECT ` + alertColumns + ` FROM stock_alerts
		WHERE tenant_id = $1 AND material_id = $2 AND status IN ('pending', 'acknowledged')`
	a, err := scanAlert(r.q.QueryRow(ctx, query, tenantID, materialID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get open alert: %w", err)
	}
	return a, nil
}

// ListOpenByTenant devuelve las alertas abiertas del tenant, más severas primero.
func (r *AlertRepo) ListOpenByTenant(ctx context.Context, tenantID string) ([]*entity.StockAlert, error) {
	query := `SELECT ` + alertColumns + ` FROM stock_alerts
		WHERE tenant_id = $1 AND status IN ('pending', 'acknowledged')
		ORDER BY CASE severity
			WHEN 'out_of_stock' THEN 0
			WHEN 'critical' THEN 1
			ELSE 2
		END, detected_at`
	rows, err := r.q.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list open alerts: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockAlert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
