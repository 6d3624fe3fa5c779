package repository

import (
	"context"

	"github.com/jhoicas/bom-engine/internal/domain/entity"
)

// AlertRepository define el puerto de persistencia para alertas de stock.
// La implementación debe garantizar de forma atómica que nunca existan dos
// alertas abiertas (pending/acknowledged) para el mismo (tenant_id,
// material_id): Create devuelve ErrConflict cuando otra escritura ganó la
// carrera, y el caller la trata como actualización, nunca como error de usuario.
type AlertRepository interface {
	Create(ctx context.Context, a *entity.StockAlert) error
	Update(ctx context.Context, a *entity.StockAlert) error
	GetByID(ctx context.Context, tenantID, alertID string) (*entity.StockAlert, error)
	// GetOpenByMaterial devuelve la alerta abierta del material, o nil si no hay.
	GetOpenByMaterial(ctx context.Context, tenantID, materialID string) (*entity.StockAlert, error)
	ListOpenByTenant(ctx context.Context, tenantID string) ([]*entity.StockAlert, error)
}
