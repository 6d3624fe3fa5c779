package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/bom-engine/internal/domain/entity"
)

// MaterialRepository define el puerto de persistencia para materias primas (DIP).
// Todas las lecturas están acotadas por tenant; un tenant jamás ve materiales
// de otro.
type MaterialRepository interface {
	Create(ctx context.Context, m *entity.Material) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Material, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE); usar dentro
	// de una transacción.
	GetForUpdate(ctx context.Context, tenantID, id string) (*entity.Material, error)
	ListByIDs(ctx context.Context, tenantID string, ids []string) ([]*entity.Material, error)
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Material, error)
	// ListAlertable devuelve los materiales no archivados con punto de reorden
	// configurado (> 0), candidatos del escaneo de stock bajo.
	ListAlertable(ctx context.Context, tenantID string) ([]*entity.Material, error)
	// ListTenantIDs devuelve los tenants con materiales registrados, para los
	// escaneos globales.
	ListTenantIDs(ctx context.Context) ([]string, error)
	UpdateStock(ctx context.Context, tenantID, id string, stock decimal.Decimal) error
	UpdateUnitCost(ctx context.Context, tenantID, id string, cost decimal.Decimal) error
	UpdateReorderPolicy(ctx context.Context, tenantID, id string, reorderPoint decimal.Decimal, reorderQuantity *decimal.Decimal) error
	// Archive marca el material como archivado; nunca se borra físicamente.
	Archive(ctx context.Context, tenantID, id string) error
}
