package repository

import (
	"context"

	"github.com/jhoicas/bom-engine/internal/domain/entity"
)

// MovementRepository define el puerto para el registro de auditoría de stock.
// Se usa dentro de la misma transacción que la mutación de stock.
type MovementRepository interface {
	Create(ctx context.Context, mov *entity.StockMovement) error
	ListByMaterial(ctx context.Context, tenantID, materialID string, limit, offset int) ([]*entity.StockMovement, error)
}
