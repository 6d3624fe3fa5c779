package materials

import (
	"context"

	"github.com/jhoicas/bom-engine/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la mutación de stock y su
// registro de auditoría se apliquen juntos o no se apliquen.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		materialRepo repository.MaterialRepository,
		movRepo repository.MovementRepository,
	) error) error
}
