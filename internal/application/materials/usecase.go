// Package materials administra las mutaciones de stock de materias primas:
// recepciones, consumos y ajustes, siempre transaccionales y auditadas.
package materials

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/bom-engine/internal/domain"
	"github.com/jhoicas/bom-engine/internal/domain/costing"
	"github.com/jhoicas/bom-engine/internal/domain/entity"
	"github.com/jhoicas/bom-engine/internal/domain/repository"
)

// UseCase registra movimientos de stock de forma transaccional con bloqueo de
// fila (SELECT FOR UPDATE) y Commit/Rollback. Es el único escritor de
// Material.CurrentStock.
type UseCase struct {
	txRunner     TxRunner
	materialRepo repository.MaterialRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, materialRepo repository.MaterialRepository) *UseCase {
	return &UseCase{txRunner: txRunner, materialRepo: materialRepo}
}

// AdjustStockInput entrada para registrar un movimiento de stock.
// Quantity es positiva para IN y CONSUMPTION; para ADJUSTMENT lleva signo.
// UnitCost es obligatorio en IN y actualiza el costo promedio ponderado.
type AdjustStockInput struct {
	TenantID   string
	UserID     string
	MaterialID string
	Type       string
	Quantity   decimal.Decimal
	UnitCost   *decimal.Decimal
	Reason     string
}

// AdjustStock valida la entrada, bloquea la fila del material y aplica el
// cambio de stock junto con su registro de auditoría como todo-o-nada.
// El stock resultante nunca puede quedar negativo.
func (uc *UseCase) AdjustStock(ctx context.Context, input AdjustStockInput) error {
	if input.TenantID == "" || input.MaterialID == "" {
		return domain.ErrInvalidInput
	}
	switch input.Type {
	case entity.MovementTypeIN:
		if !input.Quantity.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
		if input.UnitCost == nil || input.UnitCost.LessThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeCONSUMPTION:
		if !input.Quantity.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeADJUSTMENT:
		if input.Quantity.IsZero() {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}

	now := time.Now()
	txID := uuid.New().String()

	// Inicia transacción; Commit si todo ok, Rollback si algo falla (TxRunner.Run lo hace)
	return uc.txRunner.Run(ctx, func(
		materialRepo repository.MaterialRepository,
		movRepo repository.MovementRepository,
	) error {
		// Bloquea la fila del material para evitar condiciones de carrera
		m, err := materialRepo.GetForUpdate(ctx, input.TenantID, input.MaterialID)
		if err != nil {
			return err
		}
		if m.Archived {
			return domain.ErrConflict
		}

		delta := input.Quantity
		if input.Type == entity.MovementTypeCONSUMPTION {
			delta = input.Quantity.Neg()
		}
		newStock := m.CurrentStock.Add(delta)
		if newStock.LessThan(decimal.Zero) {
			return domain.ErrInsufficientStock
		}

		if input.Type == entity.MovementTypeIN {
			newCost := costing.WeightedAverage(m.CurrentStock, m.UnitCost, input.Quantity, *input.UnitCost)
			if err := materialRepo.UpdateUnitCost(ctx, input.TenantID, m.ID, newCost); err != nil {
				return err
			}
		}
		if err := materialRepo.UpdateStock(ctx, input.TenantID, m.ID, newStock); err != nil {
			return err
		}

		mov := &entity.StockMovement{
			ID:            uuid.New().String(),
			TransactionID: txID,
			TenantID:      input.TenantID,
			MaterialID:    m.ID,
			Type:          input.Type,
			Quantity:      delta,
			StockAfter:    newStock,
			Reason:        input.Reason,
			Date:          now,
			CreatedAt:     now,
			CreatedBy:     input.UserID,
		}
		return movRepo.Create(ctx, mov)
	})
}

// SetReorderPolicy fija el punto de reorden y la cantidad de pedido sugerida.
func (uc *UseCase) SetReorderPolicy(ctx context.Context, tenantID, materialID string, reorderPoint decimal.Decimal, reorderQuantity *decimal.Decimal) error {
	if tenantID == "" || materialID == "" {
		return domain.ErrInvalidInput
	}
	if reorderPoint.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if reorderQuantity != nil && reorderQuantity.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if _, err := uc.materialRepo.GetByID(ctx, tenantID, materialID); err != nil {
		return err
	}
	return uc.materialRepo.UpdateReorderPolicy(ctx, tenantID, materialID, reorderPoint, reorderQuantity)
}

// Archive marca el material como archivado; los materiales nunca se borran.
func (uc *UseCase) Archive(ctx context.Context, tenantID, materialID string) error {
	if tenantID == "" || materialID == "" {
		return domain.ErrInvalidInput
	}
	if _, err := uc.materialRepo.GetByID(ctx, tenantID, materialID); err != nil {
		return err
	}
	return uc.materialRepo.Archive(ctx, tenantID, materialID)
}
