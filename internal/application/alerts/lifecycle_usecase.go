package alerts

import (
	"context"
	"time"

	"github.com/jhoicas/bom-engine/internal/application/dto"
	"github.com/jhoicas/bom-engine/internal/domain"
	"github.com/jhoicas/bom-engine/internal/domain/alert"
	"github.com/jhoicas/bom-engine/internal/domain/entity"
	"github.com/jhoicas/bom-engine/internal/domain/repository"
)

// LifecycleUseCase aplica las acciones humanas sobre una alerta: reconocer,
// resolver y descartar. Son las únicas vías para avanzar el estado; los estados
// terminales son definitivos y una recurrencia posterior crea una alerta nueva.
type LifecycleUseCase struct {
	alertRepo repository.AlertRepository
}

// NewLifecycleUseCase construye el caso de uso.
func NewLifecycleUseCase(alertRepo repository.AlertRepository) *LifecycleUseCase {
	return &LifecycleUseCase{alertRepo: alertRepo}
}

// Acknowledge pasa la alerta de pending a acknowledged.
func (uc *LifecycleUseCase) Acknowledge(ctx context.Context, tenantID, alertID, notes string) (dto.StockAlertDTO, error) {
	return uc.transition(ctx, tenantID, alertID, notes, entity.AlertStatusAcknowledged)
}

// Resolve cierra la alerta tras la reposición (pending o acknowledged → resolved).
func (uc *LifecycleUseCase) Resolve(ctx context.Context, tenantID, alertID, notes string) (dto.StockAlertDTO, error) {
	return uc.transition(ctx, tenantID, alertID, notes, entity.AlertStatusResolved)
}

// Dismiss descarta la alerta sin reposición (pending o acknowledged → dismissed).
func (uc *LifecycleUseCase) Dismiss(ctx context.Context, tenantID, alertID, notes string) (dto.StockAlertDTO, error) {
	return uc.transition(ctx, tenantID, alertID, notes, entity.AlertStatusDismissed)
}

// ListOpen devuelve las alertas abiertas del tenant.
func (uc *LifecycleUseCase) ListOpen(ctx context.Context, tenantID string) ([]dto.StockAlertDTO, error) {
	if tenantID == "" {
		return nil, domain.ErrInvalidInput
	}
	open, err := uc.alertRepo.ListOpenByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockAlertDTO, 0, len(open))
	for _, a := range open {
		out = append(out, dto.NewStockAlertDTO(a))
	}
	return out, nil
}

func (uc *LifecycleUseCase) transition(ctx context.Context, tenantID, alertID, notes, to string) (dto.StockAlertDTO, error) {
	if tenantID == "" || alertID == "" {
		return dto.StockAlertDTO{}, domain.ErrInvalidInput
	}
	a, err := uc.alertRepo.GetByID(ctx, tenantID, alertID)
	if err != nil {
		return dto.StockAlertDTO{}, err
	}
	if err := alert.Transition(a, to); err != nil {
		return dto.StockAlertDTO{}, err
	}

	now := time.Now()
	if notes != "" {
		a.ActionNotes = notes
	}
	switch to {
	case entity.AlertStatusAcknowledged:
		a.AcknowledgedAt = &now
	case entity.AlertStatusResolved, entity.AlertStatusDismissed:
		a.ResolvedAt = &now
	}
	a.UpdatedAt = now

	if err := uc.alertRepo.Update(ctx, a); err != nil {
		return dto.StockAlertDTO{}, err
	}
	return dto.NewStockAlertDTO(a), nil
}
