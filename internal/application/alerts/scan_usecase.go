// Package alerts implementa la detección de stock bajo y el ciclo de vida de
// las alertas.
package alerts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/bom-engine/internal/application/dto"
	"github.com/jhoicas/bom-engine/internal/domain"
	"github.com/jhoicas/bom-engine/internal/domain/alert"
	"github.com/jhoicas/bom-engine/internal/domain/entity"
	"github.com/jhoicas/bom-engine/internal/domain/repository"
	"github.com/jhoicas/bom-engine/pkg/logger"
)

// ScanUseCase recorre los materiales con punto de reorden configurado y
// mantiene las alertas abiertas al día. Lo invoca un cron externo; el motor
// nunca se agenda a sí mismo.
type ScanUseCase struct {
	materialRepo repository.MaterialRepository
	alertRepo    repository.AlertRepository
	notifier     repository.AlertNotifier
	log          *logger.Logger
}

// NewScanUseCase construye el caso de uso de escaneo.
func NewScanUseCase(
	materialRepo repository.MaterialRepository,
	alertRepo repository.AlertRepository,
	notifier repository.AlertNotifier,
	log *logger.Logger,
) *ScanUseCase {
	return &ScanUseCase{
		materialRepo: materialRepo,
		alertRepo:    alertRepo,
		notifier:     notifier,
		log:          log,
	}
}

// ScanAll escanea todos los tenants con materiales registrados. El fallo de un
// tenant se cuenta y se registra pero no aborta los demás: el resultado es un
// resumen de éxito parcial.
func (uc *ScanUseCase) ScanAll(ctx context.Context) (dto.ScanSummaryDTO, error) {
	tenants, err := uc.materialRepo.ListTenantIDs(ctx)
	if err != nil {
		return dto.ScanSummaryDTO{}, fmt.Errorf("listar tenants: %w", err)
	}

	var summary dto.ScanSummaryDTO
	for _, tenantID := range tenants {
		tenantSummary, err := uc.ScanTenant(ctx, tenantID)
		if err != nil {
			uc.log.Error().Err(err).Str("tenant_id", tenantID).Msg("escaneo de tenant falló")
			summary.Failed++
			continue
		}
		summary.Merge(tenantSummary)
	}
	summary.TenantsScanned = len(tenants)
	return summary, nil
}

// ScanTenant escanea un solo tenant. Los fallos por material se cuentan y se
// registran sin abortar el resto del escaneo.
func (uc *ScanUseCase) ScanTenant(ctx context.Context, tenantID string) (dto.ScanSummaryDTO, error) {
	if tenantID == "" {
		return dto.ScanSummaryDTO{}, domain.ErrInvalidInput
	}
	materials, err := uc.materialRepo.ListAlertable(ctx, tenantID)
	if err != nil {
		return dto.ScanSummaryDTO{}, fmt.Errorf("listar materiales alertables: %w", err)
	}

	summary := dto.ScanSummaryDTO{TenantsScanned: 1}
	for _, m := range materials {
		outcome, err := uc.detect(ctx, m)
		if err != nil {
			uc.log.Error().Err(err).
				Str("tenant_id", tenantID).
				Str("material_id", m.ID).
				Msg("detección de stock bajo falló")
			summary.Failed++
			continue
		}
		switch outcome {
		case outcomeCreated:
			summary.AlertsCreated++
		case outcomeUpdated:
			summary.AlertsUpdated++
		default:
			summary.AlertsSkipped++
		}
	}
	return summary, nil
}

type detectOutcome int

const (
	outcomeSkipped detectOutcome = iota
	outcomeCreated
	outcomeUpdated
)

// detect aplica la política de detección sobre un material:
//
//	sano     + sin alerta abierta → no-op
//	sano     + alerta abierta     → no-op (cerrar es acción humana)
//	enfermo  + sin alerta abierta → crea alerta pending y notifica
//	enfermo  + alerta abierta     → actualiza fotografía y severidad en sitio;
//	                                el estado jamás avanza solo
//
// Dos escaneos simultáneos que corran a crear la primera alerta se serializan
// con la unicidad atómica del repositorio: el perdedor recibe ErrConflict y se
// degrada a actualización, nunca a error de usuario.
func (uc *ScanUseCase) detect(ctx context.Context, m *entity.Material) (detectOutcome, error) {
	severity := alert.ClassifyMaterial(m)

	open, err := uc.alertRepo.GetOpenByMaterial(ctx, m.TenantID, m.ID)
	if err != nil {
		return outcomeSkipped, err
	}

	if severity == alert.SeverityHealthy {
		return outcomeSkipped, nil
	}

	if open != nil {
		return uc.refreshOpen(ctx, open, m, severity)
	}

	now := time.Now()
	created := &entity.StockAlert{
		ID:                   uuid.New().String(),
		TenantID:             m.TenantID,
		MaterialID:           m.ID,
		StockSnapshot:        m.CurrentStock,
		ReorderPointSnapshot: m.ReorderPoint,
		Severity:             severity,
		Status:               entity.AlertStatusPending,
		DetectedAt:           now,
		UpdatedAt:            now,
	}
	if err := uc.alertRepo.Create(ctx, created); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// Otro escaneo ganó la carrera: releer y tratar como actualización
			open, err = uc.alertRepo.GetOpenByMaterial(ctx, m.TenantID, m.ID)
			if err != nil {
				return outcomeSkipped, err
			}
			if open == nil {
				return outcomeSkipped, domain.ErrConflict
			}
			return uc.refreshOpen(ctx, open, m, severity)
		}
		return outcomeSkipped, err
	}

	if uc.notifier != nil {
		// La entrega es externa; un fallo de notificación no invalida la alerta
		if err := uc.notifier.NotifyAlertCreated(ctx, created, m); err != nil {
			uc.log.Warn().Err(err).Str("alert_id", created.ID).Msg("notificación de alerta falló")
		}
	}
	return outcomeCreated, nil
}

// refreshOpen actualiza la fotografía de una alerta abierta sin tocar su estado.
func (uc *ScanUseCase) refreshOpen(ctx context.Context, open *entity.StockAlert, m *entity.Material, severity string) (detectOutcome, error) {
	open.StockSnapshot = m.CurrentStock
	open.ReorderPointSnapshot = m.ReorderPoint
	open.Severity = severity
	open.UpdatedAt = time.Now()
	if err := uc.alertRepo.Update(ctx, open); err != nil {
		return outcomeSkipped, err
	}
	return outcomeUpdated, nil
}
