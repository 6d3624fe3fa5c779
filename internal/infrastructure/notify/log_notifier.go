// Package notify contiene adaptadores del puerto de notificaciones. La
// entrega real (email, push, webhook) es un colaborador externo: aquí solo se
// publica la decisión de notificar con su payload.
package notify

import (
	"context"

	"github.com/jhoicas/bom-engine/internal/domain/entity"
	"github.com/jhoicas/bom-engine/internal/domain/repository"
	"github.com/jhoicas/bom-engine/pkg/logger"
)

var _ repository.AlertNotifier = (*LogNotifier)(nil)

// LogNotifier registra la decisión de notificación como evento estructurado.
// Un recolector externo (o un adaptador futuro) se encarga del despacho.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el adaptador.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// NotifyAlertCreated publica el payload de la alerta recién creada.
func (n *LogNotifier) NotifyAlertCreated(ctx context.Context, a *entity.StockAlert, m *entity.Material) error {
	n.log.Info().
		Str("event", "stock_alert_created").
		Str("tenant_id", a.TenantID).
		Str("alert_id", a.ID).
		Str("material_id", m.ID).
		Str("material_name", m.Name).
		Str("severity", a.Severity).
		Str("stock", a.StockSnapshot.String()).
		Str("reorder_point", a.ReorderPointSnapshot.String()).
		Msg("notificar alerta de stock bajo")
	return nil
}
