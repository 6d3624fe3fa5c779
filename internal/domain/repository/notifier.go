package repository

import (
	"context"

	"github.com/jhoicas/bom-engine/internal/domain/entity"
)

// AlertNotifier es el puerto de despacho de notificaciones: el motor decide
// cuándo notificar y arma el payload; la entrega (email, push, webhook) es un
// colaborador externo. Un fallo de notificación no debe abortar el escaneo.
type AlertNotifier interface {
	NotifyAlertCreated(ctx context.Context, a *entity.StockAlert, m *entity.Material) error
}
