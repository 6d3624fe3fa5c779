package alert

import (
	"fmt"

	"github.com/jhoicas/bom-engine/internal/domain"
	"github.com/jhoicas/bom-engine/internal/domain/entity"
)

// transitions es la tabla de transiciones de la máquina de estados:
//
//	pending      → acknowledged | resolved | dismissed
//	acknowledged → resolved | dismissed
//	resolved     → (terminal)
//	dismissed    → (terminal)
//
// El estado solo avanza por acción humana explícita; una detección posterior
// sobre una alerta abierta actualiza la fotografía de stock pero jamás el estado.
var transitions = map[string][]string{
	entity.AlertStatusPending:      {entity.AlertStatusAcknowledged, entity.AlertStatusResolved, entity.AlertStatusDismissed},
	entity.AlertStatusAcknowledged: {entity.AlertStatusResolved, entity.AlertStatusDismissed},
	entity.AlertStatusResolved:     {},
	entity.AlertStatusDismissed:    {},
}

// CanTransition indica si el paso from → to está permitido.
func CanTransition(from, to string) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Transition valida y aplica el cambio de estado sobre la alerta.
func Transition(a *entity.StockAlert, to string) error {
	if !CanTransition(a.Status, to) {
		return fmt.Errorf("alerta %s: %s → %s: %w", a.ID, a.Status, to, domain.ErrInvalidTransition)
	}
	a.Status = to
	return nil
}
