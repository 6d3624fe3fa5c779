package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una versión de receta.
const (
	RecipeStateDraft    = "draft"
	RecipeStateActive   = "active"
	RecipeStateArchived = "archived"
)

// Recipe es el linaje de una receta: agrupa todas sus versiones y apunta a la
// versión activa actual (puede no haber ninguna si todo está en borrador).
type Recipe struct {
	ID              string
	TenantID        string
	ProductID       string
	Name            string
	CurrentVersion  *int // versión activa; nil si no hay versión activa
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RecipeVersion es una fotografía inmutable de la receta. Una versión activa
// jamás se muta en sitio: editarla crea un borrador con Version+1
// (copy-on-write). Components conserva el orden definido por el usuario, que
// además decide el desempate del material limitante.
type RecipeVersion struct {
	ID            string
	RecipeID      string
	TenantID      string
	Version       int
	State         string // draft, active, archived
	YieldQuantity decimal.Decimal
	YieldUnit     string
	Components    []RecipeComponent
	CreatedAt     time.Time
	ActivatedAt   *time.Time
}

// RecipeComponent es un par material/cantidad dentro de una versión de receta.
// Unit debe coincidir exactamente con la unidad base del material; no hay
// conversión implícita entre unidades.
type RecipeComponent struct {
	VersionID       string
	MaterialID      string
	QuantityPerUnit decimal.Decimal // cantidad por unidad de rendimiento (> 0)
	Unit            string
	Position        int // orden dentro de la receta (0-based)
}

// IsOpenForEdit indica si la versión admite mutación en sitio (solo borradores).
func (v *RecipeVersion) IsOpenForEdit() bool {
	return v.State == RecipeStateDraft
}
