package recipes

import (
	"context"

	"github.com/jhoicas/bom-engine/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con el
// repositorio de recetas atado a esa tx. La activación de una versión toca el
// puntero del linaje y el estado de dos versiones: tiene que ser atómica.
type TxRunner interface {
	RunRecipes(ctx context.Context, fn func(recipeRepo repository.RecipeRepository) error) error
}
