package repository

import (
	"context"

	"github.com/jhoicas/bom-engine/internal/domain/entity"
)

// RecipeRepository define el puerto de persistencia para recetas y sus
// versiones. Las versiones son inmutables una vez activas: solo los borradores
// admiten UpdateDraftVersion.
type RecipeRepository interface {
	CreateRecipe(ctx context.Context, r *entity.Recipe) error
	GetRecipe(ctx context.Context, tenantID, recipeID string) (*entity.Recipe, error)
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Recipe, error)

	CreateVersion(ctx context.Context, v *entity.RecipeVersion) error
	GetVersion(ctx context.Context, tenantID, recipeID string, version int) (*entity.RecipeVersion, error)
	// GetActiveVersion devuelve la versión apuntada por CurrentVersion del linaje.
	GetActiveVersion(ctx context.Context, tenantID, recipeID string) (*entity.RecipeVersion, error)
	// UpdateDraftVersion reemplaza rendimiento y componentes de un borrador.
	// Falla con ErrInvalidTransition si la versión ya no es borrador.
	UpdateDraftVersion(ctx context.Context, v *entity.RecipeVersion) error
	SetVersionState(ctx context.Context, tenantID, versionID, state string) error
	SetCurrentVersion(ctx context.Context, tenantID, recipeID string, version int) error
	ClearCurrentVersion(ctx context.Context, tenantID, recipeID string) error
}
