// Package recipes administra el catálogo de recetas con versionado
// copy-on-write: las versiones activas son inmutables y toda edición produce
// un borrador nuevo.
package recipes

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/bom-engine/internal/domain"
	"github.com/jhoicas/bom-engine/internal/domain/entity"
	"github.com/jhoicas/bom-engine/internal/domain/repository"
)

// UseCase orquesta el ciclo de vida de recetas: Draft → Active → Archived,
// con versionado copy-on-write sobre el linaje.
type UseCase struct {
	txRunner   TxRunner
	recipeRepo repository.RecipeRepository
}

// NewUseCase construye el caso de uso del catálogo.
func NewUseCase(txRunner TxRunner, recipeRepo repository.RecipeRepository) *UseCase {
	return &UseCase{txRunner: txRunner, recipeRepo: recipeRepo}
}

// ComponentInput un componente de la receta en el orden dado por el usuario.
type ComponentInput struct {
	MaterialID      string
	QuantityPerUnit decimal.Decimal
	Unit            string
}

// CreateDraftInput entrada para crear una receta con su primer borrador.
type CreateDraftInput struct {
	TenantID      string
	ProductID     string
	Name          string
	YieldQuantity decimal.Decimal
	YieldUnit     string
	Components    []ComponentInput
}

func validateDraft(yieldQuantity decimal.Decimal, components []ComponentInput) error {
	if yieldQuantity.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("rendimiento debe ser > 0: %w", domain.ErrConfiguration)
	}
	seen := make(map[string]bool, len(components))
	for _, c := range components {
		if c.MaterialID == "" || c.Unit == "" {
			return domain.ErrInvalidInput
		}
		if c.QuantityPerUnit.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("material %s: cantidad por unidad debe ser > 0: %w", c.MaterialID, domain.ErrConfiguration)
		}
		if seen[c.MaterialID] {
			return fmt.Errorf("material %s repetido en la receta: %w", c.MaterialID, domain.ErrConfiguration)
		}
		seen[c.MaterialID] = true
	}
	return nil
}

func buildComponents(versionID string, components []ComponentInput) []entity.RecipeComponent {
	out := make([]entity.RecipeComponent, 0, len(components))
	for i, c := range components {
		out = append(out, entity.RecipeComponent{
			VersionID:       versionID,
			MaterialID:      c.MaterialID,
			QuantityPerUnit: c.QuantityPerUnit,
			Unit:            c.Unit,
			Position:        i,
		})
	}
	return out
}

// CreateDraft crea el linaje y su versión 1 en borrador.
func (uc *UseCase) CreateDraft(ctx context.Context, input CreateDraftInput) (*entity.Recipe, *entity.RecipeVersion, error) {
	if input.TenantID == "" || input.Name == "" {
		return nil, nil, domain.ErrInvalidInput
	}
	if err := validateDraft(input.YieldQuantity, input.Components); err != nil {
		return nil, nil, err
	}

	now := time.Now()
	recipe := &entity.Recipe{
		ID:        uuid.New().String(),
		TenantID:  input.TenantID,
		ProductID: input.ProductID,
		Name:      input.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	versionID := uuid.New().String()
	version := &entity.RecipeVersion{
		ID:            versionID,
		RecipeID:      recipe.ID,
		TenantID:      input.TenantID,
		Version:       1,
		State:         entity.RecipeStateDraft,
		YieldQuantity: input.YieldQuantity,
		YieldUnit:     input.YieldUnit,
		Components:    buildComponents(versionID, input.Components),
		CreatedAt:     now,
	}

	err := uc.txRunner.RunRecipes(ctx, func(recipeRepo repository.RecipeRepository) error {
		if err := recipeRepo.CreateRecipe(ctx, recipe); err != nil {
			return err
		}
		return recipeRepo.CreateVersion(ctx, version)
	})
	if err != nil {
		return nil, nil, err
	}
	return recipe, version, nil
}

// UpdateDraft reemplaza rendimiento y componentes de un borrador en sitio.
// Una versión activa o archivada jamás se edita: usar NewVersionFrom.
func (uc *UseCase) UpdateDraft(ctx context.Context, tenantID, recipeID string, version int, yieldQuantity decimal.Decimal, yieldUnit string, components []ComponentInput) (*entity.RecipeVersion, error) {
	if tenantID == "" || recipeID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := validateDraft(yieldQuantity, components); err != nil {
		return nil, err
	}
	v, err := uc.recipeRepo.GetVersion(ctx, tenantID, recipeID, version)
	if err != nil {
		return nil, err
	}
	if !v.IsOpenForEdit() {
		return nil, fmt.Errorf("la versión %d está %s: %w", v.Version, v.State, domain.ErrInvalidTransition)
	}

	v.YieldQuantity = yieldQuantity
	v.YieldUnit = yieldUnit
	v.Components = buildComponents(v.ID, components)
	if err := uc.recipeRepo.UpdateDraftVersion(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Activate promueve un borrador a activo, archiva la versión activa anterior y
// mueve el puntero del linaje, todo en una sola transacción.
func (uc *UseCase) Activate(ctx context.Context, tenantID, recipeID string, version int) error {
	if tenantID == "" || recipeID == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.RunRecipes(ctx, func(recipeRepo repository.RecipeRepository) error {
		v, err := recipeRepo.GetVersion(ctx, tenantID, recipeID, version)
		if err != nil {
			return err
		}
		if v.State != entity.RecipeStateDraft {
			return fmt.Errorf("solo un borrador puede activarse, la versión %d está %s: %w",
				v.Version, v.State, domain.ErrInvalidTransition)
		}
		recipe, err := recipeRepo.GetRecipe(ctx, tenantID, recipeID)
		if err != nil {
			return err
		}
		if recipe.CurrentVersion != nil {
			prev, err := recipeRepo.GetVersion(ctx, tenantID, recipeID, *recipe.CurrentVersion)
			if err != nil {
				return err
			}
			if err := recipeRepo.SetVersionState(ctx, tenantID, prev.ID, entity.RecipeStateArchived); err != nil {
				return err
			}
		}
		if err := recipeRepo.SetVersionState(ctx, tenantID, v.ID, entity.RecipeStateActive); err != nil {
			return err
		}
		return recipeRepo.SetCurrentVersion(ctx, tenantID, recipeID, v.Version)
	})
}

// NewVersionFrom crea un borrador copy-on-write a partir de una versión
// existente (típicamente la activa) con Version = máxima + 1.
func (uc *UseCase) NewVersionFrom(ctx context.Context, tenantID, recipeID string, fromVersion int) (*entity.RecipeVersion, error) {
	if tenantID == "" || recipeID == "" {
		return nil, domain.ErrInvalidInput
	}
	src, err := uc.recipeRepo.GetVersion(ctx, tenantID, recipeID, fromVersion)
	if err != nil {
		return nil, err
	}

	versionID := uuid.New().String()
	components := make([]entity.RecipeComponent, 0, len(src.Components))
	for _, c := range src.Components {
		c.VersionID = versionID
		components = append(components, c)
	}
	draft := &entity.RecipeVersion{
		ID:            versionID,
		RecipeID:      recipeID,
		TenantID:      tenantID,
		Version:       src.Version + 1,
		State:         entity.RecipeStateDraft,
		YieldQuantity: src.YieldQuantity,
		YieldUnit:     src.YieldUnit,
		Components:    components,
		CreatedAt:     time.Now(),
	}
	err = uc.txRunner.RunRecipes(ctx, func(recipeRepo repository.RecipeRepository) error {
		return recipeRepo.CreateVersion(ctx, draft)
	})
	if err != nil {
		return nil, err
	}
	return draft, nil
}

// Archive archiva la versión activa y limpia el puntero del linaje.
func (uc *UseCase) Archive(ctx context.Context, tenantID, recipeID string) error {
	if tenantID == "" || recipeID == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.RunRecipes(ctx, func(recipeRepo repository.RecipeRepository) error {
		v, err := recipeRepo.GetActiveVersion(ctx, tenantID, recipeID)
		if err != nil {
			return err
		}
		if err := recipeRepo.SetVersionState(ctx, tenantID, v.ID, entity.RecipeStateArchived); err != nil {
			return err
		}
		return recipeRepo.ClearCurrentVersion(ctx, tenantID, recipeID)
	})
}
