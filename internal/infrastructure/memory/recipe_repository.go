package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/bom-engine/internal/domain"
	"github.com/jhoicas/bom-engine/internal/domain/entity"
	"github.com/jhoicas/bom-engine/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepository)(nil)

// RecipeRepository almacena linajes y versiones en memoria.
type RecipeRepository struct {
	mu       sync.RWMutex
	recipes  map[string]*entity.Recipe        // por ID de linaje
	versions map[string]*entity.RecipeVersion // por ID de versión
}

// NewRecipeRepository crea el repositorio vacío.
func NewRecipeRepository() *RecipeRepository {
	return &RecipeRepository{
		recipes:  make(map[string]*entity.Recipe),
		versions: make(map[string]*entity.RecipeVersion),
	}
}

func copyRecipe(r *entity.Recipe) *entity.Recipe {
	c := *r
	if r.CurrentVersion != nil {
		v := *r.CurrentVersion
		c.CurrentVersion = &v
	}
	return &c
}

func copyVersion(v *entity.RecipeVersion) *entity.RecipeVersion {
	c := *v
	c.Components = make([]entity.RecipeComponent, len(v.Components))
	copy(c.Components, v.Components)
	if v.ActivatedAt != nil {
		t := *v.ActivatedAt
		c.ActivatedAt = &t
	}
	return &c
}

func (r *RecipeRepository) CreateRecipe(ctx context.Context, rec *entity.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.recipes[rec.ID]; ok {
		return domain.ErrConflict
	}
	r.recipes[rec.ID] = copyRecipe(rec)
	return nil
}

func (r *RecipeRepository) getRecipe(tenantID, recipeID string) (*entity.Recipe, error) {
	rec, ok := r.recipes[recipeID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if rec.TenantID != tenantID {
		return nil, domain.ErrTenantMismatch
	}
	return rec, nil
}

func (r *RecipeRepository) GetRecipe(ctx context.Context, tenantID, recipeID string) (*entity.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, err := r.getRecipe(tenantID, recipeID)
	if err != nil {
		return nil, err
	}
	return copyRecipe(rec), nil
}

func (r *RecipeRepository) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*entity.Recipe
	for _, rec := range r.recipes {
		if rec.TenantID == tenantID {
			list = append(list, copyRecipe(rec))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

func (r *RecipeRepository) CreateVersion(ctx context.Context, v *entity.RecipeVersion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.versions {
		if existing.RecipeID == v.RecipeID && existing.Version == v.Version {
			return domain.ErrConflict
		}
	}
	r.versions[v.ID] = copyVersion(v)
	return nil
}

func (r *RecipeRepository) findVersion(tenantID, recipeID string, version int) (*entity.RecipeVersion, error) {
	for _, v := range r.versions {
		if v.RecipeID == recipeID && v.Version == version {
			if v.TenantID != tenantID {
				return nil, domain.ErrTenantMismatch
			}
			return v, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *RecipeRepository) GetVersion(ctx context.Context, tenantID, recipeID string, version int) (*entity.RecipeVersion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, err := r.findVersion(tenantID, recipeID, version)
	if err != nil {
		return nil, err
	}
	return copyVersion(v), nil
}

func (r *RecipeRepository) GetActiveVersion(ctx context.Context, tenantID, recipeID string) (*entity.RecipeVersion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, err := r.getRecipe(tenantID, recipeID)
	if err != nil {
		return nil, err
	}
	if rec.CurrentVersion == nil {
		return nil, domain.ErrNotFound
	}
	v, err := r.findVersion(tenantID, recipeID, *rec.CurrentVersion)
	if err != nil {
		return nil, err
	}
	return copyVersion(v), nil
}

func (r *RecipeRepository) UpdateDraftVersion(ctx context.Context, v *entity.RecipeVersion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.versions[v.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if existing.State != entity.RecipeStateDraft {
		return domain.ErrInvalidTransition
	}
	existing.YieldQuantity = v.YieldQuantity
	existing.YieldUnit = v.YieldUnit
	existing.Components = make([]entity.RecipeComponent, len(v.Components))
	copy(existing.Components, v.Components)
	return nil
}

func (r *RecipeRepository) SetVersionState(ctx context.Context, tenantID, versionID, state string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.versions[versionID]
	if !ok || v.TenantID != tenantID {
		return domain.ErrNotFound
	}
	v.State = state
	if state == entity.RecipeStateActive {
		now := time.Now()
		v.ActivatedAt = &now
	}
	return nil
}

func (r *RecipeRepository) SetCurrentVersion(ctx context.Context, tenantID, recipeID string, version int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, err := r.getRecipe(tenantID, recipeID)
	if err != nil {
		return err
	}
	rec.CurrentVersion = &version
	rec.UpdatedAt = time.Now()
	return nil
}

func (r *RecipeRepository) ClearCurrentVersion(ctx context.Context, tenantID, recipeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, err := r.getRecipe(tenantID, recipeID)
	if err != nil {
		return err
	}
	rec.CurrentVersion = nil
	rec.UpdatedAt = time.Now()
	return nil
}
