package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/bom-engine/internal/domain"
	"github.com/jhoicas/bom-engine/internal/domain/entity"
	"github.com/jhoicas/bom-engine/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo implementación de RecipeRepository sobre PostgreSQL.
// Las versiones activas/archivadas son inmutables a nivel SQL: los updates de
// borrador filtran por state = 'draft'.
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// CreateRecipe persiste el linaje (sin versión activa todavía).
func (r *RecipeRepo) CreateRecipe(ctx context.Context, rec *entity.Recipe) error {
	query := `
		INSERT INTO recipes (id, tenant_id, product_id, name, current_version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())`
	_, err := r.q.Exec(ctx, query, rec.ID, rec.TenantID, rec.ProductID, rec.Name, rec.CurrentVersion)
	if err != nil {
		return fmt.Errorf("create recipe: %w", err)
	}
	return nil
}

// GetRecipe obtiene el linaje y verifica el tenant antes de devolverlo.
func (r *RecipeRepo) GetRecipe(ctx context.Context, tenantID, recipeID string) (*entity.Recipe, error) {
	query := `
		SELECT id, tenant_id, product_id, name, current_version, created_at, updated_at
		FROM recipes WHERE id = $1`
	var rec entity.Recipe
	err := r.q.QueryRow(ctx, query, recipeID).Scan(
		&rec.ID, &rec.TenantID, &rec.ProductID, &rec.Name, &rec.CurrentVersion, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	if rec.TenantID != tenantID {
		return nil, domain.ErrTenantMismatch
	}
	return &rec, nil
}

func (r *RecipeRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Recipe, error) {
	query := `
		SELECT id, tenant_id, product_id, name, current_version, created_at, updated_at
		FROM recipes WHERE tenant_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Recipe
	for rows.Next() {
		var rec entity.Recipe
		if err := rows.Scan(&rec.ID, &rec.TenantID, &rec.ProductID, &rec.Name,
			&rec.CurrentVersion, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}

// CreateVersion inserta la versión y sus componentes en orden. Usar dentro de
// una transacción (TxRunner) para que versión y componentes entren juntos.
func (r *RecipeRepo) CreateVersion(ctx context.Context, v *entity.RecipeVersion) error {
	query := `
		INSERT INTO recipe_versions (id, recipe_id, tenant_id, version, state,
			yield_quantity, yield_unit, created_at, activated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query, v.ID, v.RecipeID, v.TenantID, v.Version, v.State,
		v.YieldQuantity, v.YieldUnit, v.CreatedAt, v.ActivatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("create recipe version: %w", err)
	}
	return r.insertComponents(ctx, v)
}

func (r *RecipeRepo) insertComponents(ctx context.Context, v *entity.RecipeVersion) error {
	query := `
		INSERT INTO recipe_components (version_id, material_id, quantity_per_unit, unit, position)
		VALUES ($1, $2, $3, $4, $5)`
	for _, c := range v.Components {
		if _, err := r.q.Exec(ctx, query, v.ID, c.MaterialID, c.QuantityPerUnit, c.Unit, c.Position); err != nil {
			return fmt.Errorf("create recipe component: %w", err)
		}
	}
	return nil
}

func (r *RecipeRepo) loadComponents(ctx context.Context, versionID string) ([]entity.RecipeComponent, error) {
	query := `
		SELECT version_id, material_id, quantity_per_unit, unit, position
		FROM recipe_components WHERE version_id = $1
		ORDER BY position`
	rows, err := r.q.Query(ctx, query, versionID)
	if err != nil {
		return nil, fmt.Errorf("list recipe components: %w", err)
	}
	defer rows.Close()
	var list []entity.RecipeComponent
	for rows.Next() {
		var c entity.RecipeComponent
		if err := rows.Scan(&c.VersionID, &c.MaterialID, &c.QuantityPerUnit, &c.Unit, &c.Position); err != nil {
			return nil, fmt.Errorf("scan recipe component: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

const versionColumns = `id, recipe_id, tenant_id, version, state, yield_quantity, yield_unit,
	created_at, activated_at`

func (r *RecipeRepo) getVersionRow(ctx context.Context, tenantID, query string, args ...any) (*entity.RecipeVersion, error) {
	var v entity.RecipeVersion
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&v.ID, &v.RecipeID, &v.TenantID, &v.Version, &v.State,
		&v.YieldQuantity, &v.YieldUnit, &v.CreatedAt, &v.ActivatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get recipe version: %w", err)
	}
	if v.TenantID != tenantID {
		return nil, domain.ErrTenantMismatch
	}
	v.Components, err = r.loadComponents(ctx, v.ID)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// GetVersion obtiene una versión concreta con sus componentes en orden.
func (r *RecipeRepo) GetVersion(ctx context.Context, tenantID, recipeID string, version int) (*entity.RecipeVersion, error) {
	query := `SELECT ` + versionColumns + ` FROM recipe_versions WHERE recipe_id = $1 AND version = $2`
	return r.getVersionRow(ctx, tenantID, query, recipeID, version)
}

// GetActiveVersion obtiene la versión apuntada por current_version del linaje.
func (r *RecipeRepo) GetActiveVersion(ctx context.Context, tenantID, recipeID string) (*entity.RecipeVersion, error) {
	query := `
		SELECT v.id, v.recipe_id, v.tenant_id, v.version, v.state, v.yield_quantity, v.yield_unit,
			v.created_at, v.activated_at
		FROM recipe_versions v
		JOIN recipes r ON r.id = v.recipe_id AND r.current_version = v.version
		WHERE v.recipe_id = $1`
	return r.getVersionRow(ctx, tenantID, query, recipeID)
}

// UpdateDraftVersion reemplaza rendimiento y componentes de un borrador.
// El filtro state = 'draft' hace imposible mutar una versión activa en sitio.
func (r *RecipeRepo) UpdateDraftVersion(ctx context.Context, v *entity.RecipeVersion) error {
	query := `
		UPDATE recipe_versions SET yield_quantity = $2, yield_unit = $3
		WHERE id = $1 AND state = 'draft'`
	tag, err := r.q.Exec(ctx, query, v.ID, v.YieldQuantity, v.YieldUnit)
	if err != nil {
		return fmt.Errorf("update draft version: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvalidTransition
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM recipe_components WHERE version_id = $1`, v.ID); err != nil {
		return fmt.Errorf("clear draft components: %w", err)
	}
	return r.insertComponents(ctx, v)
}

// SetVersionState cambia el estado de la versión (draft → active → archived).
func (r *RecipeRepo) SetVersionState(ctx context.Context, tenantID, versionID, state string) error {
	query := `
		UPDATE recipe_versions
		SET state = $3, activated_at = CASE WHEN $3 = 'active' THEN now() ELSE activated_at END
		WHERE id = $2 AND tenant_id = $1`
	tag, err := r.q.Exec(ctx, query, tenantID, versionID, state)
	if err != nil {
		return fmt.Errorf("set version state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetCurrentVersion mueve el puntero de versión activa del linaje.
func (r *RecipeRepo) SetCurrentVersion(ctx context.Context, tenantID, recipeID string, version int) error {
	query := `UPDATE recipes SET current_version = $3, updated_at = now()
		WHERE tenant_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query, tenantID, recipeID, version)
	if err != nil {
		return fmt.Errorf("set current version: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ClearCurrentVersion deja el linaje sin versión activa (receta archivada).
func (r *RecipeRepo) ClearCurrentVersion(ctx context.Context, tenantID, recipeID string) error {
	query := `UPDATE recipes SET current_version = NULL, updated_at = now()
		WHERE tenant_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query, tenantID, recipeID)
	if err != nil {
		return fmt.Errorf("clear current version: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
