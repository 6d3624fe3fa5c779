package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/bom-engine/internal/application/materials"
	"github.com/jhoicas/bom-engine/internal/application/recipes"
	"github.com/jhoicas/bom-engine/internal/domain/repository"
)

var _ materials.TxRunner = (*TxRunner)(nil)
var _ recipes.TxRunner = (*TxRunner)(nil)

// TxRunner en memoria: serializa los callbacks con un mutex. No hay rollback
// real; los tests que necesitan verificar atomicidad lo hacen contra los
// adaptadores SQL.
type TxRunner struct {
	mu           sync.Mutex
	materialRepo repository.MaterialRepository
	movRepo      repository.MovementRepository
	recipeRepo   repository.RecipeRepository
}

// NewTxRunner construye el runner sobre los repositorios en memoria.
func NewTxRunner(
	materialRepo repository.MaterialRepository,
	movRepo repository.MovementRepository,
	recipeRepo repository.RecipeRepository,
) *TxRunner {
	return &TxRunner{materialRepo: materialRepo, movRepo: movRepo, recipeRepo: recipeRepo}
}

func (r *TxRunner) Run(ctx context.Context, fn func(
	materialRepo repository.MaterialRepository,
	movRepo repository.MovementRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.materialRepo, r.movRepo)
}

func (r *TxRunner) RunRecipes(ctx context.Context, fn func(
	recipeRepo repository.RecipeRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.recipeRepo)
}
