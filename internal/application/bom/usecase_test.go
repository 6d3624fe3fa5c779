package bom_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appbom "github.com/jhoicas/bom-engine/internal/application/bom"
	"github.com/jhoicas/bom-engine/internal/domain"
	"github.com/jhoicas/bom-engine/internal/domain/entity"
	"github.com/jhoicas/bom-engine/internal/infrastructure/memory"
)

const (
	testTenant = "tenant-a"
	recipeID   = "rec-torta"
	flourID    = "mat-harina"
	sugarID    = "mat-azucar"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type fixture struct {
	uc           *appbom.UseCase
	materialRepo *memory.MaterialRepository
	recipeRepo   *memory.RecipeRepository
	movRepo      *memory.MovementRepository
}

// newFixture siembra la receta de torta con su versión 1 activa y una versión 2
// en borrador que duplica el azúcar.
func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()

	materialRepo := memory.NewMaterialRepository()
	recipeRepo := memory.NewRecipeRepository()
	movRepo := memory.NewMovementRepository()

	require.NoError(t, materialRepo.Create(ctx, &entity.Material{
		ID: flourID, TenantID: testTenant, Name: "Harina", Unit: "kg",
		UnitCost: dec("2.50"), CurrentStock: dec("10"), ReorderPoint: dec("5"),
	}))
	require.NoError(t, materialRepo.Create(ctx, &entity.Material{
		ID: sugarID, TenantID: testTenant, Name: "Azúcar", Unit: "kg",
		UnitCost: dec("4.00"), CurrentStock: dec("3"), ReorderPoint: dec("5"),
	}))

	current := 1
	require.NoError(t, recipeRepo.CreateRecipe(ctx, &entity.Recipe{
		ID: recipeID, TenantID: testTenant, ProductID: "prod-torta",
		Name: "Torta", CurrentVersion: &current,
	}))

	now := time.Now()
	require.NoError(t, recipeRepo.CreateVersion(ctx, &entity.RecipeVersion{
		ID: "ver-1", RecipeID: recipeID, TenantID: testTenant, Version: 1,
		State: entity.RecipeStateActive, YieldQuantity: dec("1"), YieldUnit: "unidad",
		Components: []entity.RecipeComponent{
			{VersionID: "ver-1", MaterialID: flourID, QuantityPerUnit: dec("0.5"), Unit: "kg", Position: 0},
			{VersionID: "ver-1", MaterialID: sugarID, QuantityPerUnit: dec("0.2"), Unit: "kg", Position: 1},
		},
		CreatedAt: now, ActivatedAt: &now,
	}))
	require.NoError(t, recipeRepo.CreateVersion(ctx, &entity.RecipeVersion{
		ID: "ver-2", RecipeID: recipeID, TenantID: testTenant, Version: 2,
		State: entity.RecipeStateDraft, YieldQuantity: dec("1"), YieldUnit: "unidad",
		Components: []entity.RecipeComponent{
			{VersionID: "ver-2", MaterialID: flourID, QuantityPerUnit: dec("0.5"), Unit: "kg", Position: 0},
			{VersionID: "ver-2", MaterialID: sugarID, QuantityPerUnit: dec("0.4"), Unit: "kg", Position: 1},
		},
		CreatedAt: now,
	}))

	return fixture{
		uc:           appbom.NewUseCase(recipeRepo, materialRepo, movRepo),
		materialRepo: materialRepo,
		recipeRepo:   recipeRepo,
		movRepo:      movRepo,
	}
}

func TestGetRecipeCost_VersionActivaPorDefecto(t *testing.T) {
	f := newFixture(t)

	cost, err := f.uc.GetRecipeCost(context.Background(), testTenant, recipeID, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, cost.Version)
	assert.True(t, dec("2.05").Equal(cost.TotalMaterialCost))
	assert.True(t, dec("2.05").Equal(cost.CostPerYieldUnit))
	assert.False(t, cost.Incomplete)
}

func TestGetRecipeCost_VersionExplicita(t *testing.T) {
	f := newFixture(t)

	v := 2
	cost, err := f.uc.GetRecipeCost(context.Background(), testTenant, recipeID, &v)
	require.NoError(t, err)

	// La v2 usa 0.4 kg de azúcar: 1.25 + 1.60 = 2.85
	assert.Equal(t, 2, cost.Version)
	assert.True(t, dec("2.85").Equal(cost.TotalMaterialCost))
}

func TestGetRecipeCost_RedondeaEnLaFrontera(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Costo unitario con más decimales de los que expone la API.
	require.NoError(t, f.materialRepo.UpdateUnitCost(ctx, testTenant, sugarID, dec("4.009")))

	cost, err := f.uc.GetRecipeCost(ctx, testTenant, recipeID, nil)
	require.NoError(t, err)

	// 1.25 + 0.2*4.009 = 2.0518 → 2.05
	assert.True(t, dec("2.05").Equal(cost.TotalMaterialCost))
}

func TestGetRecipeCost_RecetaInexistente(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.GetRecipeCost(context.Background(), testTenant, "rec-fantasma", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetRecipeCost_TenantAjeno(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.GetRecipeCost(context.Background(), "tenant-intruso", recipeID, nil)
	assert.ErrorIs(t, err, domain.ErrTenantMismatch)
}

func TestGetAvailableQuantity_EscenarioTorta(t *testing.T) {
	f := newFixture(t)

	avail, err := f.uc.GetAvailableQuantity(context.Background(), testTenant, recipeID)
	require.NoError(t, err)

	assert.Equal(t, int64(15), avail.AvailableUnits)
	assert.Equal(t, sugarID, avail.LimitingMaterialID)
	assert.False(t, avail.NoComponents)
}

func TestPlanBatch_EscenarioTorta(t *testing.T) {
	f := newFixture(t)

	plan, err := f.uc.PlanBatch(context.Background(), testTenant, recipeID, dec("20"))
	require.NoError(t, err)
	require.Len(t, plan.Requirements, 2)

	sugar := plan.Requirements[1]
	assert.Equal(t, "Azúcar", sugar.MaterialName)
	assert.True(t, dec("4").Equal(sugar.RequiredQuantity))
	assert.True(t, dec("1").Equal(sugar.Shortfall))
	assert.True(t, dec("4.00").Equal(plan.PurchaseCost))
}

func TestForecastCapacity_UsaHistoriaDeConsumo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// 30 kg de azúcar consumidos en la ventana de 30 días → 1 kg/día.
	require.NoError(t, f.movRepo.Create(ctx, &entity.StockMovement{
		ID: "mov-1", TenantID: testTenant, MaterialID: sugarID,
		Type: entity.MovementTypeCONSUMPTION, Quantity: dec("-30"),
		StockAfter: dec("3"), Date: time.Now().AddDate(0, 0, -2), CreatedAt: time.Now(),
	}))

	days, err := f.uc.ForecastCapacity(ctx, testTenant, recipeID, 30)
	require.NoError(t, err)
	require.Len(t, days, 3, "el azúcar se agota al tercer día")

	assert.Equal(t, 1, days[0].Day)
	assert.Equal(t, int64(10), days[0].AvailableUnits)
	assert.Equal(t, int64(0), days[2].AvailableUnits)
	assert.Equal(t, sugarID, days[2].LimitingMaterialID)
}

func TestForecastCapacityWithRates_IgnoraLaHistoria(t *testing.T) {
	f := newFixture(t)

	rates := map[string]decimal.Decimal{sugarID: dec("1.5")}
	days, err := f.uc.ForecastCapacityWithRates(context.Background(), testTenant, recipeID, rates, 30)
	require.NoError(t, err)

	// Azúcar: 3 / 1.5 = se agota al segundo día.
	require.Len(t, days, 2)
	assert.Equal(t, int64(7), days[0].AvailableUnits)
	assert.Equal(t, int64(0), days[1].AvailableUnits)
}

func TestForecastCapacity_HorizonteInvalido(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.ForecastCapacity(context.Background(), testTenant, recipeID, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUseCase_EntradaInvalida(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.GetAvailableQuantity(context.Background(), "", recipeID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.GetRecipeCost(context.Background(), testTenant, "", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
