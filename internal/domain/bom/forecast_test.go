package bom_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/bom-engine/internal/domain"
	"github.com/jhoicas/bom-engine/internal/domain/bom"
)

func cakeDailyConsumption() map[string]decimal.Decimal {
	// 1 kg de azúcar al día → el azúcar (stock 3) se agota al tercer día.
	return map[string]decimal.Decimal{
		flourID: dec("0.5"),
		sugarID: dec("1"),
	}
}

func TestForecast_TerminaEnQuiebreDeStock(t *testing.T) {
	version, materials := cakeFixture()

	f, err := bom.NewForecast(version, materials, cakeDailyConsumption(), 30)
	require.NoError(t, err)

	days := f.Collect()
	require.Len(t, days, 3, "emite hasta el día de quiebre inclusive")

	// Día 1: azúcar 3-1=2 kg → 10 unidades. Día 2: 1 kg → 5. Día 3: 0 kg → 0.
	assert.Equal(t, 1, days[0].Day)
	assert.Equal(t, int64(10), days[0].AvailableUnits)
	assert.Equal(t, int64(5), days[1].AvailableUnits)
	assert.Equal(t, 3, days[2].Day)
	assert.Equal(t, int64(0), days[2].AvailableUnits)
	assert.Equal(t, sugarID, days[2].LimitingMaterialID)
}

func TestForecast_DisponibilidadNoCreciente(t *testing.T) {
	version, materials := cakeFixture()

	f, err := bom.NewForecast(version, materials, cakeDailyConsumption(), 30)
	require.NoError(t, err)

	prev := int64(1<<62 - 1)
	for {
		s, ok := f.Next()
		if !ok {
			break
		}
		assert.LessOrEqual(t, s.AvailableUnits, prev,
			"la disponibilidad no puede crecer con el paso de los días")
		prev = s.AvailableUnits
	}
}

func TestForecast_AgotaHorizonteSinQuiebre(t *testing.T) {
	version, materials := cakeFixture()

	// Consumo mínimo: ningún material se agota en 5 días.
	daily := map[string]decimal.Decimal{sugarID: dec("0.01")}
	f, err := bom.NewForecast(version, materials, daily, 5)
	require.NoError(t, err)

	days := f.Collect()
	require.Len(t, days, 5)
	assert.Greater(t, days[4].AvailableUnits, int64(0))

	// Agotada la secuencia, Next sigue devolviendo false.
	_, ok := f.Next()
	assert.False(t, ok)
}

func TestForecast_SinConsumoEsConstante(t *testing.T) {
	version, materials := cakeFixture()

	f, err := bom.NewForecast(version, materials, nil, 3)
	require.NoError(t, err)

	for _, s := range f.Collect() {
		assert.Equal(t, int64(15), s.AvailableUnits)
	}
}

func TestForecast_ResetReiniciaLaSecuencia(t *testing.T) {
	version, materials := cakeFixture()

	f, err := bom.NewForecast(version, materials, cakeDailyConsumption(), 30)
	require.NoError(t, err)

	first := f.Collect()
	f.Reset()
	second := f.Collect()

	assert.Equal(t, first, second)
}

func TestForecast_HorizonteInvalido(t *testing.T) {
	version, materials := cakeFixture()

	_, err := bom.NewForecast(version, materials, nil, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestForecast_ValidaComponentesAlConstruir(t *testing.T) {
	version, materials := cakeFixture()
	delete(materials, sugarID)

	_, err := bom.NewForecast(version, materials, nil, 10)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
