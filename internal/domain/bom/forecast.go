package bom

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/bom-engine/internal/domain"
	"github.com/jhoicas/bom-engine/internal/domain/entity"
)

// DaySnapshot es la disponibilidad proyectada para un día del horizonte.
type DaySnapshot struct {
	Day                int // 1-based: día 1 = tras un día de consumo
	AvailableUnits     int64
	LimitingMaterialID string
}

// Forecast es un generador perezoso y reiniciable de disponibilidad futura.
// Cada llamada a Next produce el siguiente día; la secuencia termina en el
// primer día con disponibilidad cero (quiebre de stock) o al agotar el
// horizonte, lo que ocurra primero. Acotado y reiniciable para que la memoria
// sea predecible en horizontes largos.
type Forecast struct {
	version   *entity.RecipeVersion
	materials MaterialIndex
	daily     map[string]decimal.Decimal
	horizon   int
	day       int
	done      bool
}

// NewForecast construye la proyección. dailyConsumption trae el consumo diario
// por material (materiales ausentes consumen cero); la velocidad de consumo la
// aporta el caller, este componente no calcula historia.
func NewForecast(
	version *entity.RecipeVersion,
	materials MaterialIndex,
	dailyConsumption map[string]decimal.Decimal,
	horizonDays int,
) (*Forecast, error) {
	if horizonDays <= 0 {
		return nil, fmt.Errorf("horizonte debe ser > 0 días: %w", domain.ErrInvalidInput)
	}
	// Validar componentes una sola vez, antes de iterar
	for _, c := range version.Components {
		if _, err := componentMaterial(c, materials); err != nil {
			return nil, err
		}
	}
	return &Forecast{
		version:   version,
		materials: materials,
		daily:     dailyConsumption,
		horizon:   horizonDays,
	}, nil
}

// Next devuelve el siguiente día proyectado. El segundo valor es false cuando
// la secuencia terminó.
func (f *Forecast) Next() (DaySnapshot, bool) {
	if f.done || f.day >= f.horizon {
		return DaySnapshot{}, false
	}
	f.day++

	elapsed := decimal.NewFromInt(int64(f.day))
	avail, err := availableWithStock(f.version, f.materials, func(m *entity.Material) decimal.Decimal {
		consumed := f.daily[m.ID].Mul(elapsed)
		return m.CurrentStock.Sub(consumed)
	})
	if err != nil {
		// Los componentes ya se validaron en NewForecast
		f.done = true
		return DaySnapshot{}, false
	}
	if avail.AvailableUnits <= 0 {
		// Emite el día del quiebre y termina
		f.done = true
	}
	return DaySnapshot{
		Day:                f.day,
		AvailableUnits:     avail.AvailableUnits,
		LimitingMaterialID: avail.LimitingMaterialID,
	}, true
}

// Reset reinicia el generador al día cero.
func (f *Forecast) Reset() {
	f.day = 0
	f.done = false
}

// Collect consume el generador completo y devuelve la secuencia como slice.
func (f *Forecast) Collect() []DaySnapshot {
	var out []DaySnapshot
	for {
		s, ok := f.Next()
		if !ok {
			return out
		}
		out = append(out, s)
	}
}
