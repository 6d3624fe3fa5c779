package alert_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/jhoicas/bom-engine/internal/domain/alert"
	"github.com/jhoicas/bom-engine/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestClassify_Severidades(t *testing.T) {
	cases := []struct {
		name         string
		stock        string
		reorderPoint string
		want         string
	}{
		{"stock cero es quiebre", "0", "10", entity.SeverityOutOfStock},
		{"stock negativo es quiebre", "-3", "10", entity.SeverityOutOfStock},
		{"bajo la mitad del reorden es crítico", "4", "10", entity.SeverityCritical},
		{"exactamente la mitad es crítico", "5", "10", entity.SeverityCritical},
		{"sobre la mitad y bajo el reorden es bajo", "5.01", "10", entity.SeverityLow},
		{"exactamente el punto de reorden es bajo", "10", "10", entity.SeverityLow},
		{"sobre el punto de reorden es sano", "10.01", "10", alert.SeverityHealthy},
		{"stock abundante es sano", "100", "10", alert.SeverityHealthy},
		{"reorden en cero desactiva alertas", "0", "0", alert.SeverityHealthy},
		{"reorden negativo desactiva alertas", "-5", "-1", alert.SeverityHealthy},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := alert.Classify(dec(tc.stock), dec(tc.reorderPoint))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestClassifyMaterial_UsaEstadoActual(t *testing.T) {
	m := &entity.Material{
		ID:           "mat-1",
		TenantID:     "tenant-a",
		CurrentStock: dec("2"),
		ReorderPoint: dec("10"),
	}
	assert.Equal(t, entity.SeverityCritical, alert.ClassifyMaterial(m))
}
