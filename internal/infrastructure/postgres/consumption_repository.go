package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/bom-engine/internal/domain/repository"
)

var _ repository.ConsumptionRepository = (*ConsumptionRepo)(nil)

// ConsumptionRepo deriva velocidades de consumo desde stock_movements.
type ConsumptionRepo struct {
	q Querier
}

// NewConsumptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewConsumptionRepository(q Querier) *ConsumptionRepo {
	return &ConsumptionRepo{q: q}
}

// AverageDaily promedia los movimientos CONSUMPTION de la ventana sobre
// windowDays. Los consumos se guardan con cantidad negativa, de ahí el SUM(-quantity).
func (r *ConsumptionRepo) AverageDaily(ctx context.Context, tenantID string, materialIDs []string, windowDays int) (map[string]decimal.Decimal, error) {
	if len(materialIDs) == 0 || windowDays <= 0 {
		return map[string]decimal.Decimal{}, nil
	}
	query := `
		SELECT material_id, SUM(-quantity) / $3::numeric AS avg_daily
		FROM stock_movements
		WHERE tenant_id = $1
		  AND material_id = ANY($2)
		  AND type = 'CONSUMPTION'
		  AND date >= now() - make_interval(days => $3)
		GROUP BY material_id`
	rows, err := r.q.Query(ctx, query, tenantID, materialIDs, windowDays)
	if err != nil {
		return nil, fmt.Errorf("average daily consumption: %w", err)
	}
	defer rows.Close()

	out := make(map[string]decimal.Decimal, len(materialIDs))
	for rows.Next() {
		var (
			id  string
			avg decimal.Decimal
		)
		if err := rows.Scan(&id, &avg); err != nil {
			return nil, fmt.Errorf("scan consumption: %w", err)
		}
		out[id] = avg
	}
	return out, rows.Err()
}
