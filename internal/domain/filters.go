package domain

import "time"

// InsightFilters delimita o período das consultas de métricas.
type InsightFilters struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// RangeKey retorna o período no formato usado nas chaves de cache.
func (f InsightFilters) RangeKey() string {
	return f.StartDate.Format(time.DateOnly) + ":" + f.EndDate.Format(time.DateOnly)
}
