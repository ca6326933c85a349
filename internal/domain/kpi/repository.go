package kpi

import "context"

// Repository reads KPI rows from the warehouse in view order.
type Repository interface {
	ListByWindow(ctx context.Context, window WindowSpec) ([]PlayerRow, error)
}
