package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/scouting-panel/internal/domain/kpi"
)

type KPIRepository struct {
	mu    sync.RWMutex
	views map[kpi.Window][]kpi.PlayerRow
}

func NewKPIRepository(views map[kpi.Window][]kpi.PlayerRow) *KPIRepository {
	r := &KPIRepository{views: make(map[kpi.Window][]kpi.PlayerRow, len(views))}
	for window, rows := range views {
		r.views[window] = cloneRows(rows)
	}
	return r
}

// ListByWindow returns the view rows in the window's ordering.
func (r *KPIRepository) ListByWindow(_ context.Context, window kpi.WindowSpec) ([]kpi.PlayerRow, error) {
	r.mu.RLock()
	rows, ok := r.views[window.Window]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: view %s is not loaded", kpi.ErrUnknownWindow, window.View)
	}

	out := cloneRows(rows)
	kpi.SortRows(out, window.Ordering)
	return out, nil
}

// Replace swaps the rows of one view.
func (r *KPIRepository) Replace(window kpi.Window, rows []kpi.PlayerRow) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.views[window] = cloneRows(rows)
}

func cloneRows(rows []kpi.PlayerRow) []kpi.PlayerRow {
	out := make([]kpi.PlayerRow, len(rows))
	for i, row := range rows {
		if row.Scouts != nil {
			scouts := make(map[string]kpi.Optional[float64], len(row.Scouts))
			for code, avg := range row.Scouts {
				scouts[code] = avg
			}
			row.Scouts = scouts
		}
		out[i] = row
	}
	return out
}
