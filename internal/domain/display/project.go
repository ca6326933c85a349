package display

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/riskibarqy/scouting-panel/internal/domain/kpi"
)

var ErrUnknownColumn = errors.New("unknown column")

type Cell struct {
	Key   string
	Value kpi.Value
	Text  string
	Color *Color
}

// Projection is one row rendered through a ViewSpec, cells in column order.
type Projection struct {
	Cells []Cell
}

func (p Projection) Cell(key string) (Cell, bool) {
	for _, c := range p.Cells {
		if c.Key == key {
			return c, true
		}
	}
	return Cell{}, false
}

// Project renders rows through spec. Source rows are read only.
func Project(rows []kpi.PlayerRow, spec ViewSpec) []Projection {
	out := make([]Projection, 0, len(rows))
	for _, row := range rows {
		cells := make([]Cell, 0, len(spec.Columns))
		for _, col := range spec.Columns {
			v := row.Metric(col.Key)
			cell := Cell{
				Key:   col.Key,
				Value: v,
				Text:  FormatValue(v, col.Format),
			}
			if col.Colored {
				if c, ok := ColorFor(v); ok {
					cell.Color = &c
				}
			}
			cells = append(cells, cell)
		}
		out = append(out, Projection{Cells: cells})
	}
	return out
}

// SortProjections orders projections by one column. Cells without a value
// always sort after cells with one, whatever the direction. The sort is
// stable so ties keep warehouse order.
func SortProjections(rows []Projection, spec ViewSpec, key string, descending bool) error {
	if _, ok := spec.Column(key); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, key)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, _ := rows[i].Cell(key)
		b, _ := rows[j].Cell(key)
		aMissing, bMissing := sortMissing(a.Value), sortMissing(b.Value)
		if aMissing || bMissing {
			return !aMissing && bMissing
		}
		if at, ok := a.Value.Text(); ok {
			bt, _ := b.Value.Text()
			if descending {
				return at > bt
			}
			return at < bt
		}
		an, _ := a.Value.Number()
		bn, _ := b.Value.Number()
		if descending {
			return an > bn
		}
		return an < bn
	})
	return nil
}

func sortMissing(v kpi.Value) bool {
	if v.Missing() {
		return true
	}
	n, ok := v.Number()
	return ok && math.IsNaN(n)
}
