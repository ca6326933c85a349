package kpi

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrUnknownWindow = errors.New("unknown time window")

// Window identifies one precomputed KPI view.
type Window string

const (
	WindowThisSeason Window = "this-season"
	WindowLastMatch  Window = "last-match"
	WindowLast5      Window = "last-5"
	WindowLast3Home  Window = "last-3-home"
	WindowLast3Away  Window = "last-3-away"
	WindowLastSeason Window = "last-season"
)

// Ordering is the warehouse-side sort policy of a view. It is fixed per
// window and never user-configurable.
type Ordering string

const (
	// OrderByGeneralRank sorts by adp_gen_avg ascending (1 = best), nulls last.
	OrderByGeneralRank Ordering = "general_rank"
	// OrderByPointsAverage sorts by pts_avg descending, nulls last.
	OrderByPointsAverage Ordering = "points_average"
)

// Column reports the sort column and direction; nulls always go last.
func (o Ordering) Column() (column string, descending bool) {
	if o == OrderByPointsAverage {
		return KeyPtsAvg, true
	}
	return KeyADPGenAvg, false
}

type WindowSpec struct {
	Window   Window
	Label    string
	View     string
	Ordering Ordering
}

var windowSpecs = []WindowSpec{
	{Window: WindowThisSeason, Label: "This Season", View: "kpi_this_season", Ordering: OrderByGeneralRank},
	{Window: WindowLastMatch, Label: "Last Match", View: "kpi_last_1", Ordering: OrderByPointsAverage},
	{Window: WindowLast5, Label: "Last 5 Matches", View: "kpi_last_5", Ordering: OrderByGeneralRank},
	{Window: WindowLast3Home, Label: "Last 3 Home", View: "kpi_last_3_home", Ordering: OrderByGeneralRank},
	{Window: WindowLast3Away, Label: "Last 3 Away", View: "kpi_last_3_away", Ordering: OrderByGeneralRank},
	{Window: WindowLastSeason, Label: "Last Season", View: "kpi_last_season", Ordering: OrderByGeneralRank},
}

// Windows lists every window, default first.
func Windows() []WindowSpec {
	return append([]WindowSpec(nil), windowSpecs...)
}

func DefaultWindow() WindowSpec {
	return windowSpecs[0]
}

// LookupWindow resolves a window by id. An empty id resolves to the default.
func LookupWindow(id string) (WindowSpec, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return DefaultWindow(), nil
	}
	for _, spec := range windowSpecs {
		if string(spec.Window) == id {
			return spec, nil
		}
	}
	return WindowSpec{}, fmt.Errorf("%w: %s", ErrUnknownWindow, id)
}

// SortRows applies an ordering policy in memory, with the same null
// placement the warehouse uses. The sort is stable.
func SortRows(rows []PlayerRow, ordering Ordering) {
	switch ordering {
	case OrderByPointsAverage:
		sort.SliceStable(rows, func(i, j int) bool {
			a, aok := rows[i].PtsAvg.Get()
			b, bok := rows[j].PtsAvg.Get()
			if aok != bok {
				return aok
			}
			return aok && a > b
		})
	default:
		sort.SliceStable(rows, func(i, j int) bool {
			a, aok := rows[i].ADPGenAvg.Get()
			b, bok := rows[j].ADPGenAvg.Get()
			if aok != bok {
				return aok
			}
			return aok && a < b
		})
	}
}
