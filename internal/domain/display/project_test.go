package display

import (
	"errors"
	"testing"

	"github.com/riskibarqy/scouting-panel/internal/domain/kpi"
	"github.com/riskibarqy/scouting-panel/internal/domain/scout"
)

func detailRows() []kpi.PlayerRow {
	return []kpi.PlayerRow{
		{
			Name:         kpi.Some("Ana Silva"),
			Position:     kpi.Some("MD"),
			Club:         kpi.Some("FLA"),
			ADPGenAvg:    kpi.Some[int64](2),
			ADPPosAvg:    kpi.Some[int64](1),
			DVSGenAvg:    kpi.Some(3.4),
			ZScoreGenAvg: kpi.None[float64](),
			PtsAvg:       kpi.Some(7.26),
			Availability: kpi.Some(80.0),
		},
		{
			Name:         kpi.Some("Bruno Costa"),
			Position:     kpi.Some("AT"),
			Club:         kpi.Some("PAL"),
			ADPGenAvg:    kpi.Some[int64](1),
			DVSGenAvg:    kpi.Some(-0.5),
			ZScoreGenAvg: kpi.Some(1.2),
			PtsAvg:       kpi.Some(8.0),
		},
		{
			Name:         kpi.Some("Carla Anjos"),
			ZScoreGenAvg: kpi.Some(-0.3),
		},
	}
}

func TestProject(t *testing.T) {
	rows := detailRows()
	spec := DetailsView(ScopeGeneral)

	got := Project(rows, spec)
	if len(got) != len(rows) {
		t.Fatalf("unexpected projection count: %d", len(got))
	}
	if len(got[0].Cells) != len(spec.Columns) {
		t.Fatalf("unexpected cell count: %d", len(got[0].Cells))
	}

	t.Run("missing z score renders placeholder without color", func(t *testing.T) {
		cell, ok := got[0].Cell(kpi.KeyZScoreGenAvg)
		if !ok {
			t.Fatalf("expected z_score_gen_avg cell")
		}
		if cell.Text != Placeholder || cell.Color != nil || !cell.Value.Missing() {
			t.Fatalf("unexpected missing cell: %+v", cell)
		}
	})

	t.Run("colored columns carry colors", func(t *testing.T) {
		cell, _ := got[0].Cell(kpi.KeyDVSGenAvg)
		if cell.Text != "+3.40" || cell.Color == nil || cell.Color.Intensity != 1 {
			t.Fatalf("unexpected dvs cell: %+v", cell)
		}
	})

	t.Run("uncolored columns carry no color", func(t *testing.T) {
		cell, _ := got[0].Cell(kpi.KeyPtsAvg)
		if cell.Color != nil || cell.Text != "+7.3" {
			t.Fatalf("unexpected points cell: %+v", cell)
		}
	})

	t.Run("general scope hides position columns", func(t *testing.T) {
		if _, ok := spec.Column(kpi.KeyADPPosAvg); ok {
			t.Fatalf("general details must not surface adp_pos_avg")
		}
		if _, ok := DetailsView(ScopePosition).Column(kpi.KeyADPPosAvg); !ok {
			t.Fatalf("position details must surface adp_pos_avg")
		}
	})

	t.Run("source rows are untouched", func(t *testing.T) {
		if v, _ := rows[0].DVSGenAvg.Get(); v != 3.4 {
			t.Fatalf("projection mutated source row: %v", v)
		}
	})
}

func TestSortProjections(t *testing.T) {
	spec := DetailsView(ScopeGeneral)

	t.Run("missing values sort last ascending", func(t *testing.T) {
		got := Project(detailRows(), spec)
		if err := SortProjections(got, spec, kpi.KeyZScoreGenAvg, false); err != nil {
			t.Fatalf("sort projections: %v", err)
		}
		assertOrder(t, got, "Carla Anjos", "Bruno Costa", "Ana Silva")
	})

	t.Run("missing values sort last descending", func(t *testing.T) {
		got := Project(detailRows(), spec)
		if err := SortProjections(got, spec, kpi.KeyZScoreGenAvg, true); err != nil {
			t.Fatalf("sort projections: %v", err)
		}
		assertOrder(t, got, "Bruno Costa", "Carla Anjos", "Ana Silva")
	})

	t.Run("unknown column is rejected", func(t *testing.T) {
		got := Project(detailRows(), spec)
		if err := SortProjections(got, spec, kpi.KeyADPPosAvg, false); !errors.Is(err, ErrUnknownColumn) {
			t.Fatalf("expected ErrUnknownColumn, got %v", err)
		}
	})
}

func assertOrder(t *testing.T, rows []Projection, want ...string) {
	t.Helper()
	if len(rows) != len(want) {
		t.Fatalf("unexpected row count: got=%d want=%d", len(rows), len(want))
	}
	for i, name := range want {
		cell, _ := rows[i].Cell(kpi.KeyName)
		if cell.Text != name {
			t.Fatalf("unexpected row %d: got=%s want=%s", i, cell.Text, name)
		}
	}
}

func TestParseScope(t *testing.T) {
	if scope, err := ParseScope(""); err != nil || scope != ScopePosition {
		t.Fatalf("expected position default scope, got %v %v", scope, err)
	}
	if scope, err := ParseScope("General"); err != nil || scope != ScopeGeneral {
		t.Fatalf("expected general scope, got %v %v", scope, err)
	}
	if _, err := ParseScope("team"); !errors.Is(err, ErrUnknownScope) {
		t.Fatalf("expected ErrUnknownScope, got %v", err)
	}
}

func TestBreakdown(t *testing.T) {
	groups := scout.GroupScouts(scout.NewTable([]scout.Code{
		{Code: "G", Description: "Goal", Points: 8},
		{Code: "CA", Description: "Yellow card", Points: -1},
	}))
	row := kpi.PlayerRow{
		Name:   kpi.Some("Ana Silva"),
		Scouts: map[string]kpi.Optional[float64]{"G": kpi.Some(2.0)},
	}

	sections := Breakdown(row, groups)
	if len(sections) != 3 {
		t.Fatalf("unexpected section count: %d", len(sections))
	}

	goal := sections[0].Lines[0]
	if goal.CountText != "2.00" || goal.PointsText != "+16.00" {
		t.Fatalf("unexpected goal line: %+v", goal)
	}

	card := sections[2].Lines[0]
	if card.CountText != Placeholder || card.PointsText != Placeholder {
		t.Fatalf("unexpected card line: %+v", card)
	}
	if len(sections[1].Lines) != 0 {
		t.Fatalf("expected empty defensive section, got %+v", sections[1].Lines)
	}
}
