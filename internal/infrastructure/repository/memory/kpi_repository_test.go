package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/scouting-panel/internal/domain/kpi"
	"github.com/riskibarqy/scouting-panel/internal/domain/scout"
)

func TestKPIRepository_ListByWindowOrdering(t *testing.T) {
	repo := NewKPIRepository(SeedKPIRows())

	for _, spec := range kpi.Windows() {
		t.Run(string(spec.Window), func(t *testing.T) {
			rows, err := repo.ListByWindow(context.Background(), spec)
			if err != nil {
				t.Fatalf("list rows: %v", err)
			}
			if len(rows) != len(seedRoster)+1 {
				t.Fatalf("unexpected row count: %d", len(rows))
			}

			last := rows[len(rows)-1]
			if last.Name.Valid() {
				t.Fatalf("expected nameless row last, got %q", last.DisplayName())
			}

			if spec.Ordering == kpi.OrderByPointsAverage {
				for i := 1; i < len(rows)-1; i++ {
					prev, _ := rows[i-1].PtsAvg.Get()
					cur, _ := rows[i].PtsAvg.Get()
					if prev < cur {
						t.Fatalf("rows not sorted by points at %d: %v < %v", i, prev, cur)
					}
				}
				return
			}
			for i := 1; i < len(rows)-1; i++ {
				prev, _ := rows[i-1].ADPGenAvg.Get()
				cur, _ := rows[i].ADPGenAvg.Get()
				if prev > cur {
					t.Fatalf("rows not sorted by rank at %d: %d > %d", i, prev, cur)
				}
			}
		})
	}
}

func TestKPIRepository_ReturnsCopies(t *testing.T) {
	repo := NewKPIRepository(SeedKPIRows())
	spec := kpi.DefaultWindow()

	rows, err := repo.ListByWindow(context.Background(), spec)
	if err != nil {
		t.Fatalf("list rows: %v", err)
	}
	rows[0].Name = kpi.Some("changed")
	for code := range rows[0].Scouts {
		rows[0].Scouts[code] = kpi.Some(99.0)
	}

	again, err := repo.ListByWindow(context.Background(), spec)
	if err != nil {
		t.Fatalf("list rows again: %v", err)
	}
	if again[0].DisplayName() == "changed" {
		t.Fatalf("repository row was mutated through returned slice")
	}
	for code, avg := range again[0].Scouts {
		if v, _ := avg.Get(); v == 99 {
			t.Fatalf("scout %s was mutated through returned slice", code)
		}
	}
}

func TestKPIRepository_UnloadedView(t *testing.T) {
	repo := NewKPIRepository(nil)

	_, err := repo.ListByWindow(context.Background(), kpi.DefaultWindow())
	if !errors.Is(err, kpi.ErrUnknownWindow) {
		t.Fatalf("expected ErrUnknownWindow, got %v", err)
	}

	repo.Replace(kpi.WindowThisSeason, []kpi.PlayerRow{{Name: kpi.Some("Pedro")}})
	rows, err := repo.ListByWindow(context.Background(), kpi.DefaultWindow())
	if err != nil {
		t.Fatalf("list replaced rows: %v", err)
	}
	if len(rows) != 1 || rows[0].DisplayName() != "Pedro" {
		t.Fatalf("unexpected rows after replace: %+v", rows)
	}
}

func TestSeedScoutCodesCoverTaxonomy(t *testing.T) {
	codes, err := NewScoutRepository(SeedScoutCodes()).ListCodes(context.Background())
	if err != nil {
		t.Fatalf("list codes: %v", err)
	}

	groups := scout.GroupScouts(scout.NewTable(codes))
	total := len(groups.Offensive) + len(groups.Defensive) + len(groups.Negative)
	if total != len(codes) {
		t.Fatalf("expected every seeded code grouped, got %d of %d", total, len(codes))
	}
}
