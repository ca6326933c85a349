package postgres

import (
	"strings"
	"testing"

	"github.com/riskibarqy/scouting-panel/internal/domain/kpi"
	"github.com/riskibarqy/scouting-panel/internal/domain/scout"
)

func TestWindowStatsInsert(t *testing.T) {
	codes := []scout.Code{{Code: "G", Points: 8}, {Code: "DS", Points: 1.2}}

	got := windowStatsInsert("cartola_kpi", codes)
	if !strings.HasPrefix(got, `INSERT INTO "cartola_kpi"."player_window_stats" (window_id, name, club, position, pts_avg`) {
		t.Fatalf("unexpected insert head: %s", got)
	}
	if !strings.HasSuffix(got, `:matches_counted, :avg_DS, :avg_G)`) {
		t.Fatalf("expected sorted scout params at the end: %s", got)
	}
	if !strings.Contains(got, `"avg_DS", "avg_G")`) {
		t.Fatalf("expected quoted scout columns: %s", got)
	}
}

func TestWindowStatsArgs(t *testing.T) {
	row := kpi.PlayerRow{
		Name:      kpi.Some("Pedro"),
		PtsAvg:    kpi.Some(7.9),
		ADPGenAvg: kpi.Some(int64(1)),
		Scouts:    map[string]kpi.Optional[float64]{"G": kpi.Some(0.7)},
	}

	args := windowStatsArgs(kpi.WindowLast5, row, []scout.Code{{Code: "G"}, {Code: "DS"}})
	if args["window_id"] != "last-5" || args["name"] != "Pedro" || args["pts_avg"] != 7.9 {
		t.Fatalf("unexpected args: %v", args)
	}
	if args["adp_gen_avg"] != int64(1) {
		t.Fatalf("expected integer rank, got %#v", args["adp_gen_avg"])
	}
	if args["club"] != nil || args["avg_DS"] != nil {
		t.Fatalf("missing values must be NULL, got club=%v avg_DS=%v", args["club"], args["avg_DS"])
	}
	if args["avg_G"] != 0.7 {
		t.Fatalf("expected scout average, got %v", args["avg_G"])
	}
}
