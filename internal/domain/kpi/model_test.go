package kpi

import (
	"errors"
	"reflect"
	"testing"
)

func TestRescaleAvailability(t *testing.T) {
	rows := []PlayerRow{
		{Name: Some("Ana Silva"), Club: Some("X"), Position: Some("MD"), Availability: Some(0.75)},
		{Name: Some("Bruno Costa")},
	}

	got := RescaleAvailability(rows)

	if v, _ := got[0].Availability.Get(); v != 75.0 {
		t.Fatalf("unexpected availability: got=%v want=75", v)
	}
	if got[1].Availability.Valid() {
		t.Fatalf("missing availability must stay missing")
	}
	if v, _ := rows[0].Availability.Get(); v != 0.75 {
		t.Fatalf("source rows must not be mutated, got %v", v)
	}
}

func TestPlayerRowMetric(t *testing.T) {
	row := PlayerRow{
		Name:         Some("Ana Silva"),
		ADPGenAvg:    Some[int64](3),
		ZScoreGenAvg: None[float64](),
		Scouts:       map[string]Optional[float64]{"G": Some(2.0)},
	}

	if v := row.Metric(KeyName); v.Kind() != KindText {
		t.Fatalf("expected text kind for name, got %v", v.Kind())
	}
	if n, ok := row.Metric(KeyADPGenAvg).Number(); !ok || n != 3 {
		t.Fatalf("unexpected adp_gen_avg: %v %v", n, ok)
	}
	if !row.Metric(KeyZScoreGenAvg).Missing() {
		t.Fatalf("expected missing z_score_gen_avg")
	}
	if n, ok := row.Metric("avg_G").Number(); !ok || n != 2.0 {
		t.Fatalf("unexpected avg_G: %v %v", n, ok)
	}
	if !row.Metric("avg_CA").Missing() {
		t.Fatalf("expected missing avg_CA")
	}
	if !row.Metric("unknown_column").Missing() {
		t.Fatalf("expected missing value for unknown key")
	}
}

func TestClubs(t *testing.T) {
	got := Clubs(sampleRows())
	want := []string{"FLA", "PAL"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected clubs: got=%v want=%v", got, want)
	}
}

func TestLookupWindow(t *testing.T) {
	t.Run("empty resolves to default", func(t *testing.T) {
		spec, err := LookupWindow("")
		if err != nil {
			t.Fatalf("lookup default window: %v", err)
		}
		if spec.Window != WindowThisSeason || spec.View != "kpi_this_season" {
			t.Fatalf("unexpected default window: %+v", spec)
		}
	})

	t.Run("known window", func(t *testing.T) {
		spec, err := LookupWindow(" Last-Match ")
		if err != nil {
			t.Fatalf("lookup window: %v", err)
		}
		if spec.View != "kpi_last_1" || spec.Ordering != OrderByPointsAverage {
			t.Fatalf("unexpected window: %+v", spec)
		}
	})

	t.Run("unknown window", func(t *testing.T) {
		if _, err := LookupWindow("kpi_this_season; DROP TABLE x"); !errors.Is(err, ErrUnknownWindow) {
			t.Fatalf("expected ErrUnknownWindow, got %v", err)
		}
	})
}

func TestSortRows(t *testing.T) {
	t.Run("general rank ascending with nulls last", func(t *testing.T) {
		rows := []PlayerRow{
			{Name: Some("c"), ADPGenAvg: None[int64]()},
			{Name: Some("b"), ADPGenAvg: Some[int64](2)},
			{Name: Some("a"), ADPGenAvg: Some[int64](1)},
		}
		SortRows(rows, OrderByGeneralRank)
		if got := names(rows); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
			t.Fatalf("unexpected order: %v", got)
		}
	})

	t.Run("points average descending with nulls last", func(t *testing.T) {
		rows := []PlayerRow{
			{Name: Some("c"), PtsAvg: None[float64]()},
			{Name: Some("a"), PtsAvg: Some(1.5)},
			{Name: Some("b"), PtsAvg: Some(7.2)},
		}
		SortRows(rows, OrderByPointsAverage)
		if got := names(rows); !reflect.DeepEqual(got, []string{"b", "a", "c"}) {
			t.Fatalf("unexpected order: %v", got)
		}
	})
}
