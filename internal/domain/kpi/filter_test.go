package kpi

import (
	"reflect"
	"testing"
)

func sampleRows() []PlayerRow {
	return []PlayerRow{
		{Name: Some("Ana Silva"), Club: Some("FLA"), Position: Some("MD")},
		{Name: Some("Bruno Costa"), Club: Some("PAL"), Position: Some("AT")},
		{Name: None[string](), Club: Some("FLA"), Position: Some("GK")},
		{Name: Some("Carla Anjos"), Club: Some("FLA"), Position: Some("AT")},
		{Name: Some("Diego Santana"), Club: None[string](), Position: None[string]()},
	}
}

func names(rows []PlayerRow) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.DisplayName())
	}
	return out
}

func TestFilter(t *testing.T) {
	rows := sampleRows()

	t.Run("empty criteria returns rows unchanged", func(t *testing.T) {
		got := Filter(rows, Criteria{Name: "", Club: FilterAll, Position: FilterAll})
		if !reflect.DeepEqual(got, rows) {
			t.Fatalf("expected rows unchanged, got %v", names(got))
		}
	})

	t.Run("zero criteria behaves like All", func(t *testing.T) {
		got := Filter(rows, Criteria{})
		if len(got) != len(rows) {
			t.Fatalf("unexpected row count: got=%d want=%d", len(got), len(rows))
		}
	})

	t.Run("name is case-insensitive substring", func(t *testing.T) {
		got := names(Filter(rows, Criteria{Name: "AN"}))
		want := []string{"Ana Silva", "Carla Anjos", "Diego Santana"}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("unexpected names: got=%v want=%v", got, want)
		}
	})

	t.Run("nameless rows never match a name query", func(t *testing.T) {
		for _, row := range Filter(rows, Criteria{Name: "a"}) {
			if !row.Name.Valid() {
				t.Fatalf("nameless row matched a non-empty query")
			}
		}
	})

	t.Run("club and position compose with AND", func(t *testing.T) {
		got := names(Filter(rows, Criteria{Club: "FLA", Position: "AT"}))
		want := []string{"Carla Anjos"}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("unexpected names: got=%v want=%v", got, want)
		}
	})

	t.Run("club filter is exact", func(t *testing.T) {
		if got := Filter(rows, Criteria{Club: "fla"}); len(got) != 0 {
			t.Fatalf("expected no rows for case-mismatched club, got %v", names(got))
		}
	})

	t.Run("filtering is idempotent", func(t *testing.T) {
		criteria := []Criteria{
			{Name: "a", Club: "FLA", Position: FilterAll},
			{Name: "", Club: FilterAll, Position: "AT"},
			{Name: "zzz"},
		}
		for _, c := range criteria {
			once := Filter(rows, c)
			twice := Filter(once, c)
			if !reflect.DeepEqual(once, twice) {
				t.Fatalf("filter not idempotent for %+v", c)
			}
		}
	})

	t.Run("nil input is total", func(t *testing.T) {
		if got := Filter(nil, Criteria{Name: "x"}); len(got) != 0 {
			t.Fatalf("expected empty result, got %d rows", len(got))
		}
	})
}
