package kpi

import "strings"

// FilterAll disables the club or position filter.
const FilterAll = "All"

// Criteria narrows a row set. Zero Criteria matches every row.
type Criteria struct {
	Name     string
	Club     string
	Position string
}

// Filter keeps the rows matching every active criterion, in their original
// order. Name is a case-insensitive substring match; club and position are
// exact matches disabled by "All" or an empty string.
func Filter(rows []PlayerRow, c Criteria) []PlayerRow {
	needle := strings.ToLower(c.Name)
	club := exactFilter(c.Club)
	position := exactFilter(c.Position)

	out := make([]PlayerRow, 0, len(rows))
	for _, row := range rows {
		if needle != "" && !nameContains(row, needle) {
			continue
		}
		if club != "" && !fieldEquals(row.Club, club) {
			continue
		}
		if position != "" && !fieldEquals(row.Position, position) {
			continue
		}
		out = append(out, row)
	}
	return out
}

func exactFilter(v string) string {
	if v == FilterAll {
		return ""
	}
	return v
}

func nameContains(row PlayerRow, lowered string) bool {
	name, ok := row.Name.Get()
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(name), lowered)
}

func fieldEquals(field Optional[string], want string) bool {
	got, ok := field.Get()
	return ok && got == want
}
