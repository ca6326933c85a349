package display

import (
	"math"

	"github.com/riskibarqy/scouting-panel/internal/domain/kpi"
	"github.com/riskibarqy/scouting-panel/internal/domain/scout"
)

type BreakdownLine struct {
	Code        string
	Description string
	Weight      float64
	Count       kpi.Value
	Points      kpi.Value
	CountText   string
	PointsText  string
}

type BreakdownSection struct {
	Category scout.Category
	Title    string
	Lines    []BreakdownLine
}

// Breakdown lists a single player's per-match scout averages and the points
// they contribute, grouped in taxonomy order.
func Breakdown(row kpi.PlayerRow, groups scout.Groups) []BreakdownSection {
	sections := groups.Sections()
	out := make([]BreakdownSection, 0, len(sections))
	for _, section := range sections {
		lines := make([]BreakdownLine, 0, len(section.Entries))
		for _, entry := range section.Entries {
			count := row.Metric(entry.FieldKey)
			points := Contribution(count, entry.Points)
			lines = append(lines, BreakdownLine{
				Code:        entry.Code,
				Description: entry.Description,
				Weight:      entry.Points,
				Count:       count,
				Points:      points,
				CountText:   FormatValue(count, FormatTwoDecimals),
				PointsText:  FormatValue(points, FormatSignedTwoDecimals),
			})
		}
		out = append(out, BreakdownSection{
			Category: section.Category,
			Title:    section.Title,
			Lines:    lines,
		})
	}
	return out
}

// Contribution is average * weight, missing when the average is missing.
func Contribution(average kpi.Value, weight float64) kpi.Value {
	n, ok := average.Number()
	if !ok || math.IsNaN(n) {
		return kpi.NoValue
	}
	return kpi.FloatValue(n * weight)
}
