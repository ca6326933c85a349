package comparison

import (
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/scouting-panel/internal/domain/display"
	"github.com/riskibarqy/scouting-panel/internal/domain/kpi"
	"github.com/riskibarqy/scouting-panel/internal/domain/scout"
)

// MaxPlayers caps a single comparison.
const MaxPlayers = 5

var (
	ErrTooManyPlayers  = errors.New("too many players selected for comparison")
	ErrNoPlayers       = errors.New("no players selected for comparison")
	ErrDuplicatePlayer = errors.New("player selected more than once")
	ErrPlayerNotFound  = errors.New("selected player not found")
)

type LineKind string

const (
	LineMetric    LineKind = "metric"
	LineHeader    LineKind = "header"
	LineSeparator LineKind = "separator"
)

type Player struct {
	Name     string
	Position string
	Club     string
}

// Cell is one player's value on one metric line. For scout lines Value is
// the point contribution and Average the raw per-match average.
type Cell struct {
	Value   kpi.Value
	Average kpi.Value
	Text    string
	Color   *display.Color
}

type Line struct {
	Kind  LineKind
	Label string
	Hint  string
	Key   string
	Cells []Cell
}

type Comparison struct {
	Players []Player
	Lines   []Line
}

type metric struct {
	label   string
	key     string
	format  display.Format
	colored bool
}

var summaryMetrics = []metric{
	{label: "Points (Avg)", key: kpi.KeyPtsAvg, format: display.FormatSignedOneDecimal},
	{label: "Points (Base)", key: kpi.KeyBaseAvg, format: display.FormatSignedOneDecimal},
	{label: "Matches", key: kpi.KeyMatchesCounted, format: display.FormatInteger},
	{label: "Availability", key: kpi.KeyAvailability, format: display.FormatPercent},
}

var positionMetrics = []metric{
	{label: "ADP (Avg)", key: kpi.KeyADPPosAvg, format: display.FormatInteger},
	{label: "DVS (Avg)", key: kpi.KeyDVSPosAvg, format: display.FormatSignedTwoDecimals, colored: true},
	{label: "Z-Score (Avg)", key: kpi.KeyZScorePosAvg, format: display.FormatSignedTwoDecimals, colored: true},
	{label: "ADP (Base)", key: kpi.KeyADPPosBase, format: display.FormatInteger},
	{label: "DVS (Base)", key: kpi.KeyDVSPosBase, format: display.FormatSignedTwoDecimals, colored: true},
	{label: "Z-Score (Base)", key: kpi.KeyZScorePosBase, format: display.FormatSignedTwoDecimals, colored: true},
}

var generalMetrics = []metric{
	{label: "ADP (Avg)", key: kpi.KeyADPGenAvg, format: display.FormatInteger},
	{label: "DVS (Avg)", key: kpi.KeyDVSGenAvg, format: display.FormatSignedTwoDecimals, colored: true},
	{label: "Z-Score (Avg)", key: kpi.KeyZScoreGenAvg, format: display.FormatSignedTwoDecimals, colored: true},
	{label: "ADP (Base)", key: kpi.KeyADPGenBase, format: display.FormatInteger},
	{label: "DVS (Base)", key: kpi.KeyDVSGenBase, format: display.FormatSignedTwoDecimals, colored: true},
	{label: "Z-Score (Base)", key: kpi.KeyZScoreGenBase, format: display.FormatSignedTwoDecimals, colored: true},
}

// Build lays out the side-by-side comparison of the named players. More than
// MaxPlayers names is rejected, never truncated.
func Build(rows []kpi.PlayerRow, names []string, groups scout.Groups) (Comparison, error) {
	selected, err := resolve(rows, names)
	if err != nil {
		return Comparison{}, err
	}

	players := make([]Player, 0, len(selected))
	for _, row := range selected {
		players = append(players, Player{
			Name:     row.DisplayName(),
			Position: row.Position.OrElse(""),
			Club:     row.Club.OrElse(""),
		})
	}

	lines := make([]Line, 0, 64)
	lines = appendMetrics(lines, selected, summaryMetrics)
	lines = append(lines, separator(), header("Position Rankings"))
	lines = appendMetrics(lines, selected, positionMetrics)
	lines = append(lines, separator(), header("General Rankings"))
	lines = appendMetrics(lines, selected, generalMetrics)
	for _, section := range groups.Sections() {
		lines = append(lines, separator(), header("Scouts: "+section.Title))
		lines = appendScouts(lines, selected, section.Entries)
	}

	return Comparison{Players: players, Lines: lines}, nil
}

func resolve(rows []kpi.PlayerRow, names []string) ([]kpi.PlayerRow, error) {
	if len(names) > MaxPlayers {
		return nil, fmt.Errorf("%w: got %d, max %d", ErrTooManyPlayers, len(names), MaxPlayers)
	}
	if len(names) == 0 {
		return nil, ErrNoPlayers
	}

	byName := make(map[string]int, len(rows))
	for i, row := range rows {
		name, ok := row.Name.Get()
		if !ok {
			continue
		}
		if _, dup := byName[name]; !dup {
			byName[name] = i
		}
	}

	seen := make(map[string]struct{}, len(names))
	out := make([]kpi.PlayerRow, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePlayer, name)
		}
		seen[name] = struct{}{}

		idx, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, name)
		}
		out = append(out, rows[idx])
	}
	return out, nil
}

func appendMetrics(lines []Line, selected []kpi.PlayerRow, metrics []metric) []Line {
	for _, m := range metrics {
		cells := make([]Cell, 0, len(selected))
		for _, row := range selected {
			v := row.Metric(m.key)
			cell := Cell{Value: v, Text: display.FormatValue(v, m.format)}
			if m.colored {
				if c, ok := display.ColorFor(v); ok {
					cell.Color = &c
				}
			}
			cells = append(cells, cell)
		}
		lines = append(lines, Line{Kind: LineMetric, Label: m.label, Key: m.key, Cells: cells})
	}
	return lines
}

func appendScouts(lines []Line, selected []kpi.PlayerRow, entries []scout.Entry) []Line {
	for _, entry := range entries {
		cells := make([]Cell, 0, len(selected))
		for _, row := range selected {
			avg := row.Metric(entry.FieldKey)
			points := display.Contribution(avg, entry.Points)
			cells = append(cells, Cell{
				Value:   points,
				Average: avg,
				Text:    scoutText(points, avg),
			})
		}
		lines = append(lines, Line{
			Kind:  LineMetric,
			Label: entry.Code,
			Hint:  fmt.Sprintf("%s (%s pts)", entry.Description, display.FormatNumber(entry.Points, display.FormatSignedOneDecimal)),
			Key:   entry.FieldKey,
			Cells: cells,
		})
	}
	return lines
}

func scoutText(points, avg kpi.Value) string {
	if points.Missing() {
		return display.Placeholder
	}
	return fmt.Sprintf("%s pts (%s)",
		display.FormatValue(points, display.FormatSignedOneDecimal),
		display.FormatValue(avg, display.FormatTwoDecimals),
	)
}

func header(label string) Line {
	return Line{Kind: LineHeader, Label: label}
}

func separator() Line {
	return Line{Kind: LineSeparator}
}
