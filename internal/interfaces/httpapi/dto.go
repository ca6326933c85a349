package httpapi

import (
	"math"

	"github.com/riskibarqy/scouting-panel/internal/domain/comparison"
	"github.com/riskibarqy/scouting-panel/internal/domain/display"
	"github.com/riskibarqy/scouting-panel/internal/domain/kpi"
	"github.com/riskibarqy/scouting-panel/internal/domain/scout"
	"github.com/riskibarqy/scouting-panel/internal/usecase"
)

type windowDTO struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	View     string `json:"view"`
	Ordering string `json:"ordering"`
	Default  bool   `json:"default"`
}

type scoutEntryDTO struct {
	Code        string  `json:"code"`
	FieldKey    string  `json:"field_key"`
	Description string  `json:"description"`
	Points      float64 `json:"points"`
}

type scoutGroupDTO struct {
	Category string          `json:"category"`
	Title    string          `json:"title"`
	Entries  []scoutEntryDTO `json:"entries"`
}

type filtersDTO struct {
	Window    windowDTO `json:"window"`
	Clubs     []string  `json:"clubs"`
	Positions []string  `json:"positions"`
}

type columnDTO struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Format  string `json:"format"`
	Help    string `json:"help,omitempty"`
	Colored bool   `json:"colored"`
}

type colorDTO struct {
	Tone      string  `json:"tone"`
	Intensity float64 `json:"intensity"`
	R         uint8   `json:"r"`
	G         uint8   `json:"g"`
	B         uint8   `json:"b"`
	Alpha     float64 `json:"alpha"`
	CSS       string  `json:"css"`
}

type cellDTO struct {
	Key   string    `json:"key"`
	Value any       `json:"value"`
	Text  string    `json:"text"`
	Color *colorDTO `json:"color,omitempty"`
}

type rowDTO struct {
	Cells []cellDTO `json:"cells"`
}

type tableDTO struct {
	Window  windowDTO   `json:"window"`
	View    string      `json:"view"`
	Title   string      `json:"title"`
	Help    string      `json:"help,omitempty"`
	Scope   string      `json:"scope,omitempty"`
	Scopes  []string    `json:"scopes,omitempty"`
	Columns []columnDTO `json:"columns"`
	Rows    []rowDTO    `json:"rows"`
	Count   int         `json:"count"`
	Total   int         `json:"total"`
}

type playerDTO struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	Club     string `json:"club"`
}

type comparisonCellDTO struct {
	Value   any       `json:"value"`
	Average any       `json:"average,omitempty"`
	Text    string    `json:"text"`
	Color   *colorDTO `json:"color,omitempty"`
}

type comparisonLineDTO struct {
	Kind  string              `json:"kind"`
	Label string              `json:"label,omitempty"`
	Hint  string              `json:"hint,omitempty"`
	Key   string              `json:"key,omitempty"`
	Cells []comparisonCellDTO `json:"cells,omitempty"`
}

type comparisonDTO struct {
	Window  windowDTO           `json:"window"`
	Players []playerDTO         `json:"players"`
	Lines   []comparisonLineDTO `json:"lines"`
}

type breakdownLineDTO struct {
	Code        string  `json:"code"`
	Description string  `json:"description"`
	Weight      float64 `json:"weight"`
	Count       any     `json:"count"`
	Points      any     `json:"points"`
	CountText   string  `json:"count_text"`
	PointsText  string  `json:"points_text"`
}

type breakdownSectionDTO struct {
	Category string             `json:"category"`
	Title    string             `json:"title"`
	Lines    []breakdownLineDTO `json:"lines"`
}

type playerScoutsDTO struct {
	Window   windowDTO             `json:"window"`
	Player   playerDTO             `json:"player"`
	Sections []breakdownSectionDTO `json:"sections"`
}

type invalidateDTO struct {
	Entries int `json:"entries"`
}

// jsonValue turns a cell value into a JSON scalar; missing and non-finite
// numbers become null.
func jsonValue(v kpi.Value) any {
	raw := v.Raw()
	if f, ok := raw.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return nil
	}
	return raw
}

func windowToDTO(spec kpi.WindowSpec) windowDTO {
	return windowDTO{
		ID:       string(spec.Window),
		Label:    spec.Label,
		View:     spec.View,
		Ordering: string(spec.Ordering),
		Default:  spec.Window == kpi.DefaultWindow().Window,
	}
}

func colorToDTO(c *display.Color) *colorDTO {
	if c == nil {
		return nil
	}
	return &colorDTO{
		Tone:      string(c.Tone),
		Intensity: c.Intensity,
		R:         c.R,
		G:         c.G,
		B:         c.B,
		Alpha:     c.Alpha,
		CSS:       c.CSS(),
	}
}

func groupsToDTO(groups scout.Groups) []scoutGroupDTO {
	sections := groups.Sections()
	out := make([]scoutGroupDTO, 0, len(sections))
	for _, section := range sections {
		entries := make([]scoutEntryDTO, 0, len(section.Entries))
		for _, e := range section.Entries {
			entries = append(entries, scoutEntryDTO{
				Code:        e.Code,
				FieldKey:    e.FieldKey,
				Description: e.Description,
				Points:      e.Points,
			})
		}
		out = append(out, scoutGroupDTO{Category: string(section.Category), Title: section.Title, Entries: entries})
	}
	return out
}

func tableToDTO(view usecase.TableView) tableDTO {
	columns := make([]columnDTO, 0, len(view.Spec.Columns))
	for _, c := range view.Spec.Columns {
		columns = append(columns, columnDTO{
			Key:     c.Key,
			Label:   c.Label,
			Format:  string(c.Format),
			Help:    c.Help,
			Colored: c.Colored,
		})
	}

	rows := make([]rowDTO, 0, len(view.Rows))
	for _, p := range view.Rows {
		cells := make([]cellDTO, 0, len(p.Cells))
		for _, c := range p.Cells {
			cells = append(cells, cellDTO{
				Key:   c.Key,
				Value: jsonValue(c.Value),
				Text:  c.Text,
				Color: colorToDTO(c.Color),
			})
		}
		rows = append(rows, rowDTO{Cells: cells})
	}

	out := tableDTO{
		Window:  windowToDTO(view.Window),
		View:    view.Spec.Name,
		Title:   view.Spec.Title,
		Help:    view.Spec.Help,
		Columns: columns,
		Rows:    rows,
		Count:   len(rows),
		Total:   view.Total,
	}
	if view.Scope != "" {
		out.Scope = string(view.Scope)
		for _, s := range display.Scopes() {
			out.Scopes = append(out.Scopes, string(s))
		}
	}
	return out
}

func playerToDTO(p comparison.Player) playerDTO {
	return playerDTO{Name: p.Name, Position: p.Position, Club: p.Club}
}

func comparisonToDTO(view usecase.ComparisonView) comparisonDTO {
	players := make([]playerDTO, 0, len(view.Players))
	for _, p := range view.Players {
		players = append(players, playerToDTO(p))
	}

	lines := make([]comparisonLineDTO, 0, len(view.Lines))
	for _, line := range view.Lines {
		dto := comparisonLineDTO{
			Kind:  string(line.Kind),
			Label: line.Label,
			Hint:  line.Hint,
			Key:   line.Key,
		}
		for _, c := range line.Cells {
			dto.Cells = append(dto.Cells, comparisonCellDTO{
				Value:   jsonValue(c.Value),
				Average: jsonValue(c.Average),
				Text:    c.Text,
				Color:   colorToDTO(c.Color),
			})
		}
		lines = append(lines, dto)
	}

	return comparisonDTO{Window: windowToDTO(view.Window), Players: players, Lines: lines}
}

func playerScoutsToDTO(view usecase.PlayerScouts) playerScoutsDTO {
	sections := make([]breakdownSectionDTO, 0, len(view.Sections))
	for _, section := range view.Sections {
		lines := make([]breakdownLineDTO, 0, len(section.Lines))
		for _, l := range section.Lines {
			lines = append(lines, breakdownLineDTO{
				Code:        l.Code,
				Description: l.Description,
				Weight:      l.Weight,
				Count:       jsonValue(l.Count),
				Points:      jsonValue(l.Points),
				CountText:   l.CountText,
				PointsText:  l.PointsText,
			})
		}
		sections = append(sections, breakdownSectionDTO{
			Category: string(section.Category),
			Title:    section.Title,
			Lines:    lines,
		})
	}

	return playerScoutsDTO{
		Window:   windowToDTO(view.Window),
		Player:   playerToDTO(view.Player),
		Sections: sections,
	}
}
