package memory

import (
	"math"

	"github.com/riskibarqy/scouting-panel/internal/domain/kpi"
	"github.com/riskibarqy/scouting-panel/internal/domain/scout"
)

// SeedScoutCodes is the reference scout table used by local runs.
func SeedScoutCodes() []scout.Code {
	return []scout.Code{
		{Code: "G", Description: "Goal", Points: 8},
		{Code: "A", Description: "Assist", Points: 5},
		{Code: "FT", Description: "Shot on post", Points: 3},
		{Code: "FD", Description: "Shot on target", Points: 1.2},
		{Code: "FF", Description: "Shot off target", Points: 0.8},
		{Code: "FS", Description: "Foul suffered", Points: 0.5},
		{Code: "PS", Description: "Penalty won", Points: 1},
		{Code: "DS", Description: "Tackle", Points: 1.2},
		{Code: "SG", Description: "Clean sheet", Points: 5},
		{Code: "DE", Description: "Save", Points: 1.3},
		{Code: "DP", Description: "Penalty saved", Points: 7},
		{Code: "FC", Description: "Foul committed", Points: -0.3},
		{Code: "PC", Description: "Penalty conceded", Points: -1},
		{Code: "CA", Description: "Yellow card", Points: -1},
		{Code: "CV", Description: "Red card", Points: -3},
		{Code: "GC", Description: "Own goal", Points: -3},
		{Code: "GS", Description: "Goal conceded", Points: -1},
		{Code: "I", Description: "Offside", Points: -0.1},
		{Code: "PP", Description: "Penalty missed", Points: -4},
	}
}

type seedPlayer struct {
	name     string
	club     string
	position kpi.Position
	points   float64
	scouts   map[string]float64
}

var seedRoster = []seedPlayer{
	{name: "Hugo Souza", club: "COR", position: kpi.PositionGoalkeeper, points: 6.1, scouts: map[string]float64{"DE": 3.2, "SG": 0.4, "GS": 0.9}},
	{name: "Rafael Cabral", club: "CRU", position: kpi.PositionGoalkeeper, points: 5.2, scouts: map[string]float64{"DE": 2.6, "SG": 0.3, "GS": 1.1, "DP": 0.1}},
	{name: "Leo Ortiz", club: "FLA", position: kpi.PositionCenterBack, points: 5.8, scouts: map[string]float64{"DS": 2.1, "SG": 0.5, "FC": 1.2, "CA": 0.2}},
	{name: "Gustavo Gomez", club: "PAL", position: kpi.PositionCenterBack, points: 5.5, scouts: map[string]float64{"DS": 1.8, "SG": 0.5, "G": 0.1, "FC": 1.5}},
	{name: "Guilherme Arana", club: "CAM", position: kpi.PositionFullBack, points: 4.9, scouts: map[string]float64{"DS": 1.5, "A": 0.2, "FS": 1.1, "CA": 0.3}},
	{name: "Wesley Franca", club: "FLA", position: kpi.PositionFullBack, points: 4.4, scouts: map[string]float64{"DS": 1.9, "FS": 1.4, "FF": 0.3}},
	{name: "Giorgian De Arrascaeta", club: "FLA", position: kpi.PositionMidfielder, points: 7.4, scouts: map[string]float64{"G": 0.4, "A": 0.4, "FD": 0.9, "FS": 1.6, "I": 0.1}},
	{name: "Raphael Veiga", club: "PAL", position: kpi.PositionMidfielder, points: 6.3, scouts: map[string]float64{"G": 0.3, "A": 0.2, "FD": 0.8, "FF": 0.9, "PS": 0.05}},
	{name: "Gerson", club: "CRU", position: kpi.PositionMidfielder, points: 4.8, scouts: map[string]float64{"DS": 1.7, "FS": 1.2, "CA": 0.3}},
	{name: "Pedro", club: "FLA", position: kpi.PositionAttacker, points: 7.9, scouts: map[string]float64{"G": 0.7, "FD": 1.3, "FF": 1.1, "I": 0.6, "PP": 0.02}},
	{name: "Hulk", club: "CAM", position: kpi.PositionAttacker, points: 6.7, scouts: map[string]float64{"G": 0.5, "A": 0.2, "FT": 0.1, "FD": 1.1, "FC": 1.4}},
	{name: "Yuri Alberto", club: "COR", position: kpi.PositionAttacker, points: 5.1, scouts: map[string]float64{"G": 0.4, "FD": 0.7, "FF": 1.0, "I": 0.9, "CV": 0.03}},
}

// windowScale varies the roster per window so every view differs.
var windowScale = map[kpi.Window]float64{
	kpi.WindowThisSeason: 1.0,
	kpi.WindowLastMatch:  1.35,
	kpi.WindowLast5:      1.1,
	kpi.WindowLast3Home:  1.2,
	kpi.WindowLast3Away:  0.85,
	kpi.WindowLastSeason: 0.95,
}

// SeedKPIRows builds deterministic rows for every window. Availability is
// stored as a ratio, as the warehouse does.
func SeedKPIRows() map[kpi.Window][]kpi.PlayerRow {
	out := make(map[kpi.Window][]kpi.PlayerRow, len(windowScale))
	for _, spec := range kpi.Windows() {
		out[spec.Window] = seedWindow(spec.Window, windowScale[spec.Window])
	}
	return out
}

func seedWindow(window kpi.Window, scale float64) []kpi.PlayerRow {
	rows := make([]kpi.PlayerRow, 0, len(seedRoster)+1)
	mean, stdev := rosterStats(scale)

	for i, p := range seedRoster {
		// alternate the swing so windows do not simply rescale each other
		swing := scale
		if i%2 == 1 {
			swing = 2 - scale
		}
		pts := round2(p.points * swing)
		base := round2(pts - p.scouts["G"]*8 - p.scouts["A"]*5)
		z := round2((pts - mean) / stdev)

		row := kpi.PlayerRow{
			Name:           kpi.Some(p.name),
			Club:           kpi.Some(p.club),
			Position:       kpi.Some(string(p.position)),
			PtsAvg:         kpi.Some(pts),
			BaseAvg:        kpi.Some(base),
			DVSPosAvg:      kpi.Some(round2(z * 0.9)),
			DVSPosBase:     kpi.Some(round2(z * 0.7)),
			DVSGenAvg:      kpi.Some(round2(z * 1.1)),
			DVSGenBase:     kpi.Some(round2(z * 0.8)),
			ZScorePosAvg:   kpi.Some(round2(z * 0.95)),
			ZScorePosBase:  kpi.Some(round2(z * 0.75)),
			ZScoreGenAvg:   kpi.Some(z),
			ZScoreGenBase:  kpi.Some(round2(z * 0.85)),
			Availability:   kpi.Some(round2(math.Min(1, 0.55+float64(i%5)*0.1))),
			MatchesCounted: kpi.Some(int64(matchesFor(window, i))),
			Scouts:         make(map[string]kpi.Optional[float64], len(p.scouts)),
		}
		for code, avg := range p.scouts {
			row.Scouts[code] = kpi.Some(round2(avg * swing))
		}
		rows = append(rows, row)
	}

	assignRanks(rows)

	// A row the warehouse produced without identity or ranks.
	rows = append(rows, kpi.PlayerRow{
		Club:     kpi.Some("BOT"),
		Position: kpi.Some(string(kpi.PositionMidfielder)),
		PtsAvg:   kpi.Some(0.0),
	})

	kpi.SortRows(rows, mustOrdering(window))
	return rows
}

func assignRanks(rows []kpi.PlayerRow) {
	ranked := make([]int, len(rows))
	for i := range ranked {
		ranked[i] = i
	}
	better := func(a, b int) bool {
		x, _ := rows[a].PtsAvg.Get()
		y, _ := rows[b].PtsAvg.Get()
		return x > y
	}
	baseBetter := func(a, b int) bool {
		x, _ := rows[a].BaseAvg.Get()
		y, _ := rows[b].BaseAvg.Get()
		return x > y
	}

	genAvg := rankBy(ranked, better)
	genBase := rankBy(ranked, baseBetter)
	posAvg := make(map[int]int64, len(rows))
	posBase := make(map[int]int64, len(rows))
	for _, position := range kpi.Positions {
		var members []int
		for i, row := range rows {
			if row.Position.OrElse("") == string(position) {
				members = append(members, i)
			}
		}
		for idx, rank := range rankBy(members, better) {
			posAvg[idx] = rank
		}
		for idx, rank := range rankBy(members, baseBetter) {
			posBase[idx] = rank
		}
	}

	for i := range rows {
		rows[i].ADPGenAvg = kpi.Some(genAvg[i])
		rows[i].ADPGenBase = kpi.Some(genBase[i])
		rows[i].ADPPosAvg = kpi.Some(posAvg[i])
		rows[i].ADPPosBase = kpi.Some(posBase[i])
	}
}

// rankBy returns 1-based ranks for the given indexes.
func rankBy(indexes []int, better func(a, b int) bool) map[int]int64 {
	ordered := append([]int(nil), indexes...)
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && better(ordered[j], ordered[j-1]); j-- {
			ordered[j], ordered[j-1] = ordered[j-1], ordered[j]
		}
	}
	out := make(map[int]int64, len(ordered))
	for rank, idx := range ordered {
		out[idx] = int64(rank + 1)
	}
	return out
}

func rosterStats(scale float64) (mean, stdev float64) {
	values := make([]float64, 0, len(seedRoster))
	for i, p := range seedRoster {
		swing := scale
		if i%2 == 1 {
			swing = 2 - scale
		}
		values = append(values, p.points*swing)
	}
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	for _, v := range values {
		stdev += (v - mean) * (v - mean)
	}
	stdev = math.Sqrt(stdev / float64(len(values)))
	if stdev == 0 {
		stdev = 1
	}
	return mean, stdev
}

func matchesFor(window kpi.Window, i int) int {
	switch window {
	case kpi.WindowLastMatch:
		return 1
	case kpi.WindowLast5:
		return 5 - i%2
	case kpi.WindowLast3Home, kpi.WindowLast3Away:
		return 3 - i%2
	case kpi.WindowLastSeason:
		return 30 + i
	default:
		return 20 + i%6
	}
}

func mustOrdering(window kpi.Window) kpi.Ordering {
	spec, err := kpi.LookupWindow(string(window))
	if err != nil {
		return kpi.OrderByGeneralRank
	}
	return spec.Ordering
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
