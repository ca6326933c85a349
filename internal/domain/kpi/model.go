package kpi

import (
	"sort"
	"strings"
)

// Position is the scouting position code carried by every KPI row.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionCenterBack Position = "CB"
	PositionFullBack   Position = "FB"
	PositionMidfielder Position = "MD"
	PositionAttacker   Position = "AT"
)

// Positions is the fixed display order of position filters.
var Positions = []Position{
	PositionGoalkeeper,
	PositionCenterBack,
	PositionFullBack,
	PositionMidfielder,
	PositionAttacker,
}

// Column keys as exposed by the warehouse views.
const (
	KeyName           = "name"
	KeyClub           = "club"
	KeyPosition       = "position"
	KeyPtsAvg         = "pts_avg"
	KeyBaseAvg        = "base_avg"
	KeyADPPosAvg      = "adp_pos_avg"
	KeyADPPosBase     = "adp_pos_base"
	KeyADPGenAvg      = "adp_gen_avg"
	KeyADPGenBase     = "adp_gen_base"
	KeyDVSPosAvg      = "dvs_pos_avg"
	KeyDVSPosBase     = "dvs_pos_base"
	KeyDVSGenAvg      = "dvs_gen_avg"
	KeyDVSGenBase     = "dvs_gen_base"
	KeyZScorePosAvg   = "z_score_pos_avg"
	KeyZScorePosBase  = "z_score_pos_base"
	KeyZScoreGenAvg   = "z_score_gen_avg"
	KeyZScoreGenBase  = "z_score_gen_base"
	KeyAvailability   = "availability"
	KeyMatchesCounted = "matches_counted"

	ScoutFieldPrefix = "avg_"
)

// ScoutFieldKey maps a scout code to the row column holding its per-match average.
func ScoutFieldKey(code string) string {
	return ScoutFieldPrefix + code
}

// ScoutCodeFromField is the inverse of ScoutFieldKey.
func ScoutCodeFromField(key string) (string, bool) {
	if !strings.HasPrefix(key, ScoutFieldPrefix) {
		return "", false
	}
	code := strings.TrimPrefix(key, ScoutFieldPrefix)
	if code == "" {
		return "", false
	}
	return code, true
}

// PlayerRow is one player in one time-window view.
type PlayerRow struct {
	Name     Optional[string]
	Club     Optional[string]
	Position Optional[string]

	PtsAvg  Optional[float64]
	BaseAvg Optional[float64]

	ADPPosAvg  Optional[int64]
	ADPPosBase Optional[int64]
	ADPGenAvg  Optional[int64]
	ADPGenBase Optional[int64]

	DVSPosAvg  Optional[float64]
	DVSPosBase Optional[float64]
	DVSGenAvg  Optional[float64]
	DVSGenBase Optional[float64]

	ZScorePosAvg  Optional[float64]
	ZScorePosBase Optional[float64]
	ZScoreGenAvg  Optional[float64]
	ZScoreGenBase Optional[float64]

	// Availability is a ratio in [0,1] as loaded and a percentage in
	// [0,100] once RescaleAvailability has run.
	Availability   Optional[float64]
	MatchesCounted Optional[int64]

	// Scouts holds avg_<CODE> columns keyed by code.
	Scouts map[string]Optional[float64]
}

func (r PlayerRow) ScoutAverage(code string) Optional[float64] {
	if r.Scouts == nil {
		return None[float64]()
	}
	return r.Scouts[code]
}

// Metric reads a column by its warehouse key. Unknown keys are missing values.
func (r PlayerRow) Metric(key string) Value {
	switch key {
	case KeyName:
		return fromString(r.Name)
	case KeyClub:
		return fromString(r.Club)
	case KeyPosition:
		return fromString(r.Position)
	case KeyPtsAvg:
		return fromFloat(r.PtsAvg)
	case KeyBaseAvg:
		return fromFloat(r.BaseAvg)
	case KeyADPPosAvg:
		return fromInt(r.ADPPosAvg)
	case KeyADPPosBase:
		return fromInt(r.ADPPosBase)
	case KeyADPGenAvg:
		return fromInt(r.ADPGenAvg)
	case KeyADPGenBase:
		return fromInt(r.ADPGenBase)
	case KeyDVSPosAvg:
		return fromFloat(r.DVSPosAvg)
	case KeyDVSPosBase:
		return fromFloat(r.DVSPosBase)
	case KeyDVSGenAvg:
		return fromFloat(r.DVSGenAvg)
	case KeyDVSGenBase:
		return fromFloat(r.DVSGenBase)
	case KeyZScorePosAvg:
		return fromFloat(r.ZScorePosAvg)
	case KeyZScorePosBase:
		return fromFloat(r.ZScorePosBase)
	case KeyZScoreGenAvg:
		return fromFloat(r.ZScoreGenAvg)
	case KeyZScoreGenBase:
		return fromFloat(r.ZScoreGenBase)
	case KeyAvailability:
		return fromFloat(r.Availability)
	case KeyMatchesCounted:
		return fromInt(r.MatchesCounted)
	}

	if code, ok := ScoutCodeFromField(key); ok {
		return fromFloat(r.ScoutAverage(code))
	}
	return NoValue
}

// DisplayName returns the name or an empty string for nameless rows.
func (r PlayerRow) DisplayName() string {
	return r.Name.OrElse("")
}

// RescaleAvailability converts availability ratios into percentages.
// It returns a fresh slice and must run exactly once per load.
func RescaleAvailability(rows []PlayerRow) []PlayerRow {
	out := make([]PlayerRow, len(rows))
	for i, row := range rows {
		if ratio, ok := row.Availability.Get(); ok {
			row.Availability = Some(ratio * 100)
		}
		out[i] = row
	}
	return out
}

// Clubs returns the distinct non-empty clubs of rows, sorted.
func Clubs(rows []PlayerRow) []string {
	seen := make(map[string]struct{}, 32)
	out := make([]string, 0, 32)
	for _, row := range rows {
		club, ok := row.Club.Get()
		if !ok || club == "" {
			continue
		}
		if _, dup := seen[club]; dup {
			continue
		}
		seen[club] = struct{}{}
		out = append(out, club)
	}
	sort.Strings(out)
	return out
}
