package display

import (
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/scouting-panel/internal/domain/kpi"
)

var ErrUnknownScope = errors.New("unknown details scope")

// Scope selects which rank, DVS and Z-score columns the details view shows.
type Scope string

const (
	ScopePosition Scope = "position"
	ScopeGeneral  Scope = "general"
)

// Scopes lists the details scopes in toggle order; the first is the default.
func Scopes() []Scope {
	return []Scope{ScopePosition, ScopeGeneral}
}

const ScopeHelp = "General compares against top 200 players overall. " +
	"Position-based compares against top players in same position."

func ParseScope(raw string) (Scope, error) {
	switch Scope(strings.ToLower(strings.TrimSpace(raw))) {
	case "":
		return Scopes()[0], nil
	case ScopePosition:
		return ScopePosition, nil
	case ScopeGeneral:
		return ScopeGeneral, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownScope, raw)
}

type Column struct {
	Key     string
	Label   string
	Format  Format
	Help    string
	Colored bool
}

type ViewSpec struct {
	Name    string
	Title   string
	Help    string
	Columns []Column
}

func (s ViewSpec) Column(key string) (Column, bool) {
	for _, c := range s.Columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}

func RankingsView() ViewSpec {
	return ViewSpec{
		Name:  "rankings",
		Title: "ADP Rankings Comparison",
		Columns: []Column{
			{Key: kpi.KeyName, Label: "Player", Format: FormatText},
			{Key: kpi.KeyPosition, Label: "Position", Format: FormatText},
			{Key: kpi.KeyClub, Label: "Club", Format: FormatText},
			{Key: kpi.KeyPtsAvg, Label: "Pts (Avg)", Format: FormatSignedOneDecimal},
			{Key: kpi.KeyADPPosAvg, Label: "Pos/Avg", Format: FormatInteger, Help: "Position ranking by average points"},
			{Key: kpi.KeyADPGenAvg, Label: "Gen/Avg", Format: FormatInteger, Help: "General ranking by average points"},
			{Key: kpi.KeyBaseAvg, Label: "Pts (Base)", Format: FormatSignedOneDecimal},
			{Key: kpi.KeyADPPosBase, Label: "Pos/Base", Format: FormatInteger, Help: "Position ranking by base average"},
			{Key: kpi.KeyADPGenBase, Label: "Gen/Base", Format: FormatInteger, Help: "General ranking by base average"},
			{Key: kpi.KeyAvailability, Label: "Availability", Format: FormatPercent},
		},
	}
}

// DetailsView returns the details columns for scope. Both scopes read the
// same rows; only the rank, DVS and Z-score keys differ.
func DetailsView(scope Scope) ViewSpec {
	keys := scopedKeys(scope)
	title := "Position Metrics"
	if scope == ScopeGeneral {
		title = "General Metrics"
	}

	return ViewSpec{
		Name:  "details_" + string(scope),
		Title: title,
		Help:  ScopeHelp,
		Columns: []Column{
			{Key: keys.rankAvg, Label: "Rank (Avg)", Format: FormatInteger},
			{Key: keys.rankBase, Label: "Rank (Base)", Format: FormatInteger},
			{Key: kpi.KeyName, Label: "Player", Format: FormatText},
			{Key: kpi.KeyPosition, Label: "Position", Format: FormatText},
			{Key: kpi.KeyClub, Label: "Club", Format: FormatText},
			{Key: kpi.KeyMatchesCounted, Label: "Matches", Format: FormatInteger},
			{Key: kpi.KeyAvailability, Label: "Availability", Format: FormatPercent},
			{Key: kpi.KeyPtsAvg, Label: "Pts (Avg)", Format: FormatSignedOneDecimal},
			{Key: keys.dvsAvg, Label: "DVS (Avg)", Format: FormatSignedTwoDecimals, Colored: true},
			{Key: keys.zAvg, Label: "Z (Avg)", Format: FormatSignedTwoDecimals, Colored: true},
			{Key: kpi.KeyBaseAvg, Label: "Pts (Base)", Format: FormatSignedOneDecimal},
			{Key: keys.dvsBase, Label: "DVS (Base)", Format: FormatSignedTwoDecimals, Colored: true},
			{Key: keys.zBase, Label: "Z (Base)", Format: FormatSignedTwoDecimals, Colored: true},
		},
	}
}

type scopeKeys struct {
	rankAvg, rankBase string
	dvsAvg, dvsBase   string
	zAvg, zBase       string
}

func scopedKeys(scope Scope) scopeKeys {
	if scope == ScopeGeneral {
		return scopeKeys{
			rankAvg: kpi.KeyADPGenAvg, rankBase: kpi.KeyADPGenBase,
			dvsAvg: kpi.KeyDVSGenAvg, dvsBase: kpi.KeyDVSGenBase,
			zAvg: kpi.KeyZScoreGenAvg, zBase: kpi.KeyZScoreGenBase,
		}
	}
	return scopeKeys{
		rankAvg: kpi.KeyADPPosAvg, rankBase: kpi.KeyADPPosBase,
		dvsAvg: kpi.KeyDVSPosAvg, dvsBase: kpi.KeyDVSPosBase,
		zAvg: kpi.KeyZScorePosAvg, zBase: kpi.KeyZScorePosBase,
	}
}
