// Package record decodes loosely typed warehouse rows into domain rows.
package record

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/scouting-panel/internal/domain/kpi"
	"github.com/riskibarqy/scouting-panel/internal/domain/scout"
)

// PlayerRow maps a column-name keyed record to a kpi.PlayerRow. Unknown
// columns are ignored; avg_* columns become scout averages.
func PlayerRow(rec map[string]any) (kpi.PlayerRow, error) {
	var row kpi.PlayerRow
	var err error

	text := func(key string) kpi.Optional[string] {
		if err != nil {
			return kpi.None[string]()
		}
		var v kpi.Optional[string]
		v, err = asText(key, rec[key])
		return v
	}
	float := func(key string) kpi.Optional[float64] {
		if err != nil {
			return kpi.None[float64]()
		}
		var v kpi.Optional[float64]
		v, err = asFloat(key, rec[key])
		return v
	}
	integer := func(key string) kpi.Optional[int64] {
		if err != nil {
			return kpi.None[int64]()
		}
		var v kpi.Optional[int64]
		v, err = asInt(key, rec[key])
		return v
	}

	row.Name = text(kpi.KeyName)
	row.Club = text(kpi.KeyClub)
	row.Position = text(kpi.KeyPosition)
	row.PtsAvg = float(kpi.KeyPtsAvg)
	row.BaseAvg = float(kpi.KeyBaseAvg)
	row.ADPPosAvg = integer(kpi.KeyADPPosAvg)
	row.ADPPosBase = integer(kpi.KeyADPPosBase)
	row.ADPGenAvg = integer(kpi.KeyADPGenAvg)
	row.ADPGenBase = integer(kpi.KeyADPGenBase)
	row.DVSPosAvg = float(kpi.KeyDVSPosAvg)
	row.DVSPosBase = float(kpi.KeyDVSPosBase)
	row.DVSGenAvg = float(kpi.KeyDVSGenAvg)
	row.DVSGenBase = float(kpi.KeyDVSGenBase)
	row.ZScorePosAvg = float(kpi.KeyZScorePosAvg)
	row.ZScorePosBase = float(kpi.KeyZScorePosBase)
	row.ZScoreGenAvg = float(kpi.KeyZScoreGenAvg)
	row.ZScoreGenBase = float(kpi.KeyZScoreGenBase)
	row.Availability = float(kpi.KeyAvailability)
	row.MatchesCounted = integer(kpi.KeyMatchesCounted)
	if err != nil {
		return kpi.PlayerRow{}, err
	}

	for key, raw := range rec {
		code, ok := kpi.ScoutCodeFromField(key)
		if !ok {
			continue
		}
		v, convErr := asFloat(key, raw)
		if convErr != nil {
			return kpi.PlayerRow{}, convErr
		}
		if row.Scouts == nil {
			row.Scouts = make(map[string]kpi.Optional[float64])
		}
		row.Scouts[code] = v
	}

	return row, nil
}

// ScoutCode maps a scout_points record. Every column is required.
func ScoutCode(rec map[string]any) (scout.Code, error) {
	code, err := asText("code", rec["code"])
	if err != nil {
		return scout.Code{}, err
	}
	description, err := asText("description_en", rec["description_en"])
	if err != nil {
		return scout.Code{}, err
	}
	points, err := asFloat("points", rec["points"])
	if err != nil {
		return scout.Code{}, err
	}

	c, ok := code.Get()
	if !ok || strings.TrimSpace(c) == "" {
		return scout.Code{}, crerr.New("scout_points row without code")
	}
	p, ok := points.Get()
	if !ok {
		return scout.Code{}, crerr.Newf("scout %s has no points", c)
	}
	return scout.Code{
		Code:        strings.TrimSpace(c),
		Description: description.OrElse(c),
		Points:      p,
	}, nil
}

func asText(key string, raw any) (kpi.Optional[string], error) {
	switch v := raw.(type) {
	case nil:
		return kpi.None[string](), nil
	case string:
		return kpi.Some(v), nil
	case []byte:
		return kpi.Some(string(v)), nil
	default:
		return kpi.None[string](), crerr.Newf("column %s: unexpected text type %T", key, raw)
	}
}

func asFloat(key string, raw any) (kpi.Optional[float64], error) {
	switch v := raw.(type) {
	case nil:
		return kpi.None[float64](), nil
	case float64:
		return kpi.Some(v), nil
	case float32:
		return kpi.Some(float64(v)), nil
	case int64:
		return kpi.Some(float64(v)), nil
	case int32:
		return kpi.Some(float64(v)), nil
	case int:
		return kpi.Some(float64(v)), nil
	case *big.Rat:
		if v == nil {
			return kpi.None[float64](), nil
		}
		f, _ := v.Float64()
		return kpi.Some(f), nil
	case []byte:
		return parseFloat(key, string(v))
	case string:
		return parseFloat(key, v)
	default:
		return kpi.None[float64](), crerr.Newf("column %s: unexpected numeric type %T", key, raw)
	}
}

func asInt(key string, raw any) (kpi.Optional[int64], error) {
	switch v := raw.(type) {
	case int64:
		return kpi.Some(v), nil
	case int32:
		return kpi.Some(int64(v)), nil
	case int:
		return kpi.Some(int64(v)), nil
	}

	f, err := asFloat(key, raw)
	if err != nil {
		return kpi.None[int64](), err
	}
	n, ok := f.Get()
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return kpi.None[int64](), nil
	}
	return kpi.Some(int64(math.Round(n))), nil
}

func parseFloat(key, s string) (kpi.Optional[float64], error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return kpi.None[float64](), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return kpi.None[float64](), crerr.Wrapf(err, "column %s", key)
	}
	return kpi.Some(f), nil
}
