package display

import (
	"math"
	"strconv"

	"github.com/riskibarqy/scouting-panel/internal/domain/kpi"
)

// Placeholder is rendered for every missing value.
const Placeholder = "-"

// Format is a column's numeric rendering rule.
type Format string

const (
	FormatText              Format = "text"
	FormatInteger           Format = "integer"
	FormatSignedOneDecimal  Format = "signed_one_decimal"
	FormatSignedTwoDecimals Format = "signed_two_decimals"
	FormatTwoDecimals       Format = "two_decimals"
	FormatPercent           Format = "percent"
)

// FormatValue renders v with format f. Missing values, and NaN, render as
// Placeholder and never as zero.
func FormatValue(v kpi.Value, f Format) string {
	if v.Missing() {
		return Placeholder
	}
	if s, ok := v.Text(); ok {
		return s
	}

	n, _ := v.Number()
	if math.IsNaN(n) {
		return Placeholder
	}
	return FormatNumber(n, f)
}

func FormatNumber(n float64, f Format) string {
	switch f {
	case FormatInteger:
		return strconv.FormatInt(int64(math.Round(n)), 10)
	case FormatSignedOneDecimal:
		return signed(n, 1)
	case FormatSignedTwoDecimals:
		return signed(n, 2)
	case FormatTwoDecimals:
		return strconv.FormatFloat(n, 'f', 2, 64)
	case FormatPercent:
		return strconv.FormatFloat(n, 'f', 0, 64) + "%"
	default:
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
}

func signed(n float64, decimals int) string {
	s := strconv.FormatFloat(n, 'f', decimals, 64)
	if s[0] != '-' {
		return "+" + s
	}
	return s
}
