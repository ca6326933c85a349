package display

import (
	"math"
	"testing"

	"github.com/riskibarqy/scouting-panel/internal/domain/kpi"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name   string
		value  kpi.Value
		format Format
		want   string
	}{
		{name: "integer has no sign", value: kpi.IntValue(12), format: FormatInteger, want: "12"},
		{name: "integer from float rounds", value: kpi.FloatValue(11.6), format: FormatInteger, want: "12"},
		{name: "points one decimal signed", value: kpi.FloatValue(5.34), format: FormatSignedOneDecimal, want: "+5.3"},
		{name: "negative points", value: kpi.FloatValue(-0.26), format: FormatSignedOneDecimal, want: "-0.3"},
		{name: "zero points signed", value: kpi.FloatValue(0), format: FormatSignedOneDecimal, want: "+0.0"},
		{name: "dvs two decimals signed", value: kpi.FloatValue(1.257), format: FormatSignedTwoDecimals, want: "+1.26"},
		{name: "negative z", value: kpi.FloatValue(-2.5), format: FormatSignedTwoDecimals, want: "-2.50"},
		{name: "percentage", value: kpi.FloatValue(75.0), format: FormatPercent, want: "75%"},
		{name: "percentage rounds", value: kpi.FloatValue(66.666), format: FormatPercent, want: "67%"},
		{name: "raw average", value: kpi.FloatValue(2), format: FormatTwoDecimals, want: "2.00"},
		{name: "text", value: kpi.TextValue("Ana Silva"), format: FormatText, want: "Ana Silva"},
		{name: "missing integer", value: kpi.NoValue, format: FormatInteger, want: Placeholder},
		{name: "missing percent", value: kpi.NoValue, format: FormatPercent, want: Placeholder},
		{name: "missing text", value: kpi.NoValue, format: FormatText, want: Placeholder},
		{name: "nan", value: kpi.FloatValue(math.NaN()), format: FormatSignedTwoDecimals, want: Placeholder},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatValue(tc.value, tc.format); got != tc.want {
				t.Fatalf("unexpected text: got=%q want=%q", got, tc.want)
			}
		})
	}
}

func TestAvailabilityRescaleRendersPercent(t *testing.T) {
	rows := kpi.RescaleAvailability([]kpi.PlayerRow{
		{Name: kpi.Some("Ana Silva"), Club: kpi.Some("X"), Position: kpi.Some("MD"), Availability: kpi.Some(0.75)},
	})

	got := FormatValue(rows[0].Metric(kpi.KeyAvailability), FormatPercent)
	if got != "75%" {
		t.Fatalf("unexpected availability text: %q", got)
	}
}
