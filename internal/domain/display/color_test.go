package display

import (
	"testing"

	"github.com/riskibarqy/scouting-panel/internal/domain/kpi"
)

func TestColorFor(t *testing.T) {
	t.Run("values beyond the band saturate", func(t *testing.T) {
		over, ok := ColorFor(kpi.FloatValue(3.4))
		if !ok {
			t.Fatalf("expected a color for 3.4")
		}
		edge, _ := ColorFor(kpi.FloatValue(3.0))
		if over != edge {
			t.Fatalf("expected 3.4 to match 3.0: got=%+v want=%+v", over, edge)
		}
		if over.R != 120 || over.G != 180 || over.B != 120 || over.Intensity != 1 {
			t.Fatalf("unexpected saturated favorable color: %+v", over)
		}
	})

	t.Run("negative saturates to the medium red", func(t *testing.T) {
		c, _ := ColorFor(kpi.FloatValue(-10))
		if c.Tone != ToneUnfavorable || c.R != 220 || c.G != 140 || c.B != 140 {
			t.Fatalf("unexpected unfavorable color: %+v", c)
		}
	})

	t.Run("zero is the light favorable end", func(t *testing.T) {
		c, _ := ColorFor(kpi.FloatValue(0))
		if c.Tone != ToneFavorable || c.R != 200 || c.G != 230 || c.B != 200 || c.Intensity != 0 {
			t.Fatalf("unexpected zero color: %+v", c)
		}
	})

	t.Run("midpoint interpolates linearly", func(t *testing.T) {
		c, _ := ColorFor(kpi.FloatValue(-1.5))
		if c.Intensity != 0.5 || c.R != 230 || c.G != 170 || c.B != 170 {
			t.Fatalf("unexpected midpoint color: %+v", c)
		}
		if css := c.CSS(); css != "rgba(230,170,170,0.6)" {
			t.Fatalf("unexpected css: %s", css)
		}
	})

	t.Run("missing value has no color", func(t *testing.T) {
		if _, ok := ColorFor(kpi.NoValue); ok {
			t.Fatalf("did not expect a color for a missing value")
		}
		if _, ok := ColorFor(kpi.TextValue("x")); ok {
			t.Fatalf("did not expect a color for text")
		}
	})
}
