package display

import (
	"fmt"
	"math"

	"github.com/riskibarqy/scouting-panel/internal/domain/kpi"
)

// ColorBand is the symmetric range where intensity still grows.
const ColorBand = 3.0

const colorAlpha = 0.6

type Tone string

const (
	ToneFavorable   Tone = "favorable"
	ToneUnfavorable Tone = "unfavorable"
)

// Color is an advisory background for DVS and Z-score cells.
type Color struct {
	Tone      Tone    `json:"tone"`
	Intensity float64 `json:"intensity"`
	R         uint8   `json:"r"`
	G         uint8   `json:"g"`
	B         uint8   `json:"b"`
	Alpha     float64 `json:"alpha"`
}

func (c Color) CSS() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%g)", c.R, c.G, c.B, c.Alpha)
}

type gradient struct {
	light  [3]float64
	medium [3]float64
}

var (
	// light (200,230,200) to medium (120,180,120)
	favorableGradient = gradient{light: [3]float64{200, 230, 200}, medium: [3]float64{120, 180, 120}}
	// light (240,200,200) to medium (220,140,140)
	unfavorableGradient = gradient{light: [3]float64{240, 200, 200}, medium: [3]float64{220, 140, 140}}
)

// ColorFor maps a signed score to a color. It reports false for missing
// or non-numeric values.
func ColorFor(v kpi.Value) (Color, bool) {
	n, ok := v.Number()
	if !ok || math.IsNaN(n) {
		return Color{}, false
	}
	return colorForNumber(n), true
}

func colorForNumber(n float64) Color {
	clamped := math.Max(-ColorBand, math.Min(ColorBand, n))
	intensity := math.Abs(clamped) / ColorBand

	tone, g := ToneFavorable, favorableGradient
	if clamped < 0 {
		tone, g = ToneUnfavorable, unfavorableGradient
	}

	return Color{
		Tone:      tone,
		Intensity: intensity,
		R:         lerp(g.light[0], g.medium[0], intensity),
		G:         lerp(g.light[1], g.medium[1], intensity),
		B:         lerp(g.light[2], g.medium[2], intensity),
		Alpha:     colorAlpha,
	}
}

func lerp(from, to, t float64) uint8 {
	return uint8(from + (to-from)*t)
}
