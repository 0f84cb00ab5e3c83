package render

import (
	"image/color"
	"math"
)

// Plate cell ranges written by the plate display buffer.
const (
	oceanicStart = 128
	markerIndex  = 255
)

type colorStop struct {
	t   float64
	col color.RGBA
}

var (
	seaStops = []colorStop{
		{0.0, color.RGBA{R: 12, G: 24, B: 70, A: 255}},
		{0.6, color.RGBA{R: 40, G: 80, B: 150, A: 255}},
		{1.0, color.RGBA{R: 90, G: 150, B: 200, A: 255}},
	}
	landStops = []colorStop{
		{0.0, color.RGBA{R: 70, G: 130, B: 70, A: 255}},
		{0.35, color.RGBA{R: 150, G: 165, B: 90, A: 255}},
		{0.7, color.RGBA{R: 140, G: 100, B: 60, A: 255}},
		{1.0, color.RGBA{R: 240, G: 235, B: 225, A: 255}},
	}
)

// PlatePalette returns 256 colours for the plate display buffer: 0 is empty,
// 1..127 continental plates, 128..254 oceanic plates and 255 the marker for
// representative points.
func PlatePalette() []color.RGBA {
	pal := make([]color.RGBA, 256)
	pal[0] = color.RGBA{A: 255}
	for i := 1; i < oceanicStart; i++ {
		pal[i] = color.RGBA{
			R: uint8(120 + (i*37)%100),
			G: uint8(100 + (i*61)%110),
			B: uint8(40 + (i*17)%50),
			A: 255,
		}
	}
	for i := oceanicStart; i < markerIndex; i++ {
		pal[i] = color.RGBA{
			R: uint8(20 + (i*13)%50),
			G: uint8(60 + (i*29)%90),
			B: uint8(140 + (i*47)%110),
			A: 255,
		}
	}
	pal[markerIndex] = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	return pal
}

// HeightColor maps v to the hypsometric ramp. Negative heights are scaled
// against lo, non-negative ones against hi, so sea level is always the
// coast colour.
func HeightColor(v, lo, hi float64) color.RGBA {
	if v < 0 {
		t := 1.0
		if lo < 0 {
			t = 1 - clamp01(v/lo)
		}
		return ramp(seaStops, t)
	}
	t := 0.0
	if hi > 0 {
		t = clamp01(v / hi)
	}
	return ramp(landStops, t)
}

func ramp(stops []colorStop, t float64) color.RGBA {
	t = clamp01(t)
	for i := 1; i < len(stops); i++ {
		curr := stops[i]
		if t <= curr.t {
			prev := stops[i-1]
			span := curr.t - prev.t
			var local float64
			if span > 0 {
				local = (t - prev.t) / span
			}
			return lerpRGBA(prev.col, curr.col, local)
		}
	}
	return stops[len(stops)-1].col
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	t = clamp01(t)
	return color.RGBA{
		R: lerpComponent(a.R, b.R, t),
		G: lerpComponent(a.G, b.G, t),
		B: lerpComponent(a.B, b.B, t),
		A: lerpComponent(a.A, b.A, t),
	}
}

func lerpComponent(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
