package ui

import (
	"image/color"
	"math"
)

// interpolateColor maps a normalised drift speed to the arrow colour.
func interpolateColor(t float64) color.RGBA {
	t = clamp01(t)
	r := uint8(math.Round(230 - 30*t))
	g := uint8(math.Round(230 - 150*t))
	b := uint8(math.Round(90 - 60*t))
	a := uint8(math.Round(170 + 80*t))
	return color.RGBA{R: r, G: g, B: b, A: a}
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
