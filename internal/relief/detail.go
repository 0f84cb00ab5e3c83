package relief

import (
	"github.com/aquilax/go-perlin"
)

// Detail adds small-scale Perlin roughness on top of the plate relief.
type Detail struct {
	noise     *perlin.Perlin
	amplitude float64
	frequency float64
}

// NewDetail returns a noise layer. A non-positive amplitude yields nil, which
// is a valid no-op layer.
func NewDetail(seed int64, amplitude, frequency float64, octaves int) *Detail {
	if amplitude <= 0 {
		return nil
	}
	if octaves <= 0 {
		octaves = 4
	}
	if frequency <= 0 {
		frequency = 0.05
	}
	return &Detail{
		noise:     perlin.NewPerlin(2, 2, int32(octaves), seed),
		amplitude: amplitude,
		frequency: frequency,
	}
}

// At returns the noise offset for grid coordinate (x, y).
func (d *Detail) At(x, y float64) float64 {
	if d == nil {
		return 0
	}
	return d.amplitude * d.noise.Noise2D(x*d.frequency, y*d.frequency)
}
