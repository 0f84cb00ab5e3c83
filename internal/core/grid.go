package core

import "math"

// HeightGrid stores a 2D grid of float64 elevations in row-major order.
type HeightGrid struct {
	W, H int
	data []float64
}

// NewHeightGrid allocates a grid with the given dimensions.
func NewHeightGrid(w, h int) *HeightGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &HeightGrid{W: w, H: h, data: make([]float64, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *HeightGrid) Cells() []float64 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *HeightGrid) Index(x, y int) int { return y*g.W + x }

// At returns the value at (x, y).
func (g *HeightGrid) At(x, y int) float64 { return g.data[g.Index(x, y)] }

// Set stores v at (x, y).
func (g *HeightGrid) Set(x, y int, v float64) { g.data[g.Index(x, y)] = v }

// Row returns the backing slice for row y.
func (g *HeightGrid) Row(y int) []float64 { return g.data[y*g.W : (y+1)*g.W] }

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *HeightGrid) Wrap(x, y int) (int, int) {
	x = (x%g.W + g.W) % g.W
	y = (y%g.H + g.H) % g.H
	return x, y
}

// MinMax returns the smallest and largest values.
func (g *HeightGrid) MinMax() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range g.data {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// Stamp sets every cell whose centre lies within radius of (cx, cy) to v.
// The disc wraps across the grid edges.
func (g *HeightGrid) Stamp(cx, cy int, radius float64, v float64) {
	r := int(math.Ceil(radius))
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if float64(dx*dx+dy*dy) >= radius*radius {
				continue
			}
			x, y := g.Wrap(cx+dx, cy+dy)
			g.Set(x, y, v)
		}
	}
}

// FillPolygon sets every cell inside the polygon to v. inside reports
// membership for a cell coordinate; bounds limit the scan.
func (g *HeightGrid) FillPolygon(minX, minY, maxX, maxY float64, inside func(x, y float64) bool, v float64) {
	x0, y0 := max(int(math.Floor(minX)), 0), max(int(math.Floor(minY)), 0)
	x1, y1 := min(int(math.Ceil(maxX)), g.W-1), min(int(math.Ceil(maxY)), g.H-1)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if inside(float64(x), float64(y)) {
				g.Set(x, y, v)
			}
		}
	}
}

// Mean returns the average cell value.
func (g *HeightGrid) Mean() float64 {
	sum := 0.0
	for _, v := range g.data {
		sum += v
	}
	return sum / float64(len(g.data))
}

// FractionAbove returns the share of cells strictly above level.
func (g *HeightGrid) FractionAbove(level float64) float64 {
	n := 0
	for _, v := range g.data {
		if v > level {
			n++
		}
	}
	return float64(n) / float64(len(g.data))
}
