package geom

import "math"

// Polygon is a closed vertex loop. Edge i runs from p[i] to p[(i+1)%len(p)].
type Polygon []Vec

// Clone returns a copy of the vertex loop.
func (p Polygon) Clone() Polygon {
	return append(Polygon(nil), p...)
}

// Edge returns the endpoints of edge i.
func (p Polygon) Edge(i int) (Vec, Vec) {
	n := len(p)
	return p[i%n], p[(i+1)%n]
}

// SignedArea is positive for counter-clockwise loops.
func (p Polygon) SignedArea() float64 {
	n := len(p)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		a, b := p.Edge(i)
		sum += Cross(a, b)
	}
	return sum / 2
}

// Area returns the enclosed area.
func (p Polygon) Area() float64 { return math.Abs(p.SignedArea()) }

// Centroid returns the area centroid, falling back to the vertex mean for
// degenerate loops.
func (p Polygon) Centroid() Vec {
	n := len(p)
	if n == 0 {
		return Vec{}
	}
	a := p.SignedArea()
	if math.Abs(a) <= Epsilon {
		var sum Vec
		for _, v := range p {
			sum = sum.Add(v)
		}
		return sum.Mul(1 / float64(n))
	}
	var cx, cy float64
	for i := 0; i < n; i++ {
		v0, v1 := p.Edge(i)
		c := Cross(v0, v1)
		cx += (v0[0] + v1[0]) * c
		cy += (v0[1] + v1[1]) * c
	}
	return Vec{cx / (6 * a), cy / (6 * a)}
}

// Bounds returns the lower-left and upper-right corners of the bounding box.
func (p Polygon) Bounds() (Vec, Vec) {
	if len(p) == 0 {
		return Vec{}, Vec{}
	}
	lo, hi := p[0], p[0]
	for _, v := range p[1:] {
		lo = Vec{math.Min(lo[0], v[0]), math.Min(lo[1], v[1])}
		hi = Vec{math.Max(hi[0], v[0]), math.Max(hi[1], v[1])}
	}
	return lo, hi
}

// Touches reports whether pt lies on the boundary.
func (p Polygon) Touches(pt Vec) bool {
	for i := range p {
		a, b := p.Edge(i)
		if onSegment(pt, a, b) {
			return true
		}
	}
	return false
}

// Contains reports whether pt lies strictly inside the polygon.
func (p Polygon) Contains(pt Vec) bool {
	if len(p) < 3 || p.Touches(pt) {
		return false
	}
	return p.evenOdd(pt)
}

// Covers reports whether pt lies inside or on the boundary.
func (p Polygon) Covers(pt Vec) bool {
	if len(p) < 3 {
		return false
	}
	return p.Touches(pt) || p.evenOdd(pt)
}

func (p Polygon) evenOdd(pt Vec) bool {
	inside := false
	x, y := pt[0], pt[1]
	n := len(p)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := p[i][0], p[i][1]
		xj, yj := p[j][0], p[j][1]
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

func onSegment(pt, a, b Vec) bool {
	d := b.Sub(a)
	l := d.Len()
	if l == 0 {
		return Near(pt, a)
	}
	if math.Abs(Cross(d, pt.Sub(a)))/l > Epsilon {
		return false
	}
	t := pt.Sub(a).Dot(d) / (l * l)
	tol := Epsilon / l
	return t >= -tol && t <= 1+tol
}
