package geom

import (
	"errors"
	"math"
)

var (
	// ErrNoCrossing means a ray from inside a polygon never reached its
	// boundary. For a simple closed polygon this cannot happen.
	ErrNoCrossing = errors.New("geom: ray does not cross polygon border")
	// ErrZeroDirection is returned when a ray has no direction.
	ErrZeroDirection = errors.New("geom: zero-length ray direction")
)

// SegmentRayIntersection intersects the infinite line through origin along
// dir with the segment a-b. It reports false when the two are parallel or the
// hit falls outside the segment. The sign of the ray parameter is not
// checked.
func SegmentRayIntersection(origin, dir, a, b Vec) (Vec, bool) {
	p2 := origin.Add(dir)
	num := (origin[0]-a[0])*(origin[1]-p2[1]) - (origin[0]-p2[0])*(origin[1]-a[1])
	div := (origin[0]-p2[0])*(a[1]-b[1]) - (a[0]-b[0])*(origin[1]-p2[1])
	if div == 0 {
		return Vec{}, false
	}
	u := num / div
	if u < 0 || u > 1 {
		return Vec{}, false
	}
	return a.Add(b.Sub(a).Mul(u)), true
}

// Crossing is where a ray leaves a polygon.
type Crossing struct {
	Point Vec
	// A and B bound the crossed edge.
	A, B Vec
	Edge int
}

// BorderCrossing finds where the ray from p along dir leaves poly. A start
// point on the boundary is first moved nudge toward the centroid.
func BorderCrossing(p, dir Vec, poly Polygon, nudge float64) (Crossing, error) {
	if dir.Len() == 0 {
		return Crossing{}, ErrZeroDirection
	}
	if poly.Touches(p) {
		p = p.Add(Normalize(poly.Centroid().Sub(p)).Mul(nudge))
	}

	best := Crossing{Edge: -1}
	bestT := math.Inf(1)
	dl := dir.Dot(dir)
	for i := range poly {
		a, b := poly.Edge(i)
		q, ok := SegmentRayIntersection(p, dir, a, b)
		if !ok {
			continue
		}
		t := q.Sub(p).Dot(dir) / dl
		if t <= 0 || t >= bestT {
			continue
		}
		bestT = t
		best = Crossing{Point: q, A: a, B: b, Edge: i}
	}
	if best.Edge < 0 {
		return Crossing{}, ErrNoCrossing
	}
	return best, nil
}
