package plate

import (
	"errors"
	"fmt"

	"tecto-relief/internal/geom"
)

var (
	// ErrInvalidSplitPoint is returned when the cut point lies outside the
	// plate or on its representative point.
	ErrInvalidSplitPoint = errors.New("plate: split point not inside plate")
	// ErrDegenerateCut is returned when the bisector does not cut the plate
	// into two proper polygons.
	ErrDegenerateCut = errors.New("plate: degenerate cut")
)

// crossing is a point where the cut line meets the boundary. after is the
// index of the vertex preceding it in loop order, or of the vertex itself
// when the line passes through one.
type crossing struct {
	point geom.Vec
	after int
}

// Split cuts the plate along the perpendicular bisector of its
// representative point and cut. Each half keeps whichever of the two points
// falls on its side and drifts away from the bisector by driftScale.
//
// The cut may sit on the boundary (a corner, say) as long as the bisector
// still yields two proper halves; World.SplitAt is stricter and only accepts
// interior points.
func (p *Plate) Split(cut geom.Vec, driftScale float64) (*Plate, *Plate, error) {
	if !p.vertices.Covers(cut) {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidSplitPoint, cut)
	}
	if geom.Near(cut, p.point) {
		return nil, nil, fmt.Errorf("%w: %v is the representative point", ErrInvalidSplitPoint, cut)
	}

	mid := geom.Midpoint(p.point, cut)
	dir := geom.Perp(p.point.Sub(cut))

	sides := classify(p.vertices, mid, dir)
	crossings := findCrossings(p.vertices, sides, mid, dir)
	if len(crossings) != 2 {
		return nil, nil, fmt.Errorf("%w: %d boundary crossings", ErrDegenerateCut, len(crossings))
	}

	first := walk(p.vertices, crossings[0], crossings[1])
	second := walk(p.vertices, crossings[1], crossings[0])
	if len(first) < 3 || len(second) < 3 || first.Area() <= geom.Epsilon || second.Area() <= geom.Epsilon {
		return nil, nil, fmt.Errorf("%w: empty half", ErrDegenerateCut)
	}

	pointSide := sideOf(geom.Cross(dir, p.point.Sub(mid)) / dir.Len())
	firstSide := loopSide(sides, crossings[0], crossings[1])
	if firstSide == 0 {
		return nil, nil, fmt.Errorf("%w: half without interior vertices", ErrDegenerateCut)
	}

	firstPoint, secondPoint := cut, p.point
	if firstSide == pointSide {
		firstPoint, secondPoint = p.point, cut
	}

	a, err := p.child(first, firstPoint, mid, driftScale)
	if err != nil {
		return nil, nil, err
	}
	b, err := p.child(second, secondPoint, mid, driftScale)
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

func (p *Plate) child(loop geom.Polygon, point, mid geom.Vec, driftScale float64) (*Plate, error) {
	drift := p.drift.Add(geom.Normalize(point.Sub(mid)).Mul(driftScale))
	child, err := New(point, loop, p.typ, drift)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDegenerateCut, err)
	}
	return child, nil
}

func sideOf(s float64) int {
	switch {
	case s > geom.Epsilon:
		return 1
	case s < -geom.Epsilon:
		return -1
	}
	return 0
}

func classify(poly geom.Polygon, mid, dir geom.Vec) []int {
	// Scale the tolerance so it is a distance, not an area.
	l := dir.Len()
	sides := make([]int, len(poly))
	for i, v := range poly {
		sides[i] = sideOf(geom.Cross(dir, v.Sub(mid)) / l)
	}
	return sides
}

func findCrossings(poly geom.Polygon, sides []int, mid, dir geom.Vec) []crossing {
	n := len(poly)
	var out []crossing
	for i := 0; i < n; i++ {
		if sides[i] == 0 {
			out = append(out, crossing{point: poly[i], after: i})
			continue
		}
		j := (i + 1) % n
		if sides[j] == 0 || sides[i] == sides[j] {
			continue
		}
		a, b := poly.Edge(i)
		q, ok := geom.SegmentRayIntersection(mid, dir, a, b)
		if !ok {
			continue
		}
		out = append(out, crossing{point: q, after: i})
	}
	return out
}

// walk builds the loop from crossing from, forward through the original
// vertices, to crossing to.
func walk(poly geom.Polygon, from, to crossing) geom.Polygon {
	n := len(poly)
	loop := geom.Polygon{from.point}
	for i := (from.after + 1) % n; ; i = (i + 1) % n {
		if i == (to.after+1)%n {
			break
		}
		loop = appendDistinct(loop, poly[i])
		if i == to.after {
			break
		}
	}
	loop = appendDistinct(loop, to.point)
	if len(loop) > 1 && geom.Near(loop[0], loop[len(loop)-1]) {
		loop = loop[:len(loop)-1]
	}
	return loop
}

func appendDistinct(loop geom.Polygon, v geom.Vec) geom.Polygon {
	if len(loop) > 0 && geom.Near(loop[len(loop)-1], v) {
		return loop
	}
	return append(loop, v)
}

// loopSide reports which side of the cut line the vertices strictly between
// from and to lie on.
func loopSide(sides []int, from, to crossing) int {
	n := len(sides)
	for i := (from.after + 1) % n; i != (to.after+1)%n; i = (i + 1) % n {
		if sides[i] != 0 {
			return sides[i]
		}
	}
	return 0
}
