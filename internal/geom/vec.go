// Package geom holds the 2-D vector and polygon math used by the plate engine.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the distance below which two coordinates are treated as equal.
var Epsilon = 1e-9

// Vec is a 2-D point or direction.
type Vec = mgl64.Vec2

// V is shorthand for constructing a Vec.
func V(x, y float64) Vec { return Vec{x, y} }

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged.
func Normalize(v Vec) Vec {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}

// Perp rotates v by 90 degrees counter-clockwise.
func Perp(v Vec) Vec { return Vec{-v[1], v[0]} }

// Cross returns the z component of the 3-D cross product of a and b.
func Cross(a, b Vec) float64 { return a[0]*b[1] - a[1]*b[0] }

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Vec) Vec { return a.Add(b.Sub(a).Mul(0.5)) }

// Near reports whether a and b are within Epsilon of each other.
func Near(a, b Vec) bool { return a.Sub(b).Len() <= Epsilon }

// Angle returns the unsigned angle between a and b in [0, π]. Zero-length
// inputs yield 0.
func Angle(a, b Vec) float64 {
	la, lb := a.Len(), b.Len()
	if la == 0 || lb == 0 {
		return 0
	}
	c := a.Dot(b) / (la * lb)
	return math.Acos(math.Max(-1, math.Min(1, c)))
}

// Wrap maps p toroidally into [0,w)×[0,h).
func Wrap(p Vec, w, h float64) Vec {
	return Vec{wrap1(p[0], w), wrap1(p[1], h)}
}

func wrap1(v, size float64) float64 {
	if size <= 0 {
		return v
	}
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	return v
}

// DistanceToLine returns the perpendicular distance from p to the infinite
// line through a and b. A degenerate line falls back to |p-a|.
func DistanceToLine(p, a, b Vec) float64 {
	d := b.Sub(a)
	l := d.Len()
	if l == 0 {
		return p.Sub(a).Len()
	}
	return math.Abs(Cross(d, p.Sub(a))) / l
}
