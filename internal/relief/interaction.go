// Package relief classifies how neighbouring plates interact across a shared
// border and maps that interaction to an elevation contribution.
package relief

import (
	"fmt"
	"math"

	"tecto-relief/internal/geom"
	"tecto-relief/internal/plate"
)

// Body is the part of a plate the interaction model looks at.
type Body interface {
	Point() geom.Vec
	Drift() geom.Vec
	Type() plate.Type
}

// Kind names a boundary interaction.
type Kind uint8

const (
	Interior Kind = iota
	ContinentalRift
	ContinentalCollision
	OceanicRidge
	OceanicTrench
	Subduction
	PassiveMargin
	kindCount
)

var kindNames = [...]string{
	Interior:             "interior",
	ContinentalRift:      "continental-rift",
	ContinentalCollision: "continental-collision",
	OceanicRidge:         "oceanic-ridge",
	OceanicTrench:        "oceanic-trench",
	Subduction:           "subduction",
	PassiveMargin:        "passive-margin",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Interaction describes one home/neighbour pair across a border.
type Interaction struct {
	Kind      Kind
	Divergent bool
	// Closing is the rate at which the plates approach each other along the
	// border normal; negative when they separate.
	Closing float64
	// Strength is Closing mapped into [0,1).
	Strength float64
	// Oceanic is set when the home plate is oceanic. Subduction curves read
	// it to orient the distance argument.
	Oceanic bool
}

// normal returns the unit normal of the border e1-e2. It is the zero vector
// for a degenerate border.
func normal(e1, e2 geom.Vec) geom.Vec {
	return geom.Normalize(geom.Perp(e2.Sub(e1)))
}

// Projections returns both drift vectors projected onto the border normal.
func Projections(home, neighbor Body, e1, e2 geom.Vec) (geom.Vec, geom.Vec) {
	n := normal(e1, e2)
	return n.Mul(home.Drift().Dot(n)), n.Mul(neighbor.Drift().Dot(n))
}

// closing returns how fast u1 (home) and u2 (neighbour) bring the two
// representative points together.
func closing(home, neighbor Body, u1, u2 geom.Vec) float64 {
	d := geom.Normalize(neighbor.Point().Sub(home.Point()))
	return u1.Dot(d) - u2.Dot(d)
}

// IsDivergent reports whether the projected drifts move the plates apart.
func IsDivergent(home, neighbor Body, u1, u2 geom.Vec) bool {
	return closing(home, neighbor, u1, u2) < 0
}

// Classify determines the interaction between home and neighbor across the
// border e1-e2.
func Classify(home, neighbor Body, e1, e2 geom.Vec) Interaction {
	u1, u2 := Projections(home, neighbor, e1, e2)
	c := closing(home, neighbor, u1, u2)
	in := Interaction{
		Divergent: c < 0,
		Closing:   c,
		Strength:  math.Abs(c) / (math.Abs(c) + 1),
		Oceanic:   home.Type() == plate.Oceanic,
	}
	in.Kind = kindFor(home.Type(), neighbor.Type(), in.Divergent)
	return in
}

func kindFor(a, b plate.Type, divergent bool) Kind {
	switch {
	case a == plate.Continental && b == plate.Continental:
		if divergent {
			return ContinentalRift
		}
		return ContinentalCollision
	case a == plate.Oceanic && b == plate.Oceanic:
		if divergent {
			return OceanicRidge
		}
		return OceanicTrench
	default:
		if divergent {
			return PassiveMargin
		}
		return Subduction
	}
}
