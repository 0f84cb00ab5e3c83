package relief

import "math"

// Curve maps an interaction strength T in [0,1) and a signed distance x from
// the border to an elevation contribution.
type Curve func(T, x float64) float64

// Curves holds one relief curve per interaction kind plus a base elevation
// per home crust type.
type Curves struct {
	ContinentalBase float64
	OceanicBase     float64

	byKind [kindCount]Curve
}

// DefaultCurves returns the built-in relief curves.
func DefaultCurves() Curves {
	var c Curves
	c.OceanicBase = -0.5
	c.byKind[Interior] = flat
	c.byKind[ContinentalRift] = continentalRift
	c.byKind[ContinentalCollision] = continentalCollision
	c.byKind[OceanicRidge] = oceanicRidge
	c.byKind[OceanicTrench] = oceanicTrench
	c.byKind[Subduction] = subduction
	c.byKind[PassiveMargin] = passiveMargin
	return c
}

// With returns a copy of c using curve for kind.
func (c Curves) With(kind Kind, curve Curve) Curves {
	if kind < kindCount {
		c.byKind[kind] = curve
	}
	return c
}

// Curve returns the curve registered for kind, or nil.
func (c Curves) Curve(kind Kind) Curve {
	if kind < kindCount {
		return c.byKind[kind]
	}
	return nil
}

// Height evaluates the interaction at distance x (x >= 0, measured on the
// home side of the border).
func (c Curves) Height(in Interaction, x float64) float64 {
	base := c.ContinentalBase
	if in.Oceanic {
		base = c.OceanicBase
	}
	curve := c.Curve(in.Kind)
	if curve == nil {
		return base
	}
	if in.Kind == Subduction && in.Oceanic {
		x = -x
	}
	return base + curve(in.Strength, x)
}

func flat(_, _ float64) float64 { return 0 }

// continentalCollision mixes a sharp peak for weak collisions with a broad
// plateau for strong ones.
func continentalCollision(T, x float64) float64 {
	const (
		b = 3.5
		k = 0.7
		o = 1.4
	)
	g := (1 - T) * math.Exp(-math.Abs(x)*b)
	f := T * math.Exp(-x*x)
	h := (k*g - (1-k)*f) / k
	t := math.Exp(4*T-o) * 2
	return t * (f + h)
}

func continentalRift(T, x float64) float64 {
	ax := math.Abs(x)
	valley := -1.5 * T * math.Exp(-2*x*x)
	shoulder := 0.4 * T * math.Exp(-4*(ax-1)*(ax-1))
	return valley + shoulder
}

func oceanicRidge(T, x float64) float64 {
	return 1.2 * T * math.Exp(-x*x)
}

func oceanicTrench(T, x float64) float64 {
	ax := math.Abs(x)
	trench := -1.5 * T * math.Exp(-6*(ax-0.2)*(ax-0.2))
	arc := 0.5 * T * math.Exp(-2*(ax-1.2)*(ax-1.2))
	return trench + arc
}

// subduction is asymmetric: x > 0 is the overriding continental side, x < 0
// the descending oceanic side.
func subduction(T, x float64) float64 {
	if x >= 0 {
		return 2.5 * T * math.Exp(-(x-1)*(x-1))
	}
	return -2 * T * math.Exp(-8*(x+0.2)*(x+0.2))
}

func passiveMargin(T, x float64) float64 {
	return -0.2 * T * math.Exp(-x*x)
}
