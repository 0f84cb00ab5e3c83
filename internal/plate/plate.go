// Package plate defines tectonic plates and the bisector split that breaks
// one plate into two.
package plate

import (
	"errors"
	"fmt"
	"strings"

	"tecto-relief/internal/geom"
)

// Type enumerates plate crust types.
type Type uint8

const (
	Continental Type = iota
	Oceanic
)

// String returns the lowercase type name.
func (t Type) String() string {
	switch t {
	case Continental:
		return "continental"
	case Oceanic:
		return "oceanic"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// ParseType accepts the type names as well as the short tags "K" and "O".
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "continental", "k":
		return Continental, nil
	case "oceanic", "o":
		return Oceanic, nil
	}
	return 0, fmt.Errorf("plate: unknown type %q", s)
}

// MarshalYAML encodes the type by name.
func (t Type) MarshalYAML() (any, error) { return t.String(), nil }

// UnmarshalYAML decodes a type name or tag.
func (t *Type) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ErrInvalidPlate is returned by New for malformed input.
var ErrInvalidPlate = errors.New("plate: invalid plate")

// Plate is an immutable polygonal region with an anchor point, a drift
// vector and a crust type.
type Plate struct {
	vertices geom.Polygon
	point    geom.Vec
	drift    geom.Vec
	typ      Type
}

// New builds a plate. The representative point must lie inside or on the
// vertex loop.
func New(point geom.Vec, vertices []geom.Vec, typ Type, drift geom.Vec) (*Plate, error) {
	poly := geom.Polygon(vertices).Clone()
	if len(poly) < 3 {
		return nil, fmt.Errorf("%w: %d vertices", ErrInvalidPlate, len(poly))
	}
	if poly.Area() <= geom.Epsilon {
		return nil, fmt.Errorf("%w: zero area", ErrInvalidPlate)
	}
	if !poly.Covers(point) {
		return nil, fmt.Errorf("%w: point %v outside vertices", ErrInvalidPlate, point)
	}
	if typ != Continental && typ != Oceanic {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPlate, typ)
	}
	return &Plate{vertices: poly, point: point, drift: drift, typ: typ}, nil
}

// Vertices returns a copy of the boundary loop.
func (p *Plate) Vertices() geom.Polygon { return p.vertices.Clone() }

// Point returns the representative point.
func (p *Plate) Point() geom.Vec { return p.point }

// Drift returns the drift vector.
func (p *Plate) Drift() geom.Vec { return p.drift }

// Type returns the crust type.
func (p *Plate) Type() Type { return p.typ }

// Area returns the enclosed area.
func (p *Plate) Area() float64 { return p.vertices.Area() }

// Covers reports whether pt lies inside or on the plate boundary.
func (p *Plate) Covers(pt geom.Vec) bool { return p.vertices.Covers(pt) }

// Contains reports whether pt lies strictly inside the plate.
func (p *Plate) Contains(pt geom.Vec) bool { return p.vertices.Contains(pt) }

// Crossing finds where a ray from pt leaves the plate.
func (p *Plate) Crossing(pt, dir geom.Vec, nudge float64) (geom.Crossing, error) {
	return geom.BorderCrossing(pt, dir, p.vertices, nudge)
}

func (p *Plate) String() string {
	return fmt.Sprintf("%s%v", p.typ, []geom.Vec(p.vertices))
}

// Snapshot is a read-only copy of a plate for export and rendering.
type Snapshot struct {
	ID       uint64     `yaml:"id"`
	Type     Type       `yaml:"type"`
	Point    geom.Vec   `yaml:"point,flow"`
	Drift    geom.Vec   `yaml:"drift,flow"`
	Area     float64    `yaml:"area"`
	Vertices []geom.Vec `yaml:"vertices"`
}

// Snapshot copies the plate state under the given id.
func (p *Plate) Snapshot(id uint64) Snapshot {
	return Snapshot{
		ID:       id,
		Type:     p.typ,
		Point:    p.point,
		Drift:    p.drift,
		Area:     p.Area(),
		Vertices: p.Vertices(),
	}
}
