package plate

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"tecto-relief/internal/geom"
)

func squarePlate(t *testing.T, point geom.Vec, typ Type) *Plate {
	t.Helper()
	p, err := New(point, []geom.Vec{geom.V(0, 0), geom.V(0, 10), geom.V(10, 10), geom.V(10, 0)}, typ, geom.Vec{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

// sameLoop reports whether a and b describe the same cycle, allowing any
// starting vertex and either direction.
func sameLoop(a, b []geom.Vec) bool {
	if len(a) != len(b) {
		return false
	}
	n := len(a)
	for shift := 0; shift < n; shift++ {
		fwd, bwd := true, true
		for i := 0; i < n; i++ {
			if !geom.Near(a[i], b[(i+shift)%n]) {
				fwd = false
			}
			if !geom.Near(a[i], b[(shift-i+n)%n]) {
				bwd = false
			}
		}
		if fwd || bwd {
			return true
		}
	}
	return false
}

func hasVertex(loop []geom.Vec, v geom.Vec) bool {
	for _, p := range loop {
		if geom.Near(p, v) {
			return true
		}
	}
	return false
}

// checkCutBoundary verifies that the halves share exactly the cut edge and
// otherwise split the parent's boundary: every parent vertex off the cut line
// lands in exactly one half, vertices on the line land in both, and every
// other vertex a half has is one of the two crossings.
func checkCutBoundary(t *testing.T, parent, a, b *Plate, cut geom.Vec) {
	t.Helper()
	mid := geom.Midpoint(parent.Point(), cut)
	dir := geom.Perp(parent.Point().Sub(cut))
	onLine := func(v geom.Vec) bool {
		return sideOf(geom.Cross(dir, v.Sub(mid))/dir.Len()) == 0
	}

	pv, av, bv := parent.Vertices(), a.Vertices(), b.Vertices()
	for _, v := range pv {
		inA, inB := hasVertex(av, v), hasVertex(bv, v)
		if onLine(v) {
			if !inA || !inB {
				t.Fatalf("parent vertex %v on the cut line missing from a half", v)
			}
			continue
		}
		if inA == inB {
			t.Fatalf("parent vertex %v in a=%v b=%v, want exactly one", v, inA, inB)
		}
	}

	var shared []geom.Vec
	for _, v := range av {
		if hasVertex(bv, v) {
			shared = append(shared, v)
		}
	}
	if len(shared) != 2 {
		t.Fatalf("halves share %d vertices %v, want the 2 crossings", len(shared), shared)
	}
	for _, v := range shared {
		if !onLine(v) || !pv.Touches(v) {
			t.Fatalf("shared vertex %v is not a crossing of the cut line", v)
		}
	}
	for _, half := range [][]geom.Vec{av, bv} {
		for _, v := range half {
			if !hasVertex(pv, v) && !hasVertex(shared, v) {
				t.Fatalf("half vertex %v is neither a parent vertex nor a crossing", v)
			}
		}
	}
}

func TestSplitSquareScenario(t *testing.T) {
	parent := squarePlate(t, geom.V(0, 10), Continental)

	a, b, err := parent.Split(geom.V(0, 0), 1)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	lower := []geom.Vec{geom.V(0, 0), geom.V(10, 0), geom.V(10, 5), geom.V(0, 5)}
	upper := []geom.Vec{geom.V(10, 10), geom.V(0, 10), geom.V(0, 5), geom.V(10, 5)}
	got := [][]geom.Vec{a.Vertices(), b.Vertices()}
	if !((sameLoop(got[0], lower) && sameLoop(got[1], upper)) || (sameLoop(got[0], upper) && sameLoop(got[1], lower))) {
		t.Fatalf("unexpected halves %v and %v", got[0], got[1])
	}
	if math.Signbit(a.Vertices().SignedArea()) != math.Signbit(b.Vertices().SignedArea()) {
		t.Fatal("halves must share a winding")
	}
	checkCutBoundary(t, parent, a, b, geom.V(0, 0))

	for _, child := range []*Plate{a, b} {
		if child.Type() != Continental {
			t.Fatalf("child type = %v, want continental", child.Type())
		}
		if l := child.Drift().Len(); math.Abs(l-1) > 1e-12 {
			t.Fatalf("child drift length = %f, want 1", l)
		}
	}
	if sum := a.Drift().Add(b.Drift()); !geom.Near(sum, geom.Vec{}) {
		t.Fatalf("drift sum = %v, want zero", sum)
	}
	if geom.Near(a.Point(), b.Point()) {
		t.Fatal("representative points must differ")
	}
}

func TestSplitAssignsPointsToTheirHalves(t *testing.T) {
	parent := squarePlate(t, geom.V(5, 6), Oceanic)
	a, b, err := parent.Split(geom.V(5, 4), 0.5)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	for _, child := range []*Plate{a, b} {
		if !child.Covers(child.Point()) {
			t.Fatalf("child point %v outside its loop %v", child.Point(), child.Vertices())
		}
		if child.Type() != Oceanic {
			t.Fatalf("child type = %v, want oceanic", child.Type())
		}
	}
	for _, v := range []geom.Vec{geom.V(0, 5), geom.V(10, 5)} {
		if !hasVertex(a.Vertices(), v) || !hasVertex(b.Vertices(), v) {
			t.Fatalf("shared cut vertex %v missing", v)
		}
	}
	top, bottom := a, b
	if top.Point()[1] < bottom.Point()[1] {
		top, bottom = b, a
	}
	if !geom.Near(top.Drift(), geom.V(0, 0.5)) || !geom.Near(bottom.Drift(), geom.V(0, -0.5)) {
		t.Fatalf("drifts = %v / %v, want (0,0.5) / (0,-0.5)", top.Drift(), bottom.Drift())
	}
}

func TestSplitPropertiesRandomized(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	plates := []*Plate{squarePlate(t, geom.V(5, 5), Continental)}
	const total = 100.0

	for step := 0; step < 200; step++ {
		idx := rng.IntN(len(plates))
		parent := plates[idx]
		lo, hi := parent.Vertices().Bounds()
		cut := geom.V(lo[0]+rng.Float64()*(hi[0]-lo[0]), lo[1]+rng.Float64()*(hi[1]-lo[1]))
		if !parent.Contains(cut) {
			continue
		}
		scale := 0.1 + rng.Float64()
		a, b, err := parent.Split(cut, scale)
		if errors.Is(err, ErrDegenerateCut) {
			continue
		}
		if err != nil {
			t.Fatalf("step %d: Split: %v", step, err)
		}

		if diff := math.Abs(a.Area() + b.Area() - parent.Area()); diff > 1e-7 {
			t.Fatalf("step %d: area not conserved (diff %g)", step, diff)
		}
		da := a.Drift().Sub(parent.Drift())
		db := b.Drift().Sub(parent.Drift())
		if !geom.Near(da.Add(db), geom.Vec{}) {
			t.Fatalf("step %d: drift deltas %v and %v are not opposite", step, da, db)
		}
		if math.Abs(da.Len()-scale) > 1e-9 || math.Abs(db.Len()-scale) > 1e-9 {
			t.Fatalf("step %d: drift delta lengths %f/%f, want %f", step, da.Len(), db.Len(), scale)
		}
		if geom.Near(a.Point(), b.Point()) {
			t.Fatalf("step %d: representative points coincide", step)
		}
		if !a.Covers(a.Point()) || !b.Covers(b.Point()) {
			t.Fatalf("step %d: representative point escaped its half", step)
		}
		if math.Signbit(a.Vertices().SignedArea()) != math.Signbit(parent.Vertices().SignedArea()) {
			t.Fatalf("step %d: winding flipped", step)
		}
		// No interior overlap: a point just inside one half near the
		// representative point must not be strictly inside the other.
		if b.Contains(a.Point()) || a.Contains(b.Point()) {
			t.Fatalf("step %d: halves overlap", step)
		}
		checkCutBoundary(t, parent, a, b, cut)

		plates[idx] = a
		plates = append(plates, b)
	}

	sum := 0.0
	for _, p := range plates {
		sum += p.Area()
	}
	if math.Abs(sum-total) > 1e-6 {
		t.Fatalf("plates cover %f, want %f", sum, total)
	}
	if len(plates) < 50 {
		t.Fatalf("only %d plates after randomized splitting", len(plates))
	}
}

func TestSplitAcceptsBoundaryCut(t *testing.T) {
	parent := squarePlate(t, geom.V(5, 5), Continental)
	a, b, err := parent.Split(geom.V(5, 0), 1)
	if err != nil {
		t.Fatalf("Split on the boundary: %v", err)
	}
	small, large := a, b
	if small.Area() > large.Area() {
		small, large = b, a
	}
	if math.Abs(small.Area()-25) > 1e-9 || math.Abs(large.Area()-75) > 1e-9 {
		t.Fatalf("areas = %f/%f, want 25/75", small.Area(), large.Area())
	}
	if !geom.Near(small.Point(), geom.V(5, 0)) || !geom.Near(large.Point(), geom.V(5, 5)) {
		t.Fatalf("points = %v/%v", small.Point(), large.Point())
	}
	checkCutBoundary(t, parent, a, b, geom.V(5, 0))
}

func TestSplitRejectsOutsidePoint(t *testing.T) {
	parent := squarePlate(t, geom.V(5, 5), Continental)
	for _, cut := range []geom.Vec{geom.V(11, 5), geom.V(-1, -1), geom.V(5, 5)} {
		if _, _, err := parent.Split(cut, 1); !errors.Is(err, ErrInvalidSplitPoint) {
			t.Fatalf("Split(%v) error = %v, want ErrInvalidSplitPoint", cut, err)
		}
	}
}

func TestSplitDegenerateCut(t *testing.T) {
	// The bisector y=7 runs through both arms of the U and crosses the
	// boundary four times.
	u := []geom.Vec{geom.V(0, 0), geom.V(0, 10), geom.V(3, 10), geom.V(3, 3), geom.V(7, 3), geom.V(7, 10), geom.V(10, 10), geom.V(10, 0)}
	parent, err := New(geom.V(1.5, 8), u, Continental, geom.Vec{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, _, err := parent.Split(geom.V(1.5, 6), 1); !errors.Is(err, ErrDegenerateCut) {
		t.Fatalf("error = %v, want ErrDegenerateCut", err)
	}
}

func TestSplitThroughVertices(t *testing.T) {
	// Bisector of (2,8) and (8,2) is the diagonal through (0,0) and (10,10).
	parent := squarePlate(t, geom.V(2, 8), Continental)
	a, b, err := parent.Split(geom.V(8, 2), 1)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(a.Vertices()) != 3 || len(b.Vertices()) != 3 {
		t.Fatalf("expected two triangles, got %v and %v", a.Vertices(), b.Vertices())
	}
	checkCutBoundary(t, parent, a, b, geom.V(8, 2))
	if math.Abs(a.Area()-50) > 1e-9 || math.Abs(b.Area()-50) > 1e-9 {
		t.Fatalf("areas = %f/%f, want 50/50", a.Area(), b.Area())
	}
}

func TestNewValidation(t *testing.T) {
	sq := []geom.Vec{geom.V(0, 0), geom.V(0, 10), geom.V(10, 10), geom.V(10, 0)}
	cases := []struct {
		name  string
		point geom.Vec
		verts []geom.Vec
		typ   Type
	}{
		{"point outside", geom.V(20, 20), sq, Continental},
		{"too few vertices", geom.V(0, 0), sq[:2], Continental},
		{"zero area", geom.V(0, 0), []geom.Vec{geom.V(0, 0), geom.V(1, 1), geom.V(2, 2)}, Continental},
		{"unknown type", geom.V(5, 5), sq, Type(9)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.point, tc.verts, tc.typ, geom.Vec{}); !errors.Is(err, ErrInvalidPlate) {
				t.Fatalf("error = %v, want ErrInvalidPlate", err)
			}
		})
	}

	p, err := New(geom.V(0, 0), sq, Oceanic, geom.V(1, 2))
	if err != nil {
		t.Fatalf("boundary point should be accepted: %v", err)
	}
	verts := p.Vertices()
	verts[0] = geom.V(99, 99)
	if geom.Near(p.Vertices()[0], geom.V(99, 99)) {
		t.Fatal("Vertices must return a copy")
	}
	snap := p.Snapshot(4)
	if snap.ID != 4 || snap.Type != Oceanic || snap.Area != 100 || snap.Drift != geom.V(1, 2) {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestParseType(t *testing.T) {
	cases := map[string]Type{
		"continental": Continental,
		"K":           Continental,
		"oceanic":     Oceanic,
		" o ":         Oceanic,
	}
	for in, want := range cases {
		got, err := ParseType(in)
		if err != nil || got != want {
			t.Fatalf("ParseType(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseType("mantle"); err == nil {
		t.Fatal("expected error for unknown type")
	}
}
