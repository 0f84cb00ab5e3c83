package world

import (
	"bytes"
	"context"
	"errors"
	"math"
	"slices"
	"strings"
	"sync"
	"testing"

	"gopkg.in/yaml.v3"

	"tecto-relief/internal/core"
	"tecto-relief/internal/geom"
	"tecto-relief/internal/plate"
)

func testConfig(w, h int) Config {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	cfg.Workers = 4
	return cfg
}

func mustWorld(t *testing.T, cfg Config, opts ...Option) *World {
	t.Helper()
	w, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return w
}

// halves builds two plates sharing the border x = w/2.
func halves(t *testing.T, w, h float64, leftDrift, rightDrift geom.Vec) []*plate.Plate {
	t.Helper()
	left, err := plate.New(geom.V(w/4, h/2),
		[]geom.Vec{geom.V(0, 0), geom.V(0, h), geom.V(w/2, h), geom.V(w/2, 0)},
		plate.Continental, leftDrift)
	if err != nil {
		t.Fatalf("left plate: %v", err)
	}
	right, err := plate.New(geom.V(3*w/4, h/2),
		[]geom.Vec{geom.V(w/2, 0), geom.V(w/2, h), geom.V(w, h), geom.V(w, 0)},
		plate.Continental, rightDrift)
	if err != nil {
		t.Fatalf("right plate: %v", err)
	}
	return []*plate.Plate{left, right}
}

func TestNewStartsWithOnePlate(t *testing.T) {
	w := mustWorld(t, testConfig(64, 48))
	if w.Len() != 1 {
		t.Fatalf("expected 1 plate, got %d", w.Len())
	}
	if math.Abs(w.Area()-64*48) > 1e-9 {
		t.Fatalf("area %v, want %v", w.Area(), 64*48)
	}
	if w.Age() != w.Config().Params.InitialAge {
		t.Fatalf("age %v, want initial age", w.Age())
	}
	for _, p := range []geom.Vec{geom.V(0, 0), geom.V(64, 0), geom.V(0, 48), geom.V(64, 48), geom.V(32, 24)} {
		if _, err := w.Locate(p); err != nil {
			t.Fatalf("Locate(%v): %v", p, err)
		}
	}
	if _, err := w.Locate(geom.V(-1, 5)); !errors.Is(err, ErrPointNotInAnyPlate) {
		t.Fatalf("expected ErrPointNotInAnyPlate, got %v", err)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(0, 10)
	if _, err := New(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestSplitAt(t *testing.T) {
	w := mustWorld(t, testConfig(64, 64))
	if err := w.SplitAt(geom.V(10, 20)); err != nil {
		t.Fatalf("SplitAt: %v", err)
	}
	if w.Len() != 2 {
		t.Fatalf("expected 2 plates, got %d", w.Len())
	}
	if math.Abs(w.Area()-64*64) > 1e-6 {
		t.Fatalf("area %v not conserved", w.Area())
	}
	if age := w.Age(); age > 1 || age < 0 {
		t.Fatalf("age %v outside [floor, initial]", age)
	}

	snaps := w.Plates()
	if snaps[0].ID == snaps[1].ID {
		t.Fatalf("plates share id %d", snaps[0].ID)
	}
	points := []geom.Vec{snaps[0].Point, snaps[1].Point}
	if !slices.Contains(points, geom.V(10, 20)) || !slices.Contains(points, geom.V(32, 32)) {
		t.Fatalf("unexpected representative points %v", points)
	}
}

func TestSplitAtRejectsWithoutChange(t *testing.T) {
	w := mustWorld(t, testConfig(64, 64))
	before := w.Plates()

	cases := []struct {
		name string
		p    geom.Vec
		want error
	}{
		{"outside", geom.V(-1, 5), plate.ErrInvalidSplitPoint},
		{"beyond width", geom.V(65, 5), plate.ErrInvalidSplitPoint},
		{"border", geom.V(0, 10), plate.ErrInvalidSplitPoint},
		{"corner", geom.V(64, 64), plate.ErrInvalidSplitPoint},
		{"representative point", geom.V(32, 32), plate.ErrInvalidSplitPoint},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := w.SplitAt(tc.p)
			if !errors.Is(err, tc.want) {
				t.Fatalf("SplitAt(%v): expected %v, got %v", tc.p, tc.want, err)
			}
		})
	}
	if w.Len() != 1 || w.Age() != 1 {
		t.Fatalf("world changed: %d plates, age %v", w.Len(), w.Age())
	}
	if after := w.Plates(); after[0].ID != before[0].ID {
		t.Fatalf("plate replaced: %d -> %d", before[0].ID, after[0].ID)
	}
}

func TestGrowTilesTheWorld(t *testing.T) {
	cfg := testConfig(48, 32)
	cfg.Seed = 42
	w := mustWorld(t, cfg)

	done, err := w.Grow(40)
	if err != nil {
		t.Fatalf("Grow: %v", err)
	}
	if done != 40 || w.Len() != 41 {
		t.Fatalf("expected 40 splits and 41 plates, got %d and %d", done, w.Len())
	}
	if math.Abs(w.Area()-48*32) > 1e-6 {
		t.Fatalf("area %v, want %v", w.Area(), 48*32)
	}
	for y := 0; y <= 32; y++ {
		for x := 0; x <= 48; x++ {
			if _, err := w.Locate(geom.V(float64(x), float64(y))); err != nil {
				t.Fatalf("Locate(%d,%d): %v", x, y, err)
			}
		}
	}
	seen := map[uint64]bool{}
	for _, s := range w.Plates() {
		if seen[s.ID] {
			t.Fatalf("duplicate id %d", s.ID)
		}
		seen[s.ID] = true
	}
}

func TestAgeRespectsFloor(t *testing.T) {
	cfg := testConfig(64, 64)
	cfg.Params.AgeDecay = 1
	cfg.Params.AgeFloor = 0.8
	w := mustWorld(t, cfg)
	if _, err := w.Grow(20); err != nil {
		t.Fatalf("Grow: %v", err)
	}
	if age := w.Age(); age < 0.8 || age > 1 {
		t.Fatalf("age %v outside [0.8, 1]", age)
	}
}

func TestRenderSinglePlateIsFlat(t *testing.T) {
	for _, tc := range []struct {
		typ  plate.Type
		want float64
	}{
		{plate.Continental, 0},
		{plate.Oceanic, -0.5},
	} {
		cfg := testConfig(16, 12)
		cfg.InitialType = tc.typ
		w := mustWorld(t, cfg)
		grid, err := w.Render(context.Background(), 6)
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		if grid.W != 16 || grid.H != 12 {
			t.Fatalf("grid %dx%d, want 16x12", grid.W, grid.H)
		}
		for i, v := range grid.Cells() {
			if math.Abs(v-tc.want) > 1e-12 {
				t.Fatalf("%v cell %d = %v, want %v", tc.typ, i, v, tc.want)
			}
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	build := func() *core.HeightGrid {
		cfg := testConfig(32, 24)
		cfg.Seed = 9
		w := mustWorld(t, cfg)
		if _, err := w.Grow(8); err != nil {
			t.Fatalf("Grow: %v", err)
		}
		grid, err := w.Render(context.Background(), 6)
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		return grid
	}
	a, b := build(), build()
	if !slices.Equal(a.Cells(), b.Cells()) {
		t.Fatalf("renders differ for the same seed")
	}
	for i, v := range a.Cells() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("cell %d not finite: %v", i, v)
		}
	}
}

func TestRenderErrors(t *testing.T) {
	w := mustWorld(t, testConfig(8, 8))
	if _, err := w.Render(context.Background(), 2); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if _, err := w.PointHeight(geom.V(1, 1), 2); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := w.Render(ctx, 6); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestPointHeightFollowsDrift(t *testing.T) {
	converging := mustWorld(t, testConfig(32, 32),
		WithPlates(halves(t, 32, 32, geom.V(1, 0), geom.V(-1, 0))))
	diverging := mustWorld(t, testConfig(32, 32),
		WithPlates(halves(t, 32, 32, geom.V(-1, 0), geom.V(1, 0))))

	p := geom.V(15, 16)
	up, err := converging.PointHeight(p, 6)
	if err != nil {
		t.Fatalf("PointHeight: %v", err)
	}
	down, err := diverging.PointHeight(p, 6)
	if err != nil {
		t.Fatalf("PointHeight: %v", err)
	}
	if up <= 0 {
		t.Fatalf("converging border height %v, want > 0", up)
	}
	if down >= 0 {
		t.Fatalf("diverging border height %v, want < 0", down)
	}
}

func TestRaysAndWeight(t *testing.T) {
	rays := Rays(4, 0)
	want := []geom.Vec{geom.V(0, 1), geom.V(1, 0), geom.V(0, -1), geom.V(-1, 0)}
	for i := range rays {
		if rays[i].Sub(want[i]).Len() > 1e-12 {
			t.Fatalf("ray %d = %v, want %v", i, rays[i], want[i])
		}
	}

	a, b := geom.V(0, 0), geom.V(0, 10)
	if w := rayWeight(geom.V(1, 0), a, b); math.Abs(w-math.Pi) > 1e-12 {
		t.Fatalf("head-on weight %v, want π", w)
	}
	if w := rayWeight(geom.V(-1, 0), a, b); math.Abs(w-math.Pi) > 1e-12 {
		t.Fatalf("reverse head-on weight %v, want π", w)
	}
	if w := rayWeight(geom.V(0, 1), a, b); math.Abs(w) > 1e-12 {
		t.Fatalf("grazing weight %v, want 0", w)
	}
}

func TestFromMapAndValidate(t *testing.T) {
	cfg := FromMap(map[string]string{
		"w":            "64",
		"h":            "-3",
		"seed":         "7",
		"type":         "o",
		"rays":         "2",
		"age_decay":    "0.25",
		"edge_nudge":   "0.01",
		"max_attempts": "5",
	})
	def := DefaultConfig()
	if cfg.Width != 64 || cfg.Height != def.Height || cfg.Seed != 7 {
		t.Fatalf("unexpected size/seed: %+v", cfg)
	}
	if cfg.InitialType != plate.Oceanic {
		t.Fatalf("type %v, want oceanic", cfg.InitialType)
	}
	if cfg.Params.Rays != def.Params.Rays {
		t.Fatalf("rays %d, want default %d", cfg.Params.Rays, def.Params.Rays)
	}
	if cfg.Params.AgeDecay != 0.25 || cfg.Params.EdgeNudge != 0.01 || cfg.Params.MaxAttempts != 5 {
		t.Fatalf("unexpected params: %+v", cfg.Params)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	bad := []func(*Config){
		func(c *Config) { c.Height = 0 },
		func(c *Config) { c.Params.Rays = 2 },
		func(c *Config) { c.Params.EdgeNudge = 0 },
		func(c *Config) { c.Params.AgeDecay = 1.5 },
		func(c *Config) { c.Params.InitialAge = -1 },
		func(c *Config) { c.Params.DistanceScale = 0 },
		func(c *Config) { c.Params.MaxAttempts = 0 },
	}
	for i, mutate := range bad {
		c := DefaultConfig()
		mutate(&c)
		if err := c.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("case %d: expected ErrInvalidConfig, got %v", i, err)
		}
	}
}

func TestParameters(t *testing.T) {
	w := mustWorld(t, testConfig(20, 10))
	snap := w.Parameters()
	var rays core.Parameter
	for _, g := range snap.Groups {
		for _, p := range g.Params {
			if p.Key == "rays" {
				rays = p
			}
		}
	}
	if rays.Value != "6" || rays.Type != core.ParamTypeInt {
		t.Fatalf("rays parameter = %+v", rays)
	}
	values := snap.Values()
	if values["type"] != "continental" {
		t.Fatalf("type parameter = %q", values["type"])
	}
	if _, ok := values["missing"]; ok {
		t.Fatalf("unexpected parameter")
	}

	cfg := testConfig(20, 10)
	cfg.Seed = 77
	cfg.InitialType = plate.Oceanic
	cfg.Params.AgeDecay = 0.3
	cfg.Params.DetailAmplitude = 0.25
	rebuilt := FromMap(mustWorld(t, cfg).Parameters().Values())
	if rebuilt != cfg {
		t.Fatalf("config lost through parameters:\n got %+v\nwant %+v", rebuilt, cfg)
	}
	if direct := FromMap(cfg.Parameters().Values()); direct != cfg {
		t.Fatalf("config lost without a world:\n got %+v\nwant %+v", direct, cfg)
	}
}

func TestSimRegistration(t *testing.T) {
	if !slices.Contains(core.Names(), SimName) {
		t.Fatalf("registered sims %v lack %q", core.Names(), SimName)
	}
	factory, ok := core.Lookup(SimName)
	if !ok {
		t.Fatalf("plates sim not registered")
	}
	sim := factory(map[string]string{"w": "32", "h": "24"})
	if sim.Name() != "plates" {
		t.Fatalf("name %q", sim.Name())
	}
	if sim.Size() != (core.Size{W: 32, H: 24}) {
		t.Fatalf("size %+v", sim.Size())
	}

	cells := sim.Cells()
	if len(cells) != 32*24 {
		t.Fatalf("cells len %d", len(cells))
	}
	markers := 0
	for i, v := range cells {
		switch v {
		case MarkerCell:
			markers++
		case continentalCells:
		default:
			t.Fatalf("cell %d = %d, want plate or marker", i, v)
		}
	}
	if markers == 0 {
		t.Fatalf("representative point not marked")
	}

	w := sim.(*World)
	sim.Step()
	if w.Len() != 2 {
		t.Fatalf("expected 2 plates after Step, got %d", w.Len())
	}
	sim.Reset(0)
	if w.Len() != 1 || w.Age() != w.Config().Params.InitialAge {
		t.Fatalf("Reset left %d plates, age %v", w.Len(), w.Age())
	}
}

func TestRegisteredFactoryRebuildsConfig(t *testing.T) {
	factory, _ := core.Lookup(SimName)
	cfg := testConfig(24, 16)
	cfg.Seed = 31
	cfg.Params.Rays = 9
	w, ok := factory(cfg.Parameters().Values()).(*World)
	if !ok {
		t.Fatal("factory must build a *World")
	}
	if w.Config() != cfg {
		t.Fatalf("factory config:\n got %+v\nwant %+v", w.Config(), cfg)
	}

	bad := cfg.Parameters().Values()
	bad["w"] = "-4"
	got := factory(bad).(*World).Config()
	if got.Width != DefaultConfig().Width || got.Height != 16 || got.Seed != 31 {
		t.Fatalf("invalid width should fall back alone, got %+v", got)
	}
}

func TestCellsConcurrentCallers(t *testing.T) {
	w := mustWorld(t, testConfig(32, 24))
	if _, err := w.Grow(5); err != nil {
		t.Fatalf("Grow: %v", err)
	}
	want := w.Cells()

	var wg sync.WaitGroup
	got := make([][]uint8, 8)
	for i := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i] = w.Cells()
		}()
	}
	wg.Wait()

	for i, cells := range got {
		if !slices.Equal(cells, want) {
			t.Fatalf("caller %d saw a different display", i)
		}
		if &cells[0] == &want[0] {
			t.Fatalf("caller %d shares the display buffer", i)
		}
	}
	want[0] = 99
	if w.Cells()[0] == 99 {
		t.Fatal("Cells must not hand out its internal buffer")
	}
}

func TestExportReportsPlates(t *testing.T) {
	cfg := testConfig(40, 30)
	cfg.Seed = 5
	w := mustWorld(t, cfg)
	if _, err := w.Grow(6); err != nil {
		t.Fatalf("Grow: %v", err)
	}

	var buf bytes.Buffer
	if err := w.Export(&buf); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.Contains(buf.String(), "type: continental") {
		t.Fatalf("export missing plate types:\n%s", buf.String())
	}

	var got Dump
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if got.Width != 40 || got.Height != 30 || got.Seed != 5 || got.Age != w.Age() {
		t.Fatalf("header = %dx%d seed %d age %v", got.Width, got.Height, got.Seed, got.Age)
	}
	orig := w.Plates()
	if len(got.Plates) != len(orig) {
		t.Fatalf("exported %d plates, want %d", len(got.Plates), len(orig))
	}
	area := 0.0
	for i, s := range got.Plates {
		if s.ID != orig[i].ID || s.Point != orig[i].Point || !slices.Equal(s.Vertices, orig[i].Vertices) {
			t.Fatalf("plate %d differs from snapshot", i)
		}
		area += s.Area
	}
	if math.Abs(area-40*30) > 1e-6 {
		t.Fatalf("exported area %v", area)
	}
}
