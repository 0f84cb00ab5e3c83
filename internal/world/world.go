// Package world owns the live set of plates, grows it by splitting and
// samples elevations from the plate borders.
package world

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"go.uber.org/zap"

	"tecto-relief/internal/core"
	"tecto-relief/internal/geom"
	"tecto-relief/internal/plate"
	"tecto-relief/internal/relief"
)

// ErrPointNotInAnyPlate means the plates no longer tile the world. It is a
// programming error, not a recoverable condition.
var ErrPointNotInAnyPlate = errors.New("world: point outside all plates")

type entry struct {
	id    uint64
	plate *plate.Plate
}

// World stores the plates and the state of their growth.
type World struct {
	mu sync.RWMutex

	cfg     Config
	entries []entry
	nextID  uint64
	age     float64

	rng     *core.RNG
	log     *zap.Logger
	curves  relief.Curves
	detail  *relief.Detail
	initial []*plate.Plate
}

// Option customises a World.
type Option func(*World)

// WithRand injects the random source used for split points and age decay.
func WithRand(r *rand.Rand) Option {
	return func(w *World) { w.rng = core.FromRand(r) }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(w *World) { w.log = l }
}

// WithCurves replaces the relief curves.
func WithCurves(c relief.Curves) Option {
	return func(w *World) { w.curves = c }
}

// WithPlates starts the world from the given plates instead of one plate
// covering the rectangle. The plates must tile the rectangle.
func WithPlates(plates []*plate.Plate) Option {
	return func(w *World) { w.initial = append([]*plate.Plate(nil), plates...) }
}

// New returns a world configured from cfg.
func New(cfg Config, opts ...Option) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	w := &World{
		cfg:    cfg,
		log:    zap.NewNop(),
		curves: relief.DefaultCurves(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.rng == nil {
		w.rng = core.NewRNG(cfg.Seed)
	}
	w.detail = relief.NewDetail(cfg.Seed, cfg.Params.DetailAmplitude, cfg.Params.DetailFrequency, cfg.Params.DetailOctaves)
	if err := w.reset(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *World) reset() error {
	w.entries = w.entries[:0]
	w.age = w.cfg.Params.InitialAge
	if len(w.initial) > 0 {
		for _, p := range w.initial {
			w.push(p)
		}
		return nil
	}
	fw, fh := float64(w.cfg.Width), float64(w.cfg.Height)
	p, err := plate.New(
		geom.V(fw/2, fh/2),
		[]geom.Vec{geom.V(0, 0), geom.V(0, fh), geom.V(fw, fh), geom.V(fw, 0)},
		w.cfg.InitialType,
		geom.Vec{},
	)
	if err != nil {
		return fmt.Errorf("world: initial plate: %w", err)
	}
	w.push(p)
	return nil
}

func (w *World) push(p *plate.Plate) {
	w.nextID++
	w.entries = append(w.entries, entry{id: w.nextID, plate: p})
}

// Config returns the configuration the world was built with.
func (w *World) Config() Config { return w.cfg }

// Len returns the number of plates.
func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.entries)
}

// Age returns the current fracture age.
func (w *World) Age() float64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.age
}

// Area returns the summed area of all plates.
func (w *World) Area() float64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	sum := 0.0
	for _, e := range w.entries {
		sum += e.plate.Area()
	}
	return sum
}

// Plates returns read-only snapshots of every plate.
func (w *World) Plates() []plate.Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]plate.Snapshot, len(w.entries))
	for i, e := range w.entries {
		out[i] = e.plate.Snapshot(e.id)
	}
	return out
}

// Locate returns the first plate covering p, boundary included.
func (w *World) Locate(p geom.Vec) (*plate.Plate, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	e, err := w.locate(p)
	if err != nil {
		return nil, err
	}
	return e.plate, nil
}

func (w *World) locate(p geom.Vec) (entry, error) {
	for _, e := range w.entries {
		if e.plate.Covers(p) {
			return e, nil
		}
	}
	return entry{}, fmt.Errorf("%w: %v", ErrPointNotInAnyPlate, p)
}

func (w *World) inBounds(p geom.Vec) bool {
	return p[0] >= 0 && p[1] >= 0 && p[0] <= float64(w.cfg.Width) && p[1] <= float64(w.cfg.Height)
}

// SplitAt splits the plate owning p along the bisector of its
// representative point and p. p must lie strictly inside a plate. On error
// the world is unchanged.
func (w *World) SplitAt(p geom.Vec) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.splitAt(p)
}

// SplitRandom splits at a point drawn uniformly from the world rectangle.
func (w *World) SplitRandom() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	p := geom.V(w.rng.PointIn(float64(w.cfg.Width), float64(w.cfg.Height)))
	return w.splitAt(p)
}

func (w *World) splitAt(p geom.Vec) error {
	if !w.inBounds(p) {
		return fmt.Errorf("%w: %v outside world", plate.ErrInvalidSplitPoint, p)
	}
	idx := -1
	for i, e := range w.entries {
		if e.plate.Covers(p) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %v", ErrPointNotInAnyPlate, p)
	}
	target := w.entries[idx]
	if !target.plate.Contains(p) {
		return fmt.Errorf("%w: %v on plate border", plate.ErrInvalidSplitPoint, p)
	}

	a, b, err := target.plate.Split(p, w.age)
	if err != nil {
		return err
	}

	w.entries = append(w.entries[:idx], w.entries[idx+1:]...)
	w.push(a)
	w.push(b)

	before := w.age
	w.age -= w.rng.Uniform(0, w.age*w.cfg.Params.AgeDecay)
	if w.age < w.cfg.Params.AgeFloor {
		w.age = w.cfg.Params.AgeFloor
	}
	w.log.Debug("plate split",
		zap.Uint64("plate", target.id),
		zap.Float64("x", p[0]),
		zap.Float64("y", p[1]),
		zap.Float64("age", before),
		zap.Int("plates", len(w.entries)),
	)
	return nil
}

// Grow performs n random splits, skipping attempts that hit a border or
// produce a degenerate cut. It gives up after MaxAttempts consecutive
// failures and returns the number of splits made.
func (w *World) Grow(n int) (int, error) {
	done, failures := 0, 0
	for done < n {
		err := w.SplitRandom()
		switch {
		case err == nil:
			done++
			failures = 0
			continue
		case errors.Is(err, plate.ErrInvalidSplitPoint), errors.Is(err, plate.ErrDegenerateCut):
			failures++
			w.log.Warn("split skipped", zap.Error(err), zap.Int("consecutive", failures))
			if failures >= w.cfg.Params.MaxAttempts {
				return done, fmt.Errorf("world: %d consecutive failed splits: %w", failures, err)
			}
		default:
			return done, err
		}
	}
	w.log.Info("plates grown", zap.Int("splits", done), zap.Int("plates", w.Len()), zap.Float64("age", w.Age()))
	return done, nil
}
