package world

import (
	"go.uber.org/zap"

	"tecto-relief/internal/core"
	"tecto-relief/internal/geom"
	"tecto-relief/internal/logger"
	"tecto-relief/internal/plate"
)

// Display buffer values. Continental plates use 1..127, oceanic plates
// 128..254, representative points MarkerCell.
const (
	continentalCells = 1
	oceanicCells     = 128
	cellsPerType     = 127
	MarkerCell       = 255
)

// Name returns the simulation identifier.
func (w *World) Name() string { return SimName }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.cfg.Width, H: w.cfg.Height} }

// Reset returns to a single plate and reseeds the random source. A zero
// seed reuses the configured one.
func (w *World) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.rng = core.NewRNG(effective)
	if err := w.reset(); err != nil {
		w.log.Error("reset failed", zap.Error(err))
	}
}

// Step performs one random split.
func (w *World) Step() {
	if err := w.SplitRandom(); err != nil {
		w.log.Debug("step split skipped", zap.Error(err))
	}
}

// Cells rasterizes plate membership into a fresh display buffer.
func (w *World) Cells() []uint8 {
	w.mu.RLock()
	defer w.mu.RUnlock()

	grid := core.NewHeightGrid(w.cfg.Width, w.cfg.Height)
	for i, e := range w.entries {
		lo, hi := e.plate.Vertices().Bounds()
		grid.FillPolygon(lo[0], lo[1], hi[0], hi[1], func(x, y float64) bool {
			return e.plate.Covers(geom.V(x, y))
		}, float64(plateCell(i, e.plate.Type())))
	}
	for _, e := range w.entries {
		pt := e.plate.Point()
		grid.Stamp(int(pt[0]), int(pt[1]), 1.5, MarkerCell)
	}
	out := make([]uint8, len(grid.Cells()))
	for i, v := range grid.Cells() {
		out[i] = uint8(v)
	}
	return out
}

func plateCell(index int, typ plate.Type) uint8 {
	base := continentalCells
	if typ == plate.Oceanic {
		base = oceanicCells
	}
	return uint8(base + index%cellsPerType)
}

// SimName is the registry key of the plate world.
const SimName = "plates"

func init() {
	core.Register(SimName, func(cfg map[string]string) core.Sim {
		log := logger.Named("world")
		w, err := New(FromMap(cfg), WithLogger(log))
		if err != nil {
			log.Warn("invalid sim settings, using defaults", zap.Error(err))
			w, _ = New(DefaultConfig(), WithLogger(log))
		}
		return w
	})
}
