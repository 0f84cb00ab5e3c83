//go:build ebiten

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"tecto-relief/internal/core"
	"tecto-relief/internal/render"
	"tecto-relief/internal/ui"
)

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	opts    Options
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	pacer   *core.Pacer

	paused      bool
	tickOnce    bool
	showHeights bool
	heights     *core.HeightGrid
	stale       bool
	seed        int64
	lastErr     error
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, opts Options) *Game {
	opts = opts.withDefaults()
	size := sim.Size()
	return &Game{
		sim:     sim,
		opts:    opts,
		painter: render.NewGridPainter(size.W, size.H),
		overlay: ui.NewOverlay(sim, opts.Scale),
		hud:     ui.NewHUD(sim, opts.PanelWidth),
		pacer:   core.NewPacer(opts.SplitsPerSecond, 4),
		seed:    opts.Seed,
		stale:   true,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
	g.stale = true
	g.pacer.Reset()
	g.opts.Logger.Info("world reset", zap.Int64("seed", seed))
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
		g.pacer.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHeights = !g.showHeights
		if g.showHeights {
			g.paused = true
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	g.overlay.Update()

	steps := 0
	if !g.paused {
		steps = g.pacer.Due(time.Now())
	}
	if g.tickOnce {
		steps++
		g.tickOnce = false
	}
	for i := 0; i < steps; i++ {
		g.sim.Step()
		g.stale = true
	}

	if g.showHeights && g.stale {
		g.refreshHeights()
	}
	g.hud.Update(g.status())
	return nil
}

func (g *Game) refreshHeights() {
	g.stale = false
	if g.opts.Heights == nil {
		return
	}
	grid, err := g.opts.Heights(context.Background())
	if err != nil {
		g.lastErr = err
		g.opts.Logger.Warn("height render failed", zap.Error(err))
		return
	}
	g.lastErr = nil
	g.heights = grid
}

func (g *Game) status() []string {
	mode := "plates"
	if g.showHeights {
		mode = "heights"
	}
	state := "running"
	if g.paused {
		state = "paused"
	}
	lines := []string{
		fmt.Sprintf("view: %s (%s)", mode, state),
		fmt.Sprintf("seed: %d", g.seed),
	}
	if g.opts.Status != nil {
		lines = append(lines, g.opts.Status()...)
	}
	if g.lastErr != nil {
		lines = append(lines, "error: "+g.lastErr.Error())
	}
	return lines
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.showHeights && g.heights != nil {
		g.painter.BlitHeights(screen, g.heights, g.opts.Scale)
	} else {
		g.painter.BlitCells(screen, g.sim.Cells(), g.opts.Scale)
		g.overlay.Draw(screen)
	}
	g.hud.Draw(screen, g.sim.Size().W*g.opts.Scale, g.opts.Scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.opts.Scale + g.hud.Width(), s.H * g.opts.Scale
}
