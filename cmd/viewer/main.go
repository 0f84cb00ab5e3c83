//go:build ebiten

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"tecto-relief/internal/app"
	"tecto-relief/internal/config"
	"tecto-relief/internal/core"
	"tecto-relief/internal/logger"
	"tecto-relief/internal/world"
)

const panelWidth = 260

func main() {
	var fl config.Flags
	fl.Bind(flag.CommandLine)
	flag.Parse()

	cfg, err := config.Load(&fl)
	if err != nil {
		log.Fatal(err)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	factory, ok := core.Lookup(world.SimName)
	if !ok {
		log.Fatalf("unknown sim %q (registered: %v)", world.SimName, core.Names())
	}
	w, ok := factory(cfg.ToWorld().Parameters().Values()).(*world.World)
	if !ok {
		log.Fatalf("sim %q is not a plate world", world.SimName)
	}

	game := app.New(w, app.Options{
		Scale:           cfg.Viewer.Scale,
		Seed:            cfg.World.Seed,
		SplitsPerSecond: cfg.Viewer.SplitsPerSecond,
		PanelWidth:      panelWidth,
		Heights: func(ctx context.Context) (*core.HeightGrid, error) {
			return w.Render(ctx, cfg.Sampling.Rays)
		},
		Status: func() []string {
			return []string{
				fmt.Sprintf("plates: %d", w.Len()),
				fmt.Sprintf("age: %.3f", w.Age()),
			}
		},
		Logger: logger.Named("viewer"),
	})
	size := w.Size()

	ebiten.SetWindowTitle("tecto-relief — " + w.Name())
	ebiten.SetTPS(cfg.Viewer.TPS)
	ebiten.SetWindowSize(size.W*cfg.Viewer.Scale+panelWidth, size.H*cfg.Viewer.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
