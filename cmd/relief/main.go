// Command relief grows a plate world and writes its height field as PNG.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"tecto-relief/internal/config"
	"tecto-relief/internal/logger"
	"tecto-relief/internal/render"
	"tecto-relief/internal/world"
)

func main() {
	var fl config.Flags
	fl.Bind(flag.CommandLine)
	flag.Parse()

	cfg, err := config.Load(&fl)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if fl.WriteConfig != "" {
		if err := cfg.SaveTo(fl.WriteConfig); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println("wrote", fl.WriteConfig)
		return
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = run(ctx, cfg)
	stop()
	if err != nil {
		logger.Error("relief failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

func run(ctx context.Context, cfg *config.Config) error {
	start := time.Now()
	w, err := world.New(cfg.ToWorld(), world.WithLogger(logger.Named("world")))
	if err != nil {
		return err
	}

	if _, err := w.Grow(cfg.Growth.Splits); err != nil {
		return err
	}

	grid, err := w.Render(ctx, cfg.Sampling.Rays)
	if err != nil {
		return err
	}

	out := cfg.Output
	if out.Heightmap != "" {
		if err := render.WritePNG(out.Heightmap, render.HeightToGray16(grid)); err != nil {
			return err
		}
		logger.Info("heightmap written", zap.String("path", out.Heightmap))
	}
	if out.Color != "" {
		if err := render.WritePNG(out.Color, render.HeightRGBA(grid)); err != nil {
			return err
		}
		logger.Info("colour map written", zap.String("path", out.Color))
	}
	if out.PlateMap != "" {
		size := w.Size()
		img, err := render.PlateRGBA(w.Cells(), size.W, size.H)
		if err != nil {
			return err
		}
		if err := render.WritePNG(out.PlateMap, img); err != nil {
			return err
		}
		logger.Info("plate map written", zap.String("path", out.PlateMap))
	}
	if out.Plates != "" {
		if err := writePlates(w, out.Plates); err != nil {
			return err
		}
		logger.Info("plates written", zap.String("path", out.Plates))
	}

	lo, hi := grid.MinMax()
	logger.Info("done",
		zap.Int("plates", w.Len()),
		zap.Float64("min", lo),
		zap.Float64("max", hi),
		zap.Float64("mean", grid.Mean()),
		zap.Float64("land", grid.FractionAbove(0)),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}

func writePlates(w *world.World, path string) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return w.Export(f)
}
