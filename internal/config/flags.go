package config

import (
	"flag"
	"fmt"

	"tecto-relief/internal/plate"
)

// Flags holds command-line overrides. Only flags set explicitly on the
// bound FlagSet override file values.
type Flags struct {
	ConfigPath  string
	WriteConfig string

	width, height int
	seed          int64
	plateType     string
	splits        int
	rays          int
	workers       int
	detail        float64
	out           string
	color         string
	plateMap      string
	platesOut     string
	scale         int
	tps           int
	debug         bool
	logFile       string

	fs *flag.FlagSet
}

// Bind attaches the flags to fs.
func (f *Flags) Bind(fs *flag.FlagSet) {
	f.fs = fs
	fs.StringVar(&f.ConfigPath, "config", "", "path to YAML config file")
	fs.StringVar(&f.WriteConfig, "write-config", "", "write the effective config to this path and exit")
	fs.IntVar(&f.width, "w", 0, "world width")
	fs.IntVar(&f.height, "h", 0, "world height")
	fs.Int64Var(&f.seed, "seed", 0, "random seed")
	fs.StringVar(&f.plateType, "type", "", "initial plate type (continental|oceanic)")
	fs.IntVar(&f.splits, "splits", 0, "number of plate splits")
	fs.IntVar(&f.rays, "rays", 0, "rays per sample point")
	fs.IntVar(&f.workers, "workers", 0, "render workers (0 = all CPUs)")
	fs.Float64Var(&f.detail, "detail", 0, "noise detail amplitude")
	fs.StringVar(&f.out, "out", "", "16-bit grayscale heightmap PNG")
	fs.StringVar(&f.color, "color-out", "", "hypsometric colour PNG")
	fs.StringVar(&f.plateMap, "platemap-out", "", "plate membership PNG")
	fs.StringVar(&f.platesOut, "plates-out", "", "YAML plate dump")
	fs.IntVar(&f.scale, "scale", 0, "viewer pixel scale")
	fs.IntVar(&f.tps, "tps", 0, "viewer ticks per second")
	fs.BoolVar(&f.debug, "debug", false, "enable debug logging")
	fs.StringVar(&f.logFile, "log-file", "", "also log to this rotating file")
}

// apply copies explicitly set flags onto cfg.
func (f *Flags) apply(cfg *Config) error {
	if f.fs == nil {
		return nil
	}
	var err error
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "w":
			cfg.World.Width = f.width
		case "h":
			cfg.World.Height = f.height
		case "seed":
			cfg.World.Seed = f.seed
		case "type":
			t, perr := plate.ParseType(f.plateType)
			if perr != nil {
				err = fmt.Errorf("config: -type: %w", perr)
				return
			}
			cfg.World.InitialType = t
		case "splits":
			cfg.Growth.Splits = f.splits
		case "rays":
			cfg.Sampling.Rays = f.rays
		case "workers":
			cfg.World.Workers = f.workers
		case "detail":
			cfg.Detail.Amplitude = f.detail
		case "out":
			cfg.Output.Heightmap = f.out
		case "color-out":
			cfg.Output.Color = f.color
		case "platemap-out":
			cfg.Output.PlateMap = f.plateMap
		case "plates-out":
			cfg.Output.Plates = f.platesOut
		case "scale":
			cfg.Viewer.Scale = f.scale
		case "tps":
			cfg.Viewer.TPS = f.tps
		case "debug":
			if f.debug {
				cfg.Logging.Level = "debug"
			}
		case "log-file":
			cfg.Logging.LogFile = f.logFile
		}
	})
	return err
}
