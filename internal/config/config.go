// Package config handles the YAML settings shared by the relief CLI and the
// viewer.
package config

import (
	"fmt"

	"tecto-relief/internal/plate"
	"tecto-relief/internal/world"
)

// Config holds all application settings.
type Config struct {
	World    WorldConfig    `yaml:"world"`
	Growth   GrowthConfig   `yaml:"growth"`
	Sampling SamplingConfig `yaml:"sampling"`
	Detail   DetailConfig   `yaml:"detail"`
	Output   OutputConfig   `yaml:"output"`
	Viewer   ViewerConfig   `yaml:"viewer"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// WorldConfig holds the world rectangle and seeding.
type WorldConfig struct {
	Width       int        `yaml:"width"`
	Height      int        `yaml:"height"`
	Seed        int64      `yaml:"seed"`
	InitialType plate.Type `yaml:"initial_type"`
	Workers     int        `yaml:"workers"` // 0 uses every CPU
}

// GrowthConfig controls plate splitting.
type GrowthConfig struct {
	Splits      int     `yaml:"splits"`
	InitialAge  float64 `yaml:"initial_age"`
	AgeDecay    float64 `yaml:"age_decay"`
	AgeFloor    float64 `yaml:"age_floor"`
	MaxAttempts int     `yaml:"max_attempts"`
}

// SamplingConfig controls the ray sampler.
type SamplingConfig struct {
	Rays          int     `yaml:"rays"`
	RayOffset     float64 `yaml:"ray_offset"`
	EdgeNudge     float64 `yaml:"edge_nudge"`
	DistanceScale float64 `yaml:"distance_scale"`
}

// DetailConfig controls the noise layer. Amplitude 0 disables it.
type DetailConfig struct {
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"`
	Octaves   int     `yaml:"octaves"`
}

// OutputConfig names the files the CLI writes. Empty paths are skipped.
type OutputConfig struct {
	Heightmap string `yaml:"heightmap"`
	Color     string `yaml:"color"`
	PlateMap  string `yaml:"plate_map"`
	Plates    string `yaml:"plates"`
}

// ViewerConfig holds window settings.
type ViewerConfig struct {
	Scale           int `yaml:"scale"`
	TPS             int `yaml:"tps"`
	SplitsPerSecond int `yaml:"splits_per_second"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config mirroring world.DefaultConfig.
func Default() *Config {
	wc := world.DefaultConfig()
	p := wc.Params
	return &Config{
		World: WorldConfig{
			Width:       wc.Width,
			Height:      wc.Height,
			Seed:        wc.Seed,
			InitialType: wc.InitialType,
		},
		Growth: GrowthConfig{
			Splits:      24,
			InitialAge:  p.InitialAge,
			AgeDecay:    p.AgeDecay,
			AgeFloor:    p.AgeFloor,
			MaxAttempts: p.MaxAttempts,
		},
		Sampling: SamplingConfig{
			Rays:          p.Rays,
			RayOffset:     p.RayOffset,
			EdgeNudge:     p.EdgeNudge,
			DistanceScale: p.DistanceScale,
		},
		Detail: DetailConfig{
			Amplitude: p.DetailAmplitude,
			Frequency: p.DetailFrequency,
			Octaves:   p.DetailOctaves,
		},
		Output: OutputConfig{
			Heightmap: "relief.png",
		},
		Viewer: ViewerConfig{
			Scale:           4,
			TPS:             60,
			SplitsPerSecond: 2,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// ToWorld maps the settings onto the engine configuration.
func (c *Config) ToWorld() world.Config {
	wc := world.DefaultConfig()
	wc.Width = c.World.Width
	wc.Height = c.World.Height
	wc.Seed = c.World.Seed
	wc.InitialType = c.World.InitialType
	if c.World.Workers > 0 {
		wc.Workers = c.World.Workers
	}
	wc.Params = world.Params{
		InitialAge:      c.Growth.InitialAge,
		AgeDecay:        c.Growth.AgeDecay,
		AgeFloor:        c.Growth.AgeFloor,
		MaxAttempts:     c.Growth.MaxAttempts,
		Rays:            c.Sampling.Rays,
		RayOffset:       c.Sampling.RayOffset,
		EdgeNudge:       c.Sampling.EdgeNudge,
		DistanceScale:   c.Sampling.DistanceScale,
		DetailAmplitude: c.Detail.Amplitude,
		DetailFrequency: c.Detail.Frequency,
		DetailOctaves:   c.Detail.Octaves,
	}
	return wc
}

// Validate checks the engine settings and the application-only ones.
func (c *Config) Validate() error {
	if err := c.ToWorld().Validate(); err != nil {
		return err
	}
	switch {
	case c.Growth.Splits < 0:
		return fmt.Errorf("config: negative splits %d", c.Growth.Splits)
	case c.Viewer.Scale < 1:
		return fmt.Errorf("config: viewer scale %d", c.Viewer.Scale)
	case c.Viewer.TPS < 1:
		return fmt.Errorf("config: viewer tps %d", c.Viewer.TPS)
	case c.Viewer.SplitsPerSecond < 0:
		return fmt.Errorf("config: negative splits per second %d", c.Viewer.SplitsPerSecond)
	}
	return nil
}
