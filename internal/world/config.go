package world

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"

	"tecto-relief/internal/plate"
)

// ErrInvalidConfig is returned by New and Validate for unusable settings.
var ErrInvalidConfig = errors.New("world: invalid config")

// Params holds the tunables of plate growth and height sampling.
type Params struct {
	// InitialAge is the age a fresh world starts with. A split uses the
	// current age as the drift scale of both halves.
	InitialAge float64
	// AgeDecay is the largest fraction of the age removed by one split.
	AgeDecay float64
	AgeFloor float64

	Rays          int
	RayOffset     float64
	EdgeNudge     float64
	DistanceScale float64

	// MaxAttempts bounds consecutive failed random splits in Grow.
	MaxAttempts int

	DetailAmplitude float64
	DetailFrequency float64
	DetailOctaves   int
}

// Config controls the world dimensions and tunables.
type Config struct {
	Width  int
	Height int

	Seed int64

	InitialType plate.Type
	Workers     int

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:       128,
		Height:      128,
		Seed:        1337,
		InitialType: plate.Continental,
		Workers:     runtime.NumCPU(),
		Params: Params{
			InitialAge:      1,
			AgeDecay:        0.5,
			AgeFloor:        0,
			Rays:            6,
			RayOffset:       0.5,
			EdgeNudge:       0.001,
			DistanceScale:   0.1,
			MaxAttempts:     64,
			DetailAmplitude: 0,
			DetailFrequency: 0.05,
			DetailOctaves:   4,
		},
	}
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.Params.Rays < 3:
		return fmt.Errorf("%w: %d rays, need at least 3", ErrInvalidConfig, c.Params.Rays)
	case c.Params.EdgeNudge <= 0:
		return fmt.Errorf("%w: edge nudge %g", ErrInvalidConfig, c.Params.EdgeNudge)
	case c.Params.InitialAge < 0 || c.Params.AgeFloor < 0:
		return fmt.Errorf("%w: negative age", ErrInvalidConfig)
	case c.Params.AgeDecay < 0 || c.Params.AgeDecay > 1:
		return fmt.Errorf("%w: age decay %g outside [0,1]", ErrInvalidConfig, c.Params.AgeDecay)
	case c.Params.DistanceScale <= 0:
		return fmt.Errorf("%w: distance scale %g", ErrInvalidConfig, c.Params.DistanceScale)
	case c.Params.MaxAttempts < 1:
		return fmt.Errorf("%w: max attempts %d", ErrInvalidConfig, c.Params.MaxAttempts)
	}
	return nil
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["type"]; ok {
		if parsed, err := plate.ParseType(v); err == nil {
			c.InitialType = parsed
		}
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Workers = parsed
		}
	}
	if v, ok := cfg["rays"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 3 {
			c.Params.Rays = parsed
		}
	}
	if v, ok := cfg["ray_offset"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.RayOffset = parsed
		}
	}
	if v, ok := cfg["edge_nudge"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Params.EdgeNudge = parsed
		}
	}
	if v, ok := cfg["distance_scale"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Params.DistanceScale = parsed
		}
	}
	if v, ok := cfg["initial_age"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.InitialAge = parsed
		}
	}
	if v, ok := cfg["age_decay"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Params.AgeDecay = parsed
		}
	}
	if v, ok := cfg["age_floor"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.AgeFloor = parsed
		}
	}
	if v, ok := cfg["max_attempts"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.MaxAttempts = parsed
		}
	}
	if v, ok := cfg["detail_amplitude"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.DetailAmplitude = parsed
		}
	}
	if v, ok := cfg["detail_frequency"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Params.DetailFrequency = parsed
		}
	}
	if v, ok := cfg["detail_octaves"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.DetailOctaves = parsed
		}
	}
	return c
}
