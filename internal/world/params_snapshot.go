package world

import (
	"strconv"

	"tecto-relief/internal/core"
)

// Parameters reports the world's settings, grouped for the viewer panel.
func (w *World) Parameters() core.ParameterSnapshot { return w.cfg.Parameters() }

// Parameters lists cfg under the keys FromMap reads, so
// FromMap(cfg.Parameters().Values()) rebuilds cfg.
func (cfg Config) Parameters() core.ParameterSnapshot {
	params := cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", cfg.Width),
				intParam("h", "Height", cfg.Height),
				int64Param("seed", "Seed", cfg.Seed),
				stringParam("type", "Initial plate type", cfg.InitialType.String()),
				intParam("workers", "Render workers", cfg.Workers),
			},
		},
		{
			Name:    "Growth",
			Summary: "Each split scales drift by the current age, then decays it.",
			Params: []core.Parameter{
				floatParam("initial_age", "Initial age", params.InitialAge),
				floatParam("age_decay", "Age decay", params.AgeDecay),
				floatParam("age_floor", "Age floor", params.AgeFloor),
				intParam("max_attempts", "Max failed splits", params.MaxAttempts),
			},
		},
		{
			Name: "Sampling",
			Params: []core.Parameter{
				intParam("rays", "Rays", params.Rays),
				floatParam("ray_offset", "Ray offset", params.RayOffset),
				floatParam("edge_nudge", "Edge nudge", params.EdgeNudge),
				floatParam("distance_scale", "Distance scale", params.DistanceScale),
			},
		},
		{
			Name: "Detail",
			Params: []core.Parameter{
				floatParam("detail_amplitude", "Noise amplitude", params.DetailAmplitude),
				floatParam("detail_frequency", "Noise frequency", params.DetailFrequency),
				intParam("detail_octaves", "Noise octaves", params.DetailOctaves),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeString,
		Value: value,
	}
}
