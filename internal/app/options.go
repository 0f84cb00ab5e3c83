// Package app hosts the interactive viewer.
package app

import (
	"context"

	"go.uber.org/zap"

	"tecto-relief/internal/core"
)

// Options configures a Game.
type Options struct {
	Scale           int
	Seed            int64
	SplitsPerSecond int
	PanelWidth      int

	// Heights renders the current height field on demand. Nil disables the
	// height view.
	Heights func(ctx context.Context) (*core.HeightGrid, error)
	// Status adds lines to the side panel.
	Status func() []string

	Logger *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Scale <= 0 {
		o.Scale = 1
	}
	if o.SplitsPerSecond < 0 {
		o.SplitsPerSecond = 0
	}
	if o.PanelWidth < 0 {
		o.PanelWidth = 0
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}
