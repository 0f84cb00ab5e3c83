package world

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"tecto-relief/internal/plate"
)

// Dump is the exported state of a world.
type Dump struct {
	Width  int              `yaml:"width"`
	Height int              `yaml:"height"`
	Seed   int64            `yaml:"seed"`
	Age    float64          `yaml:"age"`
	Plates []plate.Snapshot `yaml:"plates"`
}

// Dump captures the plates and growth state.
func (w *World) Dump() Dump {
	w.mu.RLock()
	defer w.mu.RUnlock()
	plates := make([]plate.Snapshot, len(w.entries))
	for i, e := range w.entries {
		plates[i] = e.plate.Snapshot(e.id)
	}
	return Dump{
		Width:  w.cfg.Width,
		Height: w.cfg.Height,
		Seed:   w.cfg.Seed,
		Age:    w.age,
		Plates: plates,
	}
}

// Export writes the dump as YAML.
func (w *World) Export(out io.Writer) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(w.Dump()); err != nil {
		return fmt.Errorf("world: export: %w", err)
	}
	return enc.Close()
}
