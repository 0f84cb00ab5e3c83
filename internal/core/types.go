package core

import (
	"fmt"
	"sort"
)

// Size describes the dimensions of a world grid.
type Size struct {
	W int
	H int
}

// Cells returns the number of grid cells.
func (s Size) Cells() int { return s.W * s.H }

// Sim is a steppable world the viewer can drive: Step advances it, Cells
// returns one display byte per grid cell in row-major order.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Cells() []uint8
}

// Factory constructs a Sim from flag-style key/value settings. A nil map
// means defaults.
type Factory func(cfg map[string]string) Sim

var sims = map[string]Factory{}

// Register adds a factory under name. Registering a name twice panics.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	if _, dup := sims[name]; dup {
		panic(fmt.Sprintf("core: sim %q registered twice", name))
	}
	sims[name] = f
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, bool) {
	f, ok := sims[name]
	return f, ok
}

// Names lists the registered sims in sorted order.
func Names() []string {
	out := make([]string, 0, len(sims))
	for name := range sims {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
