package world

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tecto-relief/internal/core"
	"tecto-relief/internal/geom"
	"tecto-relief/internal/plate"
	"tecto-relief/internal/relief"
)

// Rays returns n unit directions around a point, the first at angle offset
// and the rest spaced 2π/n apart. Angles are measured from +y toward +x.
func Rays(n int, offset float64) []geom.Vec {
	out := make([]geom.Vec, n)
	step := 2 * math.Pi / float64(n)
	for i := range out {
		theta := offset + step*float64(i)
		out[i] = geom.V(math.Sin(theta), math.Cos(theta))
	}
	return out
}

// rayWeight favours rays that meet the border head-on: π for a hit along
// the border normal, falling to 0 for a ray running along the border.
func rayWeight(ray, a, b geom.Vec) float64 {
	theta := geom.Angle(ray, geom.Perp(b.Sub(a)))
	if theta > math.Pi/2 {
		theta = math.Pi - theta
	}
	return math.Pi - 2*theta
}

// shifted moves a neighbour's representative point by the offset a wrapped
// ray travelled, so the pair is compared as if adjacent.
type shifted struct {
	*plate.Plate
	offset geom.Vec
}

func (s shifted) Point() geom.Vec { return s.Plate.Point().Add(s.offset) }

// PointHeight casts rays from p and blends the relief of every border they
// hit, weighted by rayWeight.
func (w *World) PointHeight(p geom.Vec, rays int) (float64, error) {
	if rays < 3 {
		return 0, fmt.Errorf("%w: %d rays, need at least 3", ErrInvalidConfig, rays)
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.pointHeight(p, Rays(rays, w.cfg.Params.RayOffset))
}

func (w *World) pointHeight(p geom.Vec, rays []geom.Vec) (float64, error) {
	home, err := w.locate(p)
	if err != nil {
		return 0, err
	}
	params := w.cfg.Params
	fw, fh := float64(w.cfg.Width), float64(w.cfg.Height)

	var weighted, weights, plain float64
	for i, ray := range rays {
		c, err := home.plate.Crossing(p, ray, params.EdgeNudge)
		if err != nil {
			return 0, fmt.Errorf("world: ray %d from %v: %w", i, p, err)
		}
		q := c.Point.Add(ray.Mul(params.EdgeNudge))
		var offset geom.Vec
		if !w.inBounds(q) {
			wrapped := geom.Wrap(q, fw, fh)
			offset = q.Sub(wrapped)
			q = wrapped
		}
		nb, err := w.locate(q)
		if err != nil {
			return 0, fmt.Errorf("world: neighbour of %v: %w", p, err)
		}

		var in relief.Interaction
		if nb.id == home.id {
			in = relief.Interaction{Kind: relief.Interior, Oceanic: home.plate.Type() == plate.Oceanic}
		} else {
			in = relief.Classify(home.plate, shifted{nb.plate, offset}, c.A, c.B)
		}
		x := params.DistanceScale * geom.DistanceToLine(p, c.A, c.B)
		v := w.curves.Height(in, x)
		wt := rayWeight(ray, c.A, c.B)

		weighted += v * wt
		weights += wt
		plain += v
	}
	if weights <= geom.Epsilon {
		return plain / float64(len(rays)), nil
	}
	return weighted / weights, nil
}

// Render evaluates PointHeight at every integer coordinate and returns the
// grid, rows split across Workers goroutines. Splits wait until the pass
// is done.
func (w *World) Render(ctx context.Context, rays int) (*core.HeightGrid, error) {
	if rays < 3 {
		return nil, fmt.Errorf("%w: %d rays, need at least 3", ErrInvalidConfig, rays)
	}
	w.mu.RLock()
	defer w.mu.RUnlock()

	start := time.Now()
	dirs := Rays(rays, w.cfg.Params.RayOffset)
	grid := core.NewHeightGrid(w.cfg.Width, w.cfg.Height)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.cfg.Workers)
	for y := 0; y < grid.H; y++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			row := grid.Row(y)
			for x := range row {
				h, err := w.pointHeight(geom.V(float64(x), float64(y)), dirs)
				if err != nil {
					return err
				}
				row[x] = h + w.detail.At(float64(x), float64(y))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("world: render: %w", err)
	}

	lo, hi := grid.MinMax()
	w.log.Info("height field rendered",
		zap.Int("width", grid.W),
		zap.Int("height", grid.H),
		zap.Int("rays", rays),
		zap.Int("plates", len(w.entries)),
		zap.Float64("min", lo),
		zap.Float64("max", hi),
		zap.Duration("took", time.Since(start)),
	)
	return grid, nil
}
