//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"tecto-relief/internal/core"
	"tecto-relief/internal/plate"
)

type plateProvider interface {
	Plates() []plate.Snapshot
}

// Overlay draws plate outlines and drift arrows over the base view.
type Overlay struct {
	sim          core.Sim
	scale        int
	showOutlines bool
	showDrift    bool

	pixel *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: scale, showOutlines: true, showDrift: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles layers: B outlines, D drift.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		o.showOutlines = !o.showOutlines
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		o.showDrift = !o.showDrift
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	provider, ok := o.sim.(plateProvider)
	if !ok || (!o.showOutlines && !o.showDrift) {
		return
	}
	scale := float64(o.scale)
	if scale <= 0 {
		scale = 1
	}
	plates := provider.Plates()

	if o.showOutlines {
		outline := color.RGBA{R: 20, G: 20, B: 24, A: 200}
		for _, p := range plates {
			for i, a := range p.Vertices {
				b := p.Vertices[(i+1)%len(p.Vertices)]
				o.drawLine(screen, a[0]*scale, a[1]*scale, b[0]*scale, b[1]*scale, math.Max(1, scale*0.35), outline)
			}
		}
	}

	if o.showDrift {
		maxSpeed := 0.0
		for _, p := range plates {
			maxSpeed = math.Max(maxSpeed, p.Drift.Len())
		}
		for _, p := range plates {
			o.drawArrow(screen, p.Point[0]*scale, p.Point[1]*scale, p.Drift[0], p.Drift[1], maxSpeed, scale)
		}
	}
}

func (o *Overlay) drawArrow(screen *ebiten.Image, sx, sy, vx, vy, maxSpeed, scale float64) {
	const (
		calmThreshold = 1e-6
		headAngle     = math.Pi / 6
		minThickness  = 0.4
		maxThickness  = 0.8
	)
	speed := math.Hypot(vx, vy)
	if speed < calmThreshold || maxSpeed <= 0 {
		o.drawPoint(screen, sx, sy, scale*1.5, color.RGBA{R: 90, G: 130, B: 170, A: 200})
		return
	}

	nx, ny := vx/speed, vy/speed
	normalized := clamp01(speed / maxSpeed)
	length := scale * (4 + 8*math.Sqrt(normalized))
	headLength := length * 0.3
	tipX, tipY := sx+nx*length, sy+ny*length
	bodyEndX, bodyEndY := tipX-nx*headLength, tipY-ny*headLength
	thickness := math.Max(1, scale*(minThickness+(maxThickness-minThickness)*normalized))

	col := interpolateColor(normalized)
	o.drawLine(screen, sx, sy, bodyEndX, bodyEndY, thickness, col)

	angle := math.Atan2(ny, nx)
	leftX := tipX - math.Cos(angle+headAngle)*headLength
	leftY := tipY - math.Sin(angle+headAngle)*headLength
	rightX := tipX - math.Cos(angle-headAngle)*headLength
	rightY := tipY - math.Sin(angle-headAngle)*headLength
	o.drawLine(screen, tipX, tipY, leftX, leftY, thickness*0.85, col)
	o.drawLine(screen, tipX, tipY, rightX, rightY, thickness*0.85, col)
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	if o.pixel == nil || size <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
