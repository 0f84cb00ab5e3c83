//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"tecto-relief/internal/core"
)

// GridPainter keeps one RGBA image the size of the world and redraws it from
// plate cells or heights.
type GridPainter struct {
	w, h    int
	img     *ebiten.Image
	buf     []byte
	palette []color.RGBA
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h), palette: PlatePalette()}
	gp.img = ebiten.NewImage(w, h)
	return gp
}

// BlitCells uploads a plate display buffer and draws it.
func (gp *GridPainter) BlitCells(dst *ebiten.Image, cells []uint8, scale int) {
	if len(cells) != gp.w*gp.h {
		return
	}
	fillPaletteRGBA(gp.buf, cells, gp.palette)
	gp.draw(dst, scale)
}

// BlitHeights uploads a height grid and draws it.
func (gp *GridPainter) BlitHeights(dst *ebiten.Image, g *core.HeightGrid, scale int) {
	if g == nil || g.W != gp.w || g.H != gp.h {
		return
	}
	lo, hi := g.MinMax()
	fillHeightRGBA(gp.buf, g.Cells(), lo, hi)
	gp.draw(dst, scale)
}

func (gp *GridPainter) draw(dst *ebiten.Image, scale int) {
	gp.img.WritePixels(gp.buf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
