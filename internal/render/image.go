// Package render turns height grids and plate maps into images.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"tecto-relief/internal/core"
)

// ErrSizeMismatch is returned when a buffer does not match the requested
// dimensions.
var ErrSizeMismatch = errors.New("render: buffer size mismatch")

// HeightToGray16 normalises the grid to the full 16-bit range. A flat grid
// maps to mid grey.
func HeightToGray16(g *core.HeightGrid) *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, g.W, g.H))
	lo, hi := g.MinMax()
	span := hi - lo
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			level := uint16(math.MaxUint16 / 2)
			if span > 0 {
				level = uint16(math.Round((g.At(x, y) - lo) / span * math.MaxUint16))
			}
			img.SetGray16(x, y, color.Gray16{Y: level})
		}
	}
	return img
}

// HeightRGBA colours the grid with the hypsometric palette.
func HeightRGBA(g *core.HeightGrid) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.W, g.H))
	lo, hi := g.MinMax()
	fillHeightRGBA(img.Pix, g.Cells(), lo, hi)
	return img
}

// PlateRGBA colours a plate display buffer with PlatePalette.
func PlateRGBA(cells []uint8, w, h int) (*image.RGBA, error) {
	if w <= 0 || h <= 0 || len(cells) != w*h {
		return nil, fmt.Errorf("%w: %d cells for %dx%d", ErrSizeMismatch, len(cells), w, h)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fillPaletteRGBA(img.Pix, cells, PlatePalette())
	return img, nil
}

// WritePNG encodes img to path, creating parent directories.
func WritePNG(path string, img image.Image) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("render: create dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("render: close %s: %w", path, cerr)
		}
	}()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("render: encode %s: %w", path, err)
	}
	return nil
}
