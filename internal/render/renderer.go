//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"sandtrap/internal/core"
	"sandtrap/internal/terrain"
)

// GridPainter uploads the material grid into a single RGBA image and draws
// the overlays that live in world space: flying particles and the ball.
type GridPainter struct {
	w, h  int
	img   *ebiten.Image
	buf   []byte
	pixel *ebiten.Image
}

// NewGridPainter allocates a painter for a grid of size w*h cells.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h)}
	gp.img = ebiten.NewImage(w, h)
	gp.pixel = ebiten.NewImage(1, 1)
	gp.pixel.Fill(color.White)
	return gp
}

// Blit uploads the cell codes through the palette and draws the grid scaled.
func (gp *GridPainter) Blit(dst *ebiten.Image, cells []uint8, palette []color.RGBA, scale int) {
	if len(cells) != gp.w*gp.h {
		return
	}
	fillPaletteRGBA(gp.buf, cells, palette)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// DrawParticles renders flying particles as faded cells. cellSize converts
// world units to cell units.
func (gp *GridPainter) DrawParticles(dst *ebiten.Image, particles []terrain.Particle, palette []color.RGBA, cellSize float64, scale int) {
	s := float64(scale)
	for i := range particles {
		p := &particles[i]
		col := palette[int(p.Material)]
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(s, s)
		op.GeoM.Translate(p.Pos.X/cellSize*s, p.Pos.Y/cellSize*s)
		op.ColorScale.ScaleWithColor(col)
		op.ColorScale.ScaleAlpha(float32(p.Alpha))
		dst.DrawImage(gp.pixel, op)
	}
}

// DrawBox renders a world-space square (the ball) at the given size.
func (gp *GridPainter) DrawBox(dst *ebiten.Image, pos core.Vec2, size, cellSize float64, scale int, clr color.Color) {
	s := float64(scale)
	side := size / cellSize * s
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(side, side)
	op.GeoM.Translate((pos.X-size/2)/cellSize*s, (pos.Y-size/2)/cellSize*s)
	op.ColorScale.ScaleWithColor(clr)
	dst.DrawImage(gp.pixel, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
