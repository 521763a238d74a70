//go:build ebiten

package ui

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay draws the round status line and a toggleable help panel.
type Overlay struct {
	visible bool

	strokes int
	inWater bool
	inSand  bool
	won     bool
	active  int
}

// NewOverlay constructs the overlay with help hidden.
func NewOverlay() *Overlay {
	return &Overlay{}
}

// SetStatus updates the values shown in the status line.
func (o *Overlay) SetStatus(strokes int, inWater, inSand, won bool, activeClusters int) {
	o.strokes = strokes
	o.inWater = inWater
	o.inSand = inSand
	o.won = won
	o.active = activeClusters
}

// Update handles overlay input.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		o.visible = !o.visible
	}
}

// Draw paints the status line and, when toggled, the help text.
func (o *Overlay) Draw(screen *ebiten.Image) {
	status := fmt.Sprintf("strokes %d  clusters %d  tps %0.f", o.strokes, o.active, ebiten.ActualTPS())
	if o.inWater {
		status += "  [water]"
	}
	if o.inSand {
		status += "  [sand]"
	}
	if o.won {
		status += "  HOLED!"
	}
	ebitenutil.DebugPrint(screen, status)

	if !o.visible {
		return
	}
	help := "drag+release: strike\nspace: pause  n: step\nr: reset  s: reseed\ntab/+/-: tune  h: help  q: quit"
	ebitenutil.DebugPrintAt(screen, help, 0, 20)
}
