//go:build ebiten

package app

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"sandtrap/internal/core"
	"sandtrap/internal/game"
	"sandtrap/internal/render"
	"sandtrap/internal/ui"
)

// strikePower converts drag distance in world units into launch speed.
const strikePower = 3.0

// Game adapts a round to the ebiten.Game interface.
type Game struct {
	round   *game.Round
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD

	scale    int
	paused   bool
	tickOnce bool
	seed     int64

	aiming  bool
	anchorX int
	anchorY int
}

// New constructs a Game for the provided round.
func New(round *game.Round, scale int, seed int64) *Game {
	size := round.Size()
	return &Game{
		round:   round,
		painter: render.NewGridPainter(size.W, size.H),
		overlay: ui.NewOverlay(),
		hud:     ui.NewHUD(round),
		scale:   scale,
		seed:    seed,
	}
}

// Reset reinitializes the round with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.round.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame input and advances the round.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	g.updateAim()
	g.overlay.Update()
	g.hud.Update()

	if !g.paused || g.tickOnce {
		g.round.Step()
		g.tickOnce = false
	}

	ball := g.round.Ball()
	g.overlay.SetStatus(g.round.Strokes(), ball.InWater(), ball.InSand(), g.round.Won(),
		g.round.Grid().ActiveClusterCount())
	return nil
}

// updateAim implements slingshot aiming: press, drag away from the target,
// release to strike.
func (g *Game) updateAim() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.anchorX, g.anchorY = ebiten.CursorPosition()
		g.aiming = true
	}
	if g.aiming && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.aiming = false
		x, y := ebiten.CursorPosition()
		cellSize := g.round.Grid().Config().CellSize
		toWorld := cellSize / float64(g.scale)
		g.round.Strike(core.Vec2{
			X: float64(g.anchorX-x) * toWorld * strikePower,
			Y: float64(g.anchorY-y) * toWorld * strikePower,
		})
	}
}

// Draw renders the terrain, the flying particles, the ball and the UI.
func (g *Game) Draw(screen *ebiten.Image) {
	grid := g.round.Grid()
	cellSize := grid.Config().CellSize
	palette := g.round.Palette()

	g.painter.Blit(screen, g.round.Cells(), palette, g.scale)
	g.painter.DrawParticles(screen, g.round.Particles(), palette, cellSize, g.scale)
	g.painter.DrawBox(screen, g.round.Ball().Position(), g.round.Ball().Size(), cellSize, g.scale,
		color.RGBA{R: 245, G: 245, B: 245, A: 255})

	g.hud.Draw(screen)
	g.overlay.Draw(screen)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.round.Size()
	return s.W * g.scale, s.H * g.scale
}
