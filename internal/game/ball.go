// Package game wires the terrain grid, the physics world and the ball into
// a playable round, including the collision bridge that turns ball impacts
// into terrain destruction.
package game

import (
	"sandtrap/internal/core"
	"sandtrap/internal/physics"
)

// Ball is the square dynamic body the player strikes. It tracks how many
// water and sand cells it currently overlaps; the bridge feeds the
// enter/exit calls from sensor contacts.
type Ball struct {
	body physics.Body
	size float64

	waterDepth int
	sandDepth  int
}

// NewBall creates the ball body at pos.
func NewBall(phys physics.Adapter, pos core.Vec2, size, mass float64) *Ball {
	return &Ball{
		body: phys.CreateDynamicBox(pos, size, size, mass, physics.TagBall, nil),
		size: size,
	}
}

// Position returns the ball's world position.
func (b *Ball) Position() core.Vec2 { return b.body.Position() }

// Velocity returns the ball's linear velocity.
func (b *Ball) Velocity() core.Vec2 { return b.body.Velocity() }

// Size returns the ball's edge length in world units.
func (b *Ball) Size() float64 { return b.size }

// Strike launches the ball with the given velocity.
func (b *Ball) Strike(v core.Vec2) { b.body.SetVelocity(v) }

// MoveTo teleports the ball and zeroes its velocity (reset, tee placement).
func (b *Ball) MoveTo(p core.Vec2) {
	b.body.SetPosition(p)
	b.body.SetVelocity(core.Vec2{})
}

// EnterWater records one more overlapped water cell.
func (b *Ball) EnterWater() { b.waterDepth++ }

// ExitWater records one less overlapped water cell.
func (b *Ball) ExitWater() {
	if b.waterDepth > 0 {
		b.waterDepth--
	}
}

// EnterSand records one more overlapped sand cell.
func (b *Ball) EnterSand() { b.sandDepth++ }

// ExitSand records one less overlapped sand cell.
func (b *Ball) ExitSand() {
	if b.sandDepth > 0 {
		b.sandDepth--
	}
}

// InWater reports whether the ball overlaps any water cell.
func (b *Ball) InWater() bool { return b.waterDepth > 0 }

// InSand reports whether the ball overlaps any sand cell.
func (b *Ball) InSand() bool { return b.sandDepth > 0 }

// applyDrag bleeds velocity while submerged.
func (b *Ball) applyDrag(drag, dt float64) {
	f := 1 - drag*dt
	if f < 0 {
		f = 0
	}
	b.body.SetVelocity(b.body.Velocity().Scale(f))
}

// Destroy releases the ball's physics body.
func (b *Ball) Destroy() { b.body.Destroy() }
