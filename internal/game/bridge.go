package game

import (
	"math"

	"sandtrap/internal/core"
	"sandtrap/internal/physics"
	"sandtrap/internal/terrain"
)

// BridgeParams tunes how ball impacts convert terrain into debris.
type BridgeParams struct {
	// ImpactSpeedThreshold is the minimum relative contact speed that
	// qualifies as a destructive impact.
	ImpactSpeedThreshold float64
	// ImpactRadius is the crater radius in cells.
	ImpactRadius int
	// EjectSpeedScale converts impact speed into particle launch speed.
	EjectSpeedScale float64
	// EjectJitter is the random velocity spread added per particle.
	EjectJitter float64
}

// Impact is the only thing a collision callback produces: the contact point
// and relative speed of a qualifying ball-vs-solid hit. Everything else
// happens in Drain, after the physics step has fully returned.
type Impact struct {
	Point core.Vec2
	Speed float64
}

type membership struct {
	tag   physics.Tag
	enter bool
}

// Bridge listens to the physics world's collision events for the ball and
// translates them into deferred terrain work. Callback context forbids
// creating or destroying bodies and mutating the grid, so callbacks only
// append records; Drain applies them once per frame.
type Bridge struct {
	grid   *terrain.Grid
	ball   *Ball
	params BridgeParams
	rng    *core.RNG

	impacts []Impact
	events  []membership
	holed   bool
}

// NewBridge registers the collision callbacks on phys and returns the bridge.
func NewBridge(phys physics.Adapter, grid *terrain.Grid, ball *Ball, params BridgeParams, rng *core.RNG) *Bridge {
	b := &Bridge{grid: grid, ball: ball, params: params, rng: rng}
	phys.OnBegin(b.onBegin)
	phys.OnSeparate(b.onSeparate)
	phys.OnPostSolve(b.onPostSolve)
	return b
}

func (b *Bridge) onBegin(ct physics.Contact) {
	switch ct.Other {
	case physics.TagWater, physics.TagSand:
		b.events = append(b.events, membership{tag: ct.Other, enter: true})
	case physics.TagWinHole:
		b.holed = true
	}
}

func (b *Bridge) onSeparate(ct physics.Contact) {
	switch ct.Other {
	case physics.TagWater, physics.TagSand:
		b.events = append(b.events, membership{tag: ct.Other, enter: false})
	}
}

func (b *Bridge) onPostSolve(ct physics.Contact) {
	if ct.Other != physics.TagSolid {
		return
	}
	if ct.Speed < b.params.ImpactSpeedThreshold {
		return
	}
	b.impacts = append(b.impacts, Impact{Point: ct.Point, Speed: ct.Speed})
}

// Holed reports whether the ball has touched the win hole.
func (b *Bridge) Holed() bool { return b.holed }

// Drain applies everything the callbacks recorded this frame: ball
// water/sand membership first, then craters. Must run after the physics
// step and before the grid drains its conversion queue.
func (b *Bridge) Drain() {
	for _, ev := range b.events {
		switch {
		case ev.tag == physics.TagWater && ev.enter:
			b.ball.EnterWater()
		case ev.tag == physics.TagWater:
			b.ball.ExitWater()
		case ev.tag == physics.TagSand && ev.enter:
			b.ball.EnterSand()
		case ev.tag == physics.TagSand:
			b.ball.ExitSand()
		}
	}
	b.events = b.events[:0]

	for _, imp := range b.impacts {
		b.crater(imp)
	}
	b.impacts = b.impacts[:0]
}

// crater clears earlier solidification around the impact point, then
// enqueues a flying-particle conversion for every sand cell in the radius
// with an outward radial velocity scaled by distance and impact speed.
func (b *Bridge) crater(imp Impact) {
	cx, cy := b.grid.CellAt(imp.Point)
	r := b.params.ImpactRadius
	if r <= 0 {
		return
	}
	b.grid.RevertTempStone(cx, cy, r)

	rf := float64(r)
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			x, y := cx+dx, cy+dy
			if b.grid.MaterialAt(x, y) != terrain.Sand {
				continue
			}
			dist := math.Hypot(float64(dx), float64(dy))
			if dist > rf {
				continue
			}
			// The center cell has no outward direction; throw it up.
			dir := core.Vec2{X: 0, Y: -1}
			if dist > 0 {
				dir = core.Vec2{X: float64(dx) / dist, Y: float64(dy) / dist}
			}
			speed := imp.Speed * b.params.EjectSpeedScale * (1 - dist/rf)
			vel := core.Vec2{
				X: dir.X*speed + b.rng.Jitter(b.params.EjectJitter),
				Y: dir.Y*speed + b.rng.Jitter(b.params.EjectJitter),
			}
			b.grid.EnqueueConversion(x, y, vel, terrain.Sand)
		}
	}
}
