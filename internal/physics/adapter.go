// Package physics defines the narrow surface the terrain simulation needs
// from a rigid-body engine, plus a Chipmunk2D-backed implementation. The
// terrain core only ever talks to the Adapter interface so tests can run
// against a stub.
package physics

import "sandtrap/internal/core"

// Tag identifies what a collision shape belongs to, for pair filtering in
// collision callbacks.
type Tag uint8

const (
	TagNone Tag = iota
	TagBall
	TagSolid
	TagSand
	TagWater
	TagWinHole
)

// Body is a handle to an engine-owned rigid body with a rectangular shape.
// Destroy is idempotent; a handle is exclusively owned by exactly one cell
// or ball at a time.
type Body interface {
	Position() core.Vec2
	SetPosition(core.Vec2)
	Velocity() core.Vec2
	SetVelocity(core.Vec2)
	Destroy()
}

// Contact describes one collision event involving the ball. Other carries
// the tag of the non-ball shape, OtherData its user data (cell coordinates
// for terrain shapes).
type Contact struct {
	Other     Tag
	OtherData any
	Point     core.Vec2
	Normal    core.Vec2
	// Speed is the magnitude of the relative velocity of the two bodies at
	// the moment of the event.
	Speed float64
}

// ContactFunc receives collision events. Implementations must not create or
// destroy bodies, nor mutate terrain; they may only record the event.
type ContactFunc func(Contact)

// Adapter is everything the terrain core and the game layer consume from the
// physics engine.
type Adapter interface {
	// CreateStaticBox adds an immovable box body centered at pos. Sensor
	// shapes report begin/separate contacts but do not collide.
	CreateStaticBox(pos core.Vec2, w, h float64, tag Tag, sensor bool, data any) Body
	// CreateDynamicBox adds a movable box body centered at pos.
	CreateDynamicBox(pos core.Vec2, w, h, mass float64, tag Tag, data any) Body
	// Step advances the physics world by dt seconds.
	Step(dt float64)
	// OnBegin registers a callback for ball-vs-anything contact starts.
	OnBegin(fn ContactFunc)
	// OnSeparate registers a callback for ball-vs-anything contact ends.
	OnSeparate(fn ContactFunc)
	// OnPreSolve registers a callback fired before impulses are resolved for
	// ball-vs-anything contacts.
	OnPreSolve(fn ContactFunc)
	// OnPostSolve registers a callback fired after impulses are resolved for
	// ball-vs-solid contacts, with impact geometry populated.
	OnPostSolve(fn ContactFunc)
}
