package physics

import (
	"github.com/jakecoffman/cp/v2"

	"sandtrap/internal/core"
)

// Chipmunk implements Adapter on top of the Chipmunk2D port.
type Chipmunk struct {
	space *cp.Space

	begin     ContactFunc
	separate  ContactFunc
	preSolve  ContactFunc
	postSolve ContactFunc
}

// NewChipmunk constructs a physics world with the given gravity vector
// (positive Y points down, matching grid row order).
func NewChipmunk(gravity core.Vec2) *Chipmunk {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{X: gravity.X, Y: gravity.Y})

	c := &Chipmunk{space: space}

	handler := space.NewWildcardCollisionHandler(cp.CollisionType(TagBall))
	handler.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
		if c.begin != nil {
			c.begin(c.contact(arb))
		}
		return true
	}
	handler.SeparateFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) {
		if c.separate != nil {
			c.separate(c.contact(arb))
		}
	}
	handler.PreSolveFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
		if c.preSolve != nil {
			c.preSolve(c.contact(arb))
		}
		return true
	}
	handler.PostSolveFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) {
		if c.postSolve != nil {
			c.postSolve(c.contact(arb))
		}
	}
	return c
}

func (c *Chipmunk) contact(arb *cp.Arbiter) Contact {
	sa, sb := arb.Shapes()
	ball, other := sa, sb
	if Tag(sb.CollisionType()) == TagBall {
		ball, other = sb, sa
	}

	rel := ball.Body().Velocity().Sub(other.Body().Velocity())
	ct := Contact{
		Other:     Tag(other.CollisionType()),
		OtherData: other.UserData,
		Speed:     rel.Length(),
	}

	set := arb.ContactPointSet()
	if set.Count > 0 {
		p := set.Points[0].PointA
		ct.Point = core.Vec2{X: p.X, Y: p.Y}
		ct.Normal = core.Vec2{X: set.Normal.X, Y: set.Normal.Y}
	} else {
		p := other.Body().Position()
		ct.Point = core.Vec2{X: p.X, Y: p.Y}
	}
	return ct
}

// CreateStaticBox adds an immovable box body centered at pos.
func (c *Chipmunk) CreateStaticBox(pos core.Vec2, w, h float64, tag Tag, sensor bool, data any) Body {
	body := c.space.AddBody(cp.NewStaticBody())
	body.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})

	shape := c.space.AddShape(cp.NewBox(body, w, h, 0))
	shape.SetCollisionType(cp.CollisionType(tag))
	shape.SetSensor(sensor)
	shape.SetFriction(0.7)
	shape.SetElasticity(0.2)
	shape.UserData = data

	return &chipmunkBody{space: c.space, body: body, shape: shape}
}

// CreateDynamicBox adds a movable box body centered at pos.
func (c *Chipmunk) CreateDynamicBox(pos core.Vec2, w, h, mass float64, tag Tag, data any) Body {
	body := c.space.AddBody(cp.NewBody(mass, cp.MomentForBox(mass, w, h)))
	body.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})

	shape := c.space.AddShape(cp.NewBox(body, w, h, 0))
	shape.SetCollisionType(cp.CollisionType(tag))
	shape.SetFriction(0.6)
	shape.SetElasticity(0.35)
	shape.UserData = data

	return &chipmunkBody{space: c.space, body: body, shape: shape}
}

// Step advances the physics world by dt seconds.
func (c *Chipmunk) Step(dt float64) { c.space.Step(dt) }

// OnBegin registers the contact-start callback.
func (c *Chipmunk) OnBegin(fn ContactFunc) { c.begin = fn }

// OnSeparate registers the contact-end callback.
func (c *Chipmunk) OnSeparate(fn ContactFunc) { c.separate = fn }

// OnPreSolve registers the pre-impulse callback.
func (c *Chipmunk) OnPreSolve(fn ContactFunc) { c.preSolve = fn }

// OnPostSolve registers the post-impulse callback.
func (c *Chipmunk) OnPostSolve(fn ContactFunc) { c.postSolve = fn }

// chipmunkBody pairs a cp body with its single shape. Destroy removes both
// from the space exactly once; the zero handle after Destroy is inert.
type chipmunkBody struct {
	space *cp.Space
	body  *cp.Body
	shape *cp.Shape
}

func (b *chipmunkBody) Position() core.Vec2 {
	p := b.body.Position()
	return core.Vec2{X: p.X, Y: p.Y}
}

func (b *chipmunkBody) SetPosition(p core.Vec2) {
	b.body.SetPosition(cp.Vector{X: p.X, Y: p.Y})
}

func (b *chipmunkBody) Velocity() core.Vec2 {
	v := b.body.Velocity()
	return core.Vec2{X: v.X, Y: v.Y}
}

func (b *chipmunkBody) SetVelocity(v core.Vec2) {
	b.body.SetVelocityVector(cp.Vector{X: v.X, Y: v.Y})
}

func (b *chipmunkBody) Destroy() {
	if b.shape == nil {
		return
	}
	b.space.RemoveShape(b.shape)
	b.space.RemoveBody(b.body)
	b.shape = nil
	b.body = nil
}
