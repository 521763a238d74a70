package terrain

import "sandtrap/internal/core"

// Particle is a transient, non-collidable cell state showing ejected
// material. It lives in world coordinates under simple kinematics and is
// culled when its lifetime expires or it leaves the grid.
type Particle struct {
	Material Material
	Pos      core.Vec2
	Vel      core.Vec2
	Age      float64
	// Alpha fades linearly from 1 to 0 over the particle lifetime.
	Alpha float64
}

// Particles exposes the live flying particles for rendering. The slice is
// invalidated by the next Update.
func (g *Grid) Particles() []Particle { return g.particles }

func (g *Grid) spawnParticle(x, y int, vel core.Vec2, src Material) {
	visual := VisualSand
	if src == Dirt {
		visual = VisualDirt
	}
	g.particles = append(g.particles, Particle{
		Material: visual,
		Pos:      g.WorldPos(x, y),
		Vel:      vel,
		Alpha:    1,
	})
}

func (g *Grid) updateParticles(dt float64) {
	maxLife := g.cfg.Params.ParticleMaxLife
	bounds := g.WorldSize()
	for i := 0; i < len(g.particles); {
		p := &g.particles[i]
		p.Vel.Y += g.cfg.Params.ParticleGravity * dt
		p.Pos.X += p.Vel.X * dt
		p.Pos.Y += p.Vel.Y * dt
		p.Age += dt
		p.Alpha = fade(p.Age, maxLife)

		if p.Age >= maxLife || p.Pos.X < 0 || p.Pos.X >= bounds.X || p.Pos.Y < 0 || p.Pos.Y >= bounds.Y {
			last := len(g.particles) - 1
			g.particles[i] = g.particles[last]
			g.particles = g.particles[:last]
			continue
		}
		i++
	}
}
