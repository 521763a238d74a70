package terrain

import (
	"github.com/charmbracelet/log"

	"sandtrap/internal/core"
)

// Conversion asks the grid to turn one Sand cell into a flying particle.
// Collision callbacks may enqueue these but never apply them; the drain runs
// once per frame, strictly after the physics step has returned.
type Conversion struct {
	X, Y   int
	Vel    core.Vec2
	Source Material
}

// EnqueueConversion queues a cell-to-particle conversion for the next drain.
func (g *Grid) EnqueueConversion(x, y int, vel core.Vec2, src Material) {
	g.conversions = append(g.conversions, Conversion{X: x, Y: y, Vel: vel, Source: src})
}

// DrainConversions applies every queued conversion: the source cell is
// cleared to Empty and a flying particle spawns with the requested velocity.
// A record whose cell is no longer Sand lost a race with another mutation in
// the same frame; it is recorded and dropped, not an error.
func (g *Grid) DrainConversions() {
	for _, c := range g.conversions {
		if g.MaterialAt(c.X, c.Y) != Sand {
			g.rejected++
			log.Debug("dropping stale conversion", "x", c.X, "y", c.Y, "material", g.MaterialAt(c.X, c.Y).String())
			continue
		}
		g.SetMaterial(c.X, c.Y, Empty)
		g.spawnParticle(c.X, c.Y, c.Vel, c.Source)
	}
	g.conversions = g.conversions[:0]
}

// PendingConversions reports the queue length, for diagnostics.
func (g *Grid) PendingConversions() int { return len(g.conversions) }
