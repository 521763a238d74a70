package terrain

import (
	"sandtrap/internal/core"
	"sandtrap/internal/physics"
)

// CellRef is attached to terrain collision shapes as user data so collision
// callbacks can map a shape back to its grid cell.
type CellRef struct {
	X, Y int
}

type cellPos struct {
	x, y int
}

// Grid owns the dense cell array, the per-frame active cell list, the
// cluster tracker and the deferred conversion queues. All mutation goes
// through SetMaterial, which keeps material tags and physics bodies in sync:
// a cell holds at most one body, and the old body is destroyed before a
// replacement is created.
type Grid struct {
	cfg  Config
	w, h int

	mats    []Material
	bodies  []physics.Body
	life    []float64
	moved   []int32
	display *core.ByteGrid

	phys physics.Adapter
	rng  *core.RNG

	tracker *clusterTracker

	particles   []Particle
	conversions []Conversion
	solidify    map[int]float64

	// changed lists cells that changed material since the last rule pass;
	// it feeds the cluster tracker and is cleared every frame.
	changed []cellPos

	frame    int32
	scanLTR  bool
	dt       float64
	rejected int
}

// New allocates a width*height grid of Empty cells. phys may be nil for
// headless use (level settling, tests); no bodies are created then.
func New(cfg Config, phys physics.Adapter) *Grid {
	w, h := cfg.Width, cfg.Height
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	total := w * h
	return &Grid{
		cfg:      cfg,
		w:        w,
		h:        h,
		mats:     make([]Material, total),
		bodies:   make([]physics.Body, total),
		life:     make([]float64, total),
		moved:    make([]int32, total),
		display:  core.NewByteGrid(w, h),
		phys:     phys,
		rng:      core.NewRNG(cfg.Seed),
		tracker:  newClusterTracker(w, h, cfg.ClusterSize),
		solidify: make(map[int]float64),
	}
}

// Size reports the grid dimensions in cells.
func (g *Grid) Size() core.Size { return core.Size{W: g.w, H: g.h} }

// Config returns the active configuration.
func (g *Grid) Config() Config { return g.cfg }

// Cells exposes the display buffer of material codes, row-major.
func (g *Grid) Cells() []uint8 { return g.display.Cells() }

// Reseed replaces the rule RNG, for deterministic replays.
func (g *Grid) Reseed(seed int64) { g.rng = core.NewRNG(seed) }

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.w && y >= 0 && y < g.h
}

func (g *Grid) index(x, y int) int { return y*g.w + x }

// MaterialAt returns the material at (x, y), or MatNone when the coordinates
// are out of bounds. Neighbor probing routinely touches the edges, so this
// never panics.
func (g *Grid) MaterialAt(x, y int) Material {
	if !g.inBounds(x, y) {
		return MatNone
	}
	return g.mats[g.index(x, y)]
}

// SetMaterial changes the material at (x, y). Setting the current material
// again is a no-op; out-of-bounds coordinates are ignored. This is the only
// path that creates or destroys cell physics bodies.
func (g *Grid) SetMaterial(x, y int, m Material) {
	if !g.inBounds(x, y) || m >= materialCount {
		return
	}
	i := g.index(x, y)
	if g.mats[i] == m {
		return
	}
	if b := g.bodies[i]; b != nil {
		b.Destroy()
		g.bodies[i] = nil
	}
	g.mats[i] = m
	g.life[i] = 0
	g.display.Cells()[i] = uint8(m)
	g.createBody(x, y, m)
	g.markChanged(x, y)
}

func (g *Grid) createBody(x, y int, m Material) {
	if g.phys == nil {
		return
	}
	t := materialTraits[m]
	if t.body == bodyNone {
		return
	}
	i := g.index(x, y)
	g.bodies[i] = g.phys.CreateStaticBox(
		g.WorldPos(x, y), g.cfg.CellSize, g.cfg.CellSize,
		t.tag, t.body == bodySensor, CellRef{X: x, Y: y})
}

// WorldPos returns the world-space center of cell (x, y).
func (g *Grid) WorldPos(x, y int) core.Vec2 {
	return core.Vec2{
		X: (float64(x) + 0.5) * g.cfg.CellSize,
		Y: (float64(y) + 0.5) * g.cfg.CellSize,
	}
}

// CellAt converts a world-space position to cell coordinates. The result may
// be out of bounds; callers probe with MaterialAt.
func (g *Grid) CellAt(p core.Vec2) (int, int) {
	return int(p.X / g.cfg.CellSize), int(p.Y / g.cfg.CellSize)
}

// WorldSize returns the grid extent in world units.
func (g *Grid) WorldSize() core.Vec2 {
	return core.Vec2{X: float64(g.w) * g.cfg.CellSize, Y: float64(g.h) * g.cfg.CellSize}
}

// markChanged records a material change for the tracker. markActive records
// a cell that must be evaluated next frame without having changed (fall
// pre-activation).
func (g *Grid) markChanged(x, y int) {
	g.changed = append(g.changed, cellPos{x, y})
}

func (g *Grid) markActive(x, y int) {
	if g.inBounds(x, y) {
		g.changed = append(g.changed, cellPos{x, y})
	}
}

// swap exchanges the materials of two cells, moving per-cell age along and
// stamping both cells so neither is evaluated twice in the same pass.
func (g *Grid) swap(x1, y1, x2, y2 int) {
	i1, i2 := g.index(x1, y1), g.index(x2, y2)
	m1, m2 := g.mats[i1], g.mats[i2]
	l1, l2 := g.life[i1], g.life[i2]
	g.SetMaterial(x1, y1, m2)
	g.SetMaterial(x2, y2, m1)
	g.life[i1], g.life[i2] = l2, l1
	g.moved[i1] = g.frame
	g.moved[i2] = g.frame
}

// SolidifyAround floods Sand cells within radius cells of (cx, cy) into
// TempStone and refreshes their countdown, so the physics engine always has
// rigid geometry under the ball.
func (g *Grid) SolidifyAround(cx, cy, radius int, seconds float64) {
	r2 := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > r2 {
				continue
			}
			x, y := cx+dx, cy+dy
			switch g.MaterialAt(x, y) {
			case Sand:
				g.SetMaterial(x, y, TempStone)
				g.solidify[g.index(x, y)] = seconds
			case TempStone:
				g.solidify[g.index(x, y)] = seconds
			}
		}
	}
}

// RevertTempStone turns TempStone back into Sand within radius cells of
// (cx, cy), clearing an earlier solidification so a crater can remove the
// material underneath.
func (g *Grid) RevertTempStone(cx, cy, radius int) {
	r2 := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > r2 {
				continue
			}
			x, y := cx+dx, cy+dy
			if g.MaterialAt(x, y) == TempStone {
				g.SetMaterial(x, y, Sand)
				delete(g.solidify, g.index(x, y))
			}
		}
	}
}

// Update advances the simulation one frame: flying particles first, then
// solidify countdowns, then the material rules over candidate cells. Rows
// are scanned bottom to top so a grain that fell is not evaluated again this
// pass, and the scan direction alternates per row (and flips per frame) to
// avoid a systematic drift in diagonal tie-breaks.
func (g *Grid) Update(dt float64, ballHint core.Vec2) {
	g.frame++
	g.dt = dt

	g.updateParticles(dt)
	g.updateSolidify(dt)

	bx, by := g.CellAt(ballHint)
	g.tracker.rebuild(g.changed, bx, by)
	g.changed = g.changed[:0]

	ltr := g.scanLTR
	for y := g.h - 1; y >= 0; y-- {
		if ltr {
			for x := 0; x < g.w; x++ {
				g.applyRule(x, y)
			}
		} else {
			for x := g.w - 1; x >= 0; x-- {
				g.applyRule(x, y)
			}
		}
		ltr = !ltr
	}
	g.scanLTR = !g.scanLTR
}

func (g *Grid) applyRule(x, y int) {
	if !g.tracker.activeAt(x, y) {
		return
	}
	i := g.index(x, y)
	if g.moved[i] == g.frame {
		return
	}
	if rule := materialTraits[g.mats[i]].rule; rule != nil {
		rule(g, x, y)
	}
}

func (g *Grid) updateSolidify(dt float64) {
	for i, remaining := range g.solidify {
		remaining -= dt
		if remaining > 0 {
			g.solidify[i] = remaining
			continue
		}
		delete(g.solidify, i)
		// The cell may have been claimed by something else meanwhile.
		if g.mats[i] == TempStone {
			g.SetMaterial(i%g.w, i/g.w, Sand)
		}
	}
}

// ActiveClusterCount reports how many clusters the current frame evaluated,
// for diagnostics.
func (g *Grid) ActiveClusterCount() int { return g.tracker.activeCount() }

// RejectedConversions reports how many conversion records were dropped
// because their cell was no longer Sand at drain time.
func (g *Grid) RejectedConversions() int { return g.rejected }

// AlphaAt returns the fade alpha for burning materials at (x, y), and 1 for
// everything else.
func (g *Grid) AlphaAt(x, y int) float64 {
	if !g.inBounds(x, y) {
		return 1
	}
	i := g.index(x, y)
	switch g.mats[i] {
	case Fire:
		return fade(g.life[i], g.cfg.Params.FireLifetime)
	case Smoke:
		return fade(g.life[i], g.cfg.Params.SmokeLifetime)
	}
	return 1
}

func fade(age, max float64) float64 {
	if max <= 0 {
		return 0
	}
	a := 1 - age/max
	if a < 0 {
		return 0
	}
	return a
}

// Clear empties every cell and drops all transient state: particles,
// pending conversions and solidify countdowns.
func (g *Grid) Clear() {
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			g.SetMaterial(x, y, Empty)
		}
	}
	g.particles = g.particles[:0]
	g.conversions = g.conversions[:0]
	clear(g.solidify)
}

// Destroy tears down the grid, releasing every owned physics body.
func (g *Grid) Destroy() {
	for i, b := range g.bodies {
		if b != nil {
			b.Destroy()
			g.bodies[i] = nil
		}
	}
}
