package terrain

// Material rules. Each runs on one candidate cell per frame; the bottom-up
// scan order guarantees a grain that moved down is not revisited this pass,
// and the moved stamp guards the sideways and upward movers.

// ruleSand drops a grain straight down when the cell below is empty,
// otherwise into an empty down-diagonal. A tie between both diagonals is
// broken uniformly at random every frame; a fixed alternation leaves visible
// column artifacts.
func ruleSand(g *Grid, x, y int) {
	if g.MaterialAt(x, y+1) == Empty {
		g.fallTo(x, y, x, y+1)
		return
	}
	g.fallDiagonal(x, y, Empty)
}

// ruleWater behaves like sand but additionally flows sideways into empty
// cells, so pools level out.
func ruleWater(g *Grid, x, y int) {
	if g.MaterialAt(x, y+1) == Empty {
		g.fallTo(x, y, x, y+1)
		return
	}
	if g.fallDiagonal(x, y, Empty) {
		return
	}
	dx := 1
	if g.rng.Bool() {
		dx = -1
	}
	if g.MaterialAt(x+dx, y) != Empty {
		dx = -dx
		if g.MaterialAt(x+dx, y) != Empty {
			return
		}
	}
	g.swap(x, y, x+dx, y)
	g.markActive(x+dx, y+1)
}

// ruleDirt falls like sand and sinks through water: swapping positions
// displaces the water upward.
func ruleDirt(g *Grid, x, y int) {
	below := g.MaterialAt(x, y+1)
	if below == Empty || below == Water {
		g.fallTo(x, y, x, y+1)
		return
	}
	g.fallDiagonal(x, y, Empty)
}

// fallTo swaps the cell into the row below and pre-activates the next fall
// step; without that extra mark the grain stalls for a frame at cluster
// boundaries and the material shows a seam.
func (g *Grid) fallTo(x, y, nx, ny int) {
	g.swap(x, y, nx, ny)
	g.markActive(nx, ny+1)
}

// fallDiagonal tries both down-diagonals against the wanted material and
// reports whether the grain moved.
func (g *Grid) fallDiagonal(x, y int, want Material) bool {
	left := g.MaterialAt(x-1, y+1) == want
	right := g.MaterialAt(x+1, y+1) == want
	if !left && !right {
		return false
	}
	dx := 1
	switch {
	case left && right:
		if g.rng.Bool() {
			dx = -1
		}
	case left:
		dx = -1
	}
	g.fallTo(x, y, x+dx, y+1)
	return true
}

// ruleFire ages the flame and drifts it upward; burnt-out fire turns to
// smoke. Fire keeps its own cluster active while it lives, since decay is a
// change even when nothing moves.
func ruleFire(g *Grid, x, y int) {
	i := g.index(x, y)
	g.life[i] += g.dt
	if g.life[i] >= g.cfg.Params.FireLifetime {
		g.SetMaterial(x, y, Smoke)
		return
	}
	g.markActive(x, y)
	g.rise(x, y)
}

// ruleSmoke drifts upward with a sideways wobble and dissipates.
func ruleSmoke(g *Grid, x, y int) {
	i := g.index(x, y)
	g.life[i] += g.dt
	if g.life[i] >= g.cfg.Params.SmokeLifetime {
		g.SetMaterial(x, y, Empty)
		return
	}
	g.markActive(x, y)
	g.rise(x, y)
}

func (g *Grid) rise(x, y int) {
	if g.MaterialAt(x, y-1) == Empty {
		g.swap(x, y, x, y-1)
		g.markActive(x, y-2)
		return
	}
	dx := 1
	if g.rng.Bool() {
		dx = -1
	}
	if g.MaterialAt(x+dx, y-1) == Empty {
		g.swap(x, y, x+dx, y-1)
		g.markActive(x+dx, y-2)
	}
}
