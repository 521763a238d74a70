package terrain

import (
	"slices"
	"testing"

	"sandtrap/internal/core"
	"sandtrap/internal/physics"
)

// fakeBody and fakeAdapter stand in for the physics engine so body lifetime
// can be observed without a real space.
type fakeBody struct {
	adapter  *fakeAdapter
	pos      core.Vec2
	vel      core.Vec2
	destroys int
}

func (b *fakeBody) Position() core.Vec2     { return b.pos }
func (b *fakeBody) SetPosition(p core.Vec2) { b.pos = p }
func (b *fakeBody) Velocity() core.Vec2     { return b.vel }
func (b *fakeBody) SetVelocity(v core.Vec2) { b.vel = v }
func (b *fakeBody) Destroy() {
	b.destroys++
	b.adapter.destroyed++
}

type fakeAdapter struct {
	created   int
	destroyed int

	begin     physics.ContactFunc
	separate  physics.ContactFunc
	postSolve physics.ContactFunc
}

func (a *fakeAdapter) CreateStaticBox(pos core.Vec2, w, h float64, tag physics.Tag, sensor bool, data any) physics.Body {
	a.created++
	return &fakeBody{adapter: a, pos: pos}
}

func (a *fakeAdapter) CreateDynamicBox(pos core.Vec2, w, h, mass float64, tag physics.Tag, data any) physics.Body {
	a.created++
	return &fakeBody{adapter: a, pos: pos}
}

func (a *fakeAdapter) Step(dt float64)                    {}
func (a *fakeAdapter) OnBegin(fn physics.ContactFunc)     { a.begin = fn }
func (a *fakeAdapter) OnSeparate(fn physics.ContactFunc)  { a.separate = fn }
func (a *fakeAdapter) OnPreSolve(fn physics.ContactFunc)  {}
func (a *fakeAdapter) OnPostSolve(fn physics.ContactFunc) {
	a.postSolve = fn
}

func testConfig(w, h int) Config {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	cfg.Seed = 42
	return cfg
}

// awayHint keeps the ball cluster activation out of rule tests.
var awayHint = core.Vec2{X: -1e9, Y: -1e9}

func TestSetMaterialIdempotent(t *testing.T) {
	phys := &fakeAdapter{}
	g := New(testConfig(8, 8), phys)

	g.SetMaterial(3, 3, Stone)
	if phys.created != 1 {
		t.Fatalf("expected 1 body created, got %d", phys.created)
	}

	g.SetMaterial(3, 3, Stone)
	if phys.created != 1 || phys.destroyed != 0 {
		t.Fatalf("repeated SetMaterial must not touch the body: created=%d destroyed=%d",
			phys.created, phys.destroyed)
	}

	g.SetMaterial(3, 3, Dirt)
	if phys.created != 2 || phys.destroyed != 1 {
		t.Fatalf("material change must replace the body: created=%d destroyed=%d",
			phys.created, phys.destroyed)
	}
}

func TestBodyDestroyedBeforeCreate(t *testing.T) {
	phys := &fakeAdapter{}
	g := New(testConfig(4, 4), phys)

	g.SetMaterial(1, 1, Stone)
	g.SetMaterial(1, 1, Empty)
	if phys.destroyed != 1 {
		t.Fatalf("expected body destroyed on transition to Empty, got %d", phys.destroyed)
	}
	g.SetMaterial(1, 1, Water)
	g.Destroy()
	if phys.destroyed != 2 {
		t.Fatalf("grid teardown must destroy owned bodies, got %d", phys.destroyed)
	}
}

func TestSandFallsExactlyOneCell(t *testing.T) {
	g := New(testConfig(5, 6), nil)
	g.SetMaterial(2, 1, Sand)

	g.Update(1.0/60.0, awayHint)

	for y := 0; y < 6; y++ {
		for x := 0; x < 5; x++ {
			want := Empty
			if x == 2 && y == 2 {
				want = Sand
			}
			if got := g.MaterialAt(x, y); got != want {
				t.Fatalf("cell (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestOutOfBoundsIsSoft(t *testing.T) {
	g := New(testConfig(4, 4), nil)

	if got := g.MaterialAt(-1, 0); got != MatNone {
		t.Fatalf("MaterialAt(-1,0) = %v, want MatNone", got)
	}
	if got := g.MaterialAt(0, 4); got != MatNone {
		t.Fatalf("MaterialAt(0,4) = %v, want MatNone", got)
	}

	// Must be silent no-ops.
	g.SetMaterial(-1, 2, Sand)
	g.SetMaterial(4, 2, Sand)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if g.MaterialAt(x, y) != Empty {
				t.Fatalf("out-of-bounds SetMaterial leaked into (%d,%d)", x, y)
			}
		}
	}
}

func TestBoundaryColumnsSafe(t *testing.T) {
	w, h := 6, 12
	g := New(testConfig(w, h), nil)
	for x := 0; x < w; x++ {
		g.SetMaterial(x, h-1, Stone)
	}
	// Sand stacks hugging both side walls.
	for y := 2; y < 6; y++ {
		g.SetMaterial(0, y, Sand)
		g.SetMaterial(w-1, y, Sand)
	}

	sandBefore := countMaterial(g, Sand)
	for i := 0; i < 120; i++ {
		g.Update(1.0/60.0, awayHint)
	}

	if got := countMaterial(g, Sand); got != sandBefore {
		t.Fatalf("sand leaked through the boundary: %d -> %d grains", sandBefore, got)
	}
	for y := 0; y < h; y++ {
		if g.MaterialAt(-1, y) != MatNone || g.MaterialAt(w, y) != MatNone {
			t.Fatal("perimeter probe must stay MatNone")
		}
	}
}

func countMaterial(g *Grid, m Material) int {
	n := 0
	size := g.Size()
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			if g.MaterialAt(x, y) == m {
				n++
			}
		}
	}
	return n
}

func TestDiagonalChoiceDeterministicUnderSeed(t *testing.T) {
	build := func() *Grid {
		g := New(testConfig(32, 24), nil)
		for x := 0; x < 32; x++ {
			g.SetMaterial(x, 23, Stone)
		}
		// A pyramid seed that forces many diagonal ties.
		for y := 4; y < 10; y++ {
			for x := 12; x < 20; x++ {
				g.SetMaterial(x, y, Sand)
			}
		}
		return g
	}

	a, b := build(), build()
	for i := 0; i < 200; i++ {
		a.Update(1.0/60.0, awayHint)
		b.Update(1.0/60.0, awayHint)
	}
	if !slices.Equal(a.Cells(), b.Cells()) {
		t.Fatal("identical seeds must reproduce identical grids")
	}
}

func TestTempStoneReversionTiming(t *testing.T) {
	g := New(testConfig(8, 8), nil)
	g.SetMaterial(2, 2, Sand)
	g.SolidifyAround(2, 2, 0, 0.2)

	if got := g.MaterialAt(2, 2); got != TempStone {
		t.Fatalf("flood must convert sand, got %v", got)
	}

	dt := 0.05
	for i := 0; i < 3; i++ {
		g.Update(dt, awayHint)
		if got := g.MaterialAt(2, 2); got != TempStone {
			t.Fatalf("reverted after %.2fs, before the 0.2s countdown", float64(i+1)*dt)
		}
	}
	g.Update(dt, awayHint)
	if got := g.MaterialAt(2, 2); got != Sand {
		t.Fatalf("expected sand after 0.2s, got %v", got)
	}
}

func TestTempStoneNotRevertedWhenClaimed(t *testing.T) {
	g := New(testConfig(8, 8), nil)
	g.SetMaterial(2, 2, Sand)
	g.SolidifyAround(2, 2, 0, 0.1)
	g.SetMaterial(2, 2, Stone)

	for i := 0; i < 10; i++ {
		g.Update(0.05, awayHint)
	}
	if got := g.MaterialAt(2, 2); got != Stone {
		t.Fatalf("expired countdown must not clobber a claimed cell, got %v", got)
	}
}

func TestSolidifyFloodRefreshesCountdown(t *testing.T) {
	g := New(testConfig(8, 8), nil)
	g.SetMaterial(2, 2, Sand)

	for i := 0; i < 20; i++ {
		g.SolidifyAround(2, 2, 1, 0.2)
		g.Update(0.05, awayHint)
		if got := g.MaterialAt(2, 2); got != TempStone {
			t.Fatalf("refreshed countdown must keep the cell solid (frame %d: %v)", i, got)
		}
	}
}

func TestDirtSinksThroughWater(t *testing.T) {
	g := New(testConfig(3, 5), nil)
	for x := 0; x < 3; x++ {
		g.SetMaterial(x, 4, Stone)
	}
	// Wall the pool in so the water can only be displaced upward.
	g.SetMaterial(0, 3, Stone)
	g.SetMaterial(2, 3, Stone)
	g.SetMaterial(1, 3, Water)
	g.SetMaterial(1, 2, Dirt)

	g.Update(1.0/60.0, awayHint)

	if got := g.MaterialAt(1, 3); got != Dirt {
		t.Fatalf("dirt must sink into water, got %v", got)
	}
	if got := g.MaterialAt(1, 2); got != Water {
		t.Fatalf("water must be displaced upward, got %v", got)
	}
}

func TestWaterSpreadsSideways(t *testing.T) {
	g := New(testConfig(5, 3), nil)
	for x := 0; x < 5; x++ {
		g.SetMaterial(x, 2, Stone)
	}
	g.SetMaterial(2, 1, Water)

	g.Update(1.0/60.0, awayHint)

	left := g.MaterialAt(1, 1) == Water
	right := g.MaterialAt(3, 1) == Water
	if left == right {
		t.Fatalf("water must move into exactly one side cell (left=%v right=%v)", left, right)
	}
	if g.MaterialAt(2, 1) != Empty {
		t.Fatal("source cell must empty when water flows sideways")
	}
}

func TestAlphaFadesWithBurnAge(t *testing.T) {
	cfg := testConfig(3, 3)
	cfg.Params.FireLifetime = 1.0
	g := New(cfg, nil)
	g.SetMaterial(1, 0, Fire)

	if a := g.AlphaAt(1, 0); a != 1 {
		t.Fatalf("fresh fire alpha must be 1, got %f", a)
	}
	g.Update(0.5, awayHint)
	if a := g.AlphaAt(1, 0); a < 0.45 || a > 0.55 {
		t.Fatalf("half-burnt fire alpha must be near 0.5, got %f", a)
	}
	if a := g.AlphaAt(-3, 0); a != 1 {
		t.Fatalf("out-of-bounds alpha must default to 1, got %f", a)
	}
}

func TestFireBecomesSmokeThenClears(t *testing.T) {
	cfg := testConfig(3, 3)
	cfg.Params.FireLifetime = 0.1
	cfg.Params.SmokeLifetime = 0.1
	g := New(cfg, nil)
	g.SetMaterial(1, 0, Fire) // at the ceiling so it cannot rise

	for i := 0; i < 3; i++ {
		g.Update(0.05, awayHint)
	}
	if got := g.MaterialAt(1, 0); got != Smoke {
		t.Fatalf("burnt-out fire must become smoke, got %v", got)
	}
	for i := 0; i < 3; i++ {
		g.Update(0.05, awayHint)
	}
	if got := g.MaterialAt(1, 0); got != Empty {
		t.Fatalf("smoke must dissipate, got %v", got)
	}
}
