package game

import (
	"testing"

	"sandtrap/internal/core"
	"sandtrap/internal/level"
	"sandtrap/internal/physics"
	"sandtrap/internal/terrain"
)

func flatLevel(w, h int) *level.Level {
	l := &level.Level{
		Width:  w,
		Height: h,
		Cells:  make([]uint8, w*h),
		BallX:  w / 2,
		BallY:  2,
	}
	for x := 0; x < w; x++ {
		for y := h - 4; y < h; y++ {
			m := terrain.Sand
			if y == h-1 {
				m = terrain.Stone
			}
			l.Cells[y*w+x] = uint8(m)
		}
	}
	return l
}

func testRound(w, h int) (*Round, *stubAdapter) {
	phys := &stubAdapter{}
	cfg := DefaultConfig()
	cfg.Terrain.Seed = 11
	return NewRound(cfg, flatLevel(w, h), phys), phys
}

func TestRoundAppliesLevel(t *testing.T) {
	r, _ := testRound(24, 24)

	if got := r.Grid().MaterialAt(0, 23); got != terrain.Stone {
		t.Fatalf("floor must be stone, got %v", got)
	}
	if got := r.Grid().MaterialAt(5, 21); got != terrain.Sand {
		t.Fatalf("fill must be sand, got %v", got)
	}
	want := r.Grid().WorldPos(12, 2)
	if got := r.Ball().Position(); got != want {
		t.Fatalf("ball must start on the tee: got %+v want %+v", got, want)
	}
}

func TestRoundSolidifiesUnderBall(t *testing.T) {
	r, phys := testRound(24, 24)

	// Park the stub ball inside the sand fill and run one frame.
	r.Ball().MoveTo(r.Grid().WorldPos(12, 21))
	r.Step()

	if phys.steps == 0 {
		t.Fatal("round must step the physics world")
	}
	if got := r.Grid().MaterialAt(12, 21); got != terrain.TempStone {
		t.Fatalf("sand under the ball must solidify, got %v", got)
	}
}

func TestRoundStrokeCounting(t *testing.T) {
	r, _ := testRound(24, 24)

	r.Strike(core.Vec2{X: 50, Y: -50})
	r.Strike(core.Vec2{X: 30, Y: -10})
	if got := r.Strokes(); got != 2 {
		t.Fatalf("expected 2 strokes, got %d", got)
	}

	r.won = true
	r.Strike(core.Vec2{X: 1, Y: 0})
	if got := r.Strokes(); got != 2 {
		t.Fatalf("strikes after winning must not count, got %d", got)
	}
}

func TestRoundResetRestoresTerrain(t *testing.T) {
	r, _ := testRound(24, 24)

	// Chew up the terrain, then reset.
	r.Ball().MoveTo(r.Grid().WorldPos(12, 21))
	for i := 0; i < 30; i++ {
		r.Step()
	}
	r.Grid().SetMaterial(3, 20, terrain.Empty)
	r.Strike(core.Vec2{X: 10, Y: 0})

	r.Reset(0)

	lvl := flatLevel(24, 24)
	snap := level.Snapshot(r.Grid(), lvl.BallX, lvl.BallY)
	for i, code := range snap.Cells {
		if code != lvl.Cells[i] {
			t.Fatalf("cell %d differs after reset: got %d want %d", i, code, lvl.Cells[i])
		}
	}
	if r.Strokes() != 0 || r.Won() {
		t.Fatal("reset must clear strokes and the won flag")
	}
	if got := r.Ball().Position(); got != r.Grid().WorldPos(12, 2) {
		t.Fatalf("reset must re-tee the ball, got %+v", got)
	}
}

func TestRoundWinFlag(t *testing.T) {
	r, phys := testRound(24, 24)
	wins := 0
	r.OnWin(func() { wins++ })

	phys.begin(physics.Contact{Other: physics.TagWinHole})
	r.Step()
	if !r.Won() {
		t.Fatal("win hole contact must mark the round won")
	}
	r.Step()
	if wins != 1 {
		t.Fatalf("win callback must fire exactly once, got %d", wins)
	}
}
