package level

import (
	"slices"
	"testing"

	"sandtrap/internal/terrain"
)

func buildGrid(w, h int) *terrain.Grid {
	cfg := terrain.DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return terrain.New(cfg, nil)
}

func TestRoundTripPersistentMaterials(t *testing.T) {
	g := buildGrid(16, 12)
	g.SetMaterial(0, 11, terrain.Stone)
	g.SetMaterial(1, 11, terrain.Dirt)
	g.SetMaterial(2, 11, terrain.Sand)
	g.SetMaterial(3, 11, terrain.Water)
	g.SetMaterial(4, 11, terrain.WinHole)

	snap := Snapshot(g, 2, 3)
	data, err := snap.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	loaded, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if loaded.Width != 16 || loaded.Height != 12 {
		t.Fatalf("dimensions mangled: %dx%d", loaded.Width, loaded.Height)
	}
	if loaded.BallX != 2 || loaded.BallY != 3 {
		t.Fatalf("tee position mangled: (%d,%d)", loaded.BallX, loaded.BallY)
	}
	if !slices.Equal(loaded.Cells, snap.Cells) {
		t.Fatal("cell codes must survive the round trip unchanged")
	}

	g2 := buildGrid(16, 12)
	loaded.Apply(g2)
	again := Snapshot(g2, 2, 3)
	if !slices.Equal(again.Cells, snap.Cells) {
		t.Fatal("apply+snapshot must reproduce the same codes")
	}
}

func TestSnapshotMapsTransientMaterials(t *testing.T) {
	g := buildGrid(8, 8)
	g.SetMaterial(1, 1, terrain.Sand)
	g.SolidifyAround(1, 1, 0, 10)
	g.SetMaterial(2, 2, terrain.Fire)
	g.SetMaterial(3, 3, terrain.Smoke)

	snap := Snapshot(g, 0, 0)
	if got := snap.Cells[1*8+1]; got != uint8(terrain.Sand) {
		t.Fatalf("temp stone must persist as sand, got code %d", got)
	}
	if got := snap.Cells[2*8+2]; got != uint8(terrain.Empty) {
		t.Fatalf("fire must persist as empty, got code %d", got)
	}
	if got := snap.Cells[3*8+3]; got != uint8(terrain.Empty) {
		t.Fatalf("smoke must persist as empty, got code %d", got)
	}
}

func TestApplyCoercesUnknownCodes(t *testing.T) {
	l := &Level{Width: 4, Height: 4, Cells: make([]uint8, 16)}
	l.Cells[5] = 200
	l.Cells[6] = uint8(terrain.Fire) // transient, never valid in a file

	g := buildGrid(4, 4)
	l.Apply(g)

	if got := g.MaterialAt(1, 1); got != terrain.Empty {
		t.Fatalf("unknown code must coerce to empty, got %v", got)
	}
	if got := g.MaterialAt(2, 1); got != terrain.Empty {
		t.Fatalf("transient code must coerce to empty, got %v", got)
	}
}

func TestDecodeRejectsInconsistentLevel(t *testing.T) {
	bad := &Level{Width: 4, Height: 4, Cells: make([]uint8, 3)}
	data, err := bad.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := Decode(data); err == nil {
		t.Fatal("decode must reject a cell count mismatch")
	}
}

func TestGenerateProducesPlayableLevel(t *testing.T) {
	l := Generate(120, 80, 99, DefaultGenParams())
	if err := l.Validate(); err != nil {
		t.Fatalf("generated level invalid: %v", err)
	}
	if l.BallX < 0 || l.BallX >= l.Width || l.BallY < 0 || l.BallY >= l.Height {
		t.Fatalf("tee out of bounds: (%d,%d)", l.BallX, l.BallY)
	}

	haveHole := false
	for _, code := range l.Cells {
		if code == uint8(terrain.WinHole) {
			haveHole = true
			break
		}
	}
	if !haveHole {
		t.Fatal("generated level must contain a win hole")
	}
	for x := 0; x < l.Width; x++ {
		if l.Cells[(l.Height-1)*l.Width+x] != uint8(terrain.Stone) {
			t.Fatalf("column %d missing its stone floor", x)
		}
	}

	again := Generate(120, 80, 99, DefaultGenParams())
	if !slices.Equal(l.Cells, again.Cells) {
		t.Fatal("generation must be deterministic for a fixed seed")
	}
}
