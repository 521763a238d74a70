// Package terrain implements the material-cell simulation: a dense 2D grid
// of terrain cells stepped once per frame, with gravity rules for loose
// materials, an active-cluster tracker bounding per-frame work, and deferred
// conversion queues bridging to the rigid-body physics world.
package terrain

import "sandtrap/internal/physics"

// Material enumerates the terrain kind a cell currently represents.
type Material uint8

const (
	Empty Material = iota
	Dirt
	Sand
	Stone
	TempStone
	Water
	Fire
	Smoke
	VisualSand
	VisualDirt
	WinHole

	materialCount
)

// MatNone is the sentinel returned for out-of-bounds queries. It is never
// stored in the grid.
const MatNone Material = 0xFF

// String returns the material name.
func (m Material) String() string {
	if m == MatNone {
		return "none"
	}
	if m >= materialCount {
		return "invalid"
	}
	return materialTraits[m].name
}

// Persistent reports whether the material survives a save/load round trip.
// Transient stand-ins and visual effects only exist in a running simulation.
func (m Material) Persistent() bool {
	return m < materialCount && materialTraits[m].persistent
}

// PersistCode maps the material to the code written into a level snapshot:
// TempStone decays to the Sand it stands in for, visual and burning
// materials to Empty.
func (m Material) PersistCode() uint8 {
	switch {
	case m == TempStone:
		return uint8(Sand)
	case m.Persistent():
		return uint8(m)
	default:
		return uint8(Empty)
	}
}

// MaterialFromCode converts a persisted code back into a material. ok is
// false for codes this build does not know.
func MaterialFromCode(code uint8) (Material, bool) {
	m := Material(code)
	if m >= materialCount {
		return Empty, false
	}
	return m, true
}

// bodyKind selects the physics representation a material needs. Solid kinds
// collide with the ball; sensor kinds only report overlap so the ball can
// track water/sand membership. Ordinary Sand is a sensor: rigid geometry
// under the ball comes from the TempStone flood.
type bodyKind uint8

const (
	bodyNone bodyKind = iota
	bodySolid
	bodySensor
)

// ruleFunc is one material's per-cell update, run over candidate cells each
// frame.
type ruleFunc func(g *Grid, x, y int)

type traits struct {
	name       string
	body       bodyKind
	tag        physics.Tag
	persistent bool
	rule       ruleFunc
}

// materialTraits is the single dispatch table keyed on the material enum.
// Populated in init rather than at declaration: the rule funcs transitively
// read the table, which the compiler rejects as an initialization cycle.
var materialTraits [materialCount]traits

func init() {
	materialTraits = [materialCount]traits{
		Empty:      {name: "empty"},
		Dirt:       {name: "dirt", body: bodySolid, tag: physics.TagSolid, persistent: true, rule: ruleDirt},
		Sand:       {name: "sand", body: bodySensor, tag: physics.TagSand, persistent: true, rule: ruleSand},
		Stone:      {name: "stone", body: bodySolid, tag: physics.TagSolid, persistent: true},
		TempStone:  {name: "temp-stone", body: bodySolid, tag: physics.TagSolid},
		Water:      {name: "water", body: bodySensor, tag: physics.TagWater, persistent: true, rule: ruleWater},
		Fire:       {name: "fire", rule: ruleFire},
		Smoke:      {name: "smoke", rule: ruleSmoke},
		VisualSand: {name: "visual-sand"},
		VisualDirt: {name: "visual-dirt"},
		WinHole:    {name: "win-hole", body: bodySensor, tag: physics.TagWinHole, persistent: true},
	}
}
