package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Vec2 is a 2D vector in world coordinates.
type Vec2 struct {
	X float64
	Y float64
}

// Add returns the component-wise sum of v and o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v minus o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Sim defines the minimal contract the graphical shell needs from a
// simulation: a fixed-size cell buffer advanced one frame at a time.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Cells() []uint8
}
