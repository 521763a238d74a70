package game

import (
	"image/color"
	"strconv"

	"sandtrap/internal/core"
	"sandtrap/internal/level"
	"sandtrap/internal/physics"
	"sandtrap/internal/terrain"
)

// Config bundles everything a round needs.
type Config struct {
	Terrain terrain.Config

	Gravity   core.Vec2
	BallSize  float64
	BallMass  float64
	WaterDrag float64

	Bridge BridgeParams
}

// DefaultConfig returns the standard round configuration.
func DefaultConfig() Config {
	return Config{
		Terrain:   terrain.DefaultConfig(),
		Gravity:   core.Vec2{X: 0, Y: 480},
		BallSize:  6,
		BallMass:  2,
		WaterDrag: 2.5,
		Bridge: BridgeParams{
			ImpactSpeedThreshold: 90,
			ImpactRadius:         3,
			EjectSpeedScale:      0.45,
			EjectJitter:          18,
		},
	}
}

// Round owns one hole of golf: the physics world, the terrain grid, the
// ball and the collision bridge, advanced in fixed substeps. The per-substep
// order is the contract that keeps callbacks safe: solidify flood, physics
// step (callbacks only record), bridge drain, conversion drain, grid update.
type Round struct {
	cfg    Config
	phys   physics.Adapter
	grid   *terrain.Grid
	ball   *Ball
	bridge *Bridge
	clock  *core.StepClock

	lvl     *level.Level
	seed    int64
	strokes int
	won     bool
	onWin   func()
}

// NewRound builds a round playing the given level on the given physics
// world.
func NewRound(cfg Config, lvl *level.Level, phys physics.Adapter) *Round {
	cfg.Terrain.Width = lvl.Width
	cfg.Terrain.Height = lvl.Height

	grid := terrain.New(cfg.Terrain, phys)
	ball := NewBall(phys, grid.WorldPos(lvl.BallX, lvl.BallY), cfg.BallSize, cfg.BallMass)
	bridge := NewBridge(phys, grid, ball, cfg.Bridge, core.NewRNG(cfg.Terrain.Seed))

	r := &Round{
		cfg:    cfg,
		phys:   phys,
		grid:   grid,
		ball:   ball,
		bridge: bridge,
		clock:  core.NewStepClock(1.0/120.0, 4),
		lvl:    lvl,
		seed:   cfg.Terrain.Seed,
	}
	lvl.Apply(grid)
	return r
}

// Name returns the simulation identifier.
func (r *Round) Name() string { return "sandtrap" }

// Size reports the grid dimensions in cells.
func (r *Round) Size() core.Size { return r.grid.Size() }

// Cells exposes the display buffer of material codes.
func (r *Round) Cells() []uint8 { return r.grid.Cells() }

// Palette exposes the material color palette.
func (r *Round) Palette() []color.RGBA { return r.grid.Palette() }

// Grid exposes the terrain grid.
func (r *Round) Grid() *terrain.Grid { return r.grid }

// Ball exposes the ball.
func (r *Round) Ball() *Ball { return r.ball }

// Particles exposes the live flying particles.
func (r *Round) Particles() []terrain.Particle { return r.grid.Particles() }

// Strokes reports how many times the ball has been struck this round.
func (r *Round) Strokes() int { return r.strokes }

// Won reports whether the ball has reached the win hole.
func (r *Round) Won() bool { return r.won }

// OnWin registers fn to run once, the frame the ball first reaches the hole.
func (r *Round) OnWin(fn func()) { r.onWin = fn }

// Strike launches the ball and counts the stroke. Ignored once the hole is
// won.
func (r *Round) Strike(v core.Vec2) {
	if r.won {
		return
	}
	r.ball.Strike(v)
	r.strokes++
}

// Reset rebuilds the level terrain and puts the ball back on the tee.
func (r *Round) Reset(seed int64) {
	if seed == 0 {
		seed = r.seed
	}
	r.grid.Clear()
	r.grid.Reseed(seed)
	r.lvl.Apply(r.grid)
	r.ball.MoveTo(r.grid.WorldPos(r.lvl.BallX, r.lvl.BallY))
	r.strokes = 0
	r.won = false
	r.bridge.holed = false
}

// Step advances one render frame at the nominal 60 TPS rate.
func (r *Round) Step() { r.Advance(1.0 / 60.0) }

// Advance accumulates dt and runs as many fixed substeps as are due.
func (r *Round) Advance(dt float64) {
	for n := r.clock.Advance(dt); n > 0; n-- {
		r.substep(r.clock.Step())
	}
}

func (r *Round) substep(dt float64) {
	ballPos := r.ball.Position()
	bx, by := r.grid.CellAt(ballPos)
	r.grid.SolidifyAround(bx, by, r.cfg.Terrain.Params.SolidifyRadius, r.cfg.Terrain.Params.SolidifySeconds)

	r.phys.Step(dt)

	r.bridge.Drain()
	r.grid.DrainConversions()

	if r.bridge.Holed() && !r.won {
		r.won = true
		if r.onWin != nil {
			r.onWin()
		}
	}
	if r.ball.InWater() {
		r.ball.applyDrag(r.cfg.WaterDrag, dt)
	}

	r.grid.Update(dt, r.ball.Position())
}

// Parameters exposes the HUD-visible tunables.
func (r *Round) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Params: []core.Parameter{
		{Key: "impact_speed_threshold", Label: "Impact threshold", Type: core.ParamTypeFloat,
			Value: strconv.FormatFloat(r.bridge.params.ImpactSpeedThreshold, 'f', 1, 64)},
		{Key: "impact_radius", Label: "Crater radius", Type: core.ParamTypeInt,
			Value: strconv.Itoa(r.bridge.params.ImpactRadius)},
		{Key: "solidify_seconds", Label: "Solidify window", Type: core.ParamTypeFloat,
			Value: strconv.FormatFloat(r.cfg.Terrain.Params.SolidifySeconds, 'f', 2, 64)},
		{Key: "solidify_radius", Label: "Solidify radius", Type: core.ParamTypeInt,
			Value: strconv.Itoa(r.cfg.Terrain.Params.SolidifyRadius)},
	}}
}

// ParameterControls lists the HUD-adjustable controls.
func (r *Round) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "impact_speed_threshold", Label: "Impact threshold", Type: core.ParamTypeFloat, Step: 10, Min: 0, HasMin: true},
		{Key: "impact_radius", Label: "Crater radius", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: 8, HasMin: true, HasMax: true},
		{Key: "solidify_seconds", Label: "Solidify window", Type: core.ParamTypeFloat, Step: 0.05, Min: 0.05, HasMin: true},
		{Key: "solidify_radius", Label: "Solidify radius", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: 8, HasMin: true, HasMax: true},
	}
}

// SetFloatParameter updates a float tunable by key.
func (r *Round) SetFloatParameter(key string, value float64) bool {
	switch key {
	case "impact_speed_threshold":
		if value < 0 {
			return false
		}
		r.bridge.params.ImpactSpeedThreshold = value
	case "solidify_seconds":
		if value <= 0 {
			return false
		}
		r.cfg.Terrain.Params.SolidifySeconds = value
	default:
		return false
	}
	return true
}

// SetIntParameter updates an integer tunable by key.
func (r *Round) SetIntParameter(key string, value int) bool {
	if value < 1 || value > 8 {
		return false
	}
	switch key {
	case "impact_radius":
		r.bridge.params.ImpactRadius = value
	case "solidify_radius":
		r.cfg.Terrain.Params.SolidifyRadius = value
	default:
		return false
	}
	return true
}
