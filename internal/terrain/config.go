package terrain

import "strconv"

// Params holds tunable thresholds and rates for the terrain simulation.
type Params struct {
	// ParticleGravity is the constant downward acceleration applied to
	// flying particles, in world units per second squared.
	ParticleGravity float64
	// ParticleMaxLife is the flying-particle lifetime in seconds; fade
	// alpha runs linearly from 1 to 0 over this window.
	ParticleMaxLife float64

	FireLifetime  float64
	SmokeLifetime float64

	// SolidifySeconds is the TempStone countdown refreshed by the ball
	// flood each frame.
	SolidifySeconds float64
	// SolidifyRadius is the flood radius around the ball, in cells.
	SolidifyRadius int
}

// Config controls the terrain grid dimensions and tunables.
type Config struct {
	Width  int
	Height int

	Seed int64

	// CellSize is the edge length of one cell in world units.
	CellSize float64
	// ClusterSize is the edge length of one active-region cluster in cells.
	ClusterSize int

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:       240,
		Height:      135,
		Seed:        1337,
		CellSize:    4,
		ClusterSize: 8,
		Params: Params{
			ParticleGravity: 320,
			ParticleMaxLife: 1.2,
			FireLifetime:    0.8,
			SmokeLifetime:   1.6,
			SolidifySeconds: 0.2,
			SolidifyRadius:  3,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["cell_size"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.CellSize = parsed
		}
	}
	if v, ok := cfg["cluster_size"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.ClusterSize = parsed
		}
	}
	if v, ok := cfg["particle_gravity"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.ParticleGravity = parsed
		}
	}
	if v, ok := cfg["particle_max_life"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Params.ParticleMaxLife = parsed
		}
	}
	if v, ok := cfg["solidify_seconds"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Params.SolidifySeconds = parsed
		}
	}
	if v, ok := cfg["solidify_radius"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.SolidifyRadius = parsed
		}
	}
	return c
}
