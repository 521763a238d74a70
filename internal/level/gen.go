package level

import (
	"github.com/aquilax/go-perlin"

	"sandtrap/internal/terrain"
)

// GenParams tunes the procedural terrain generator.
type GenParams struct {
	// SurfaceBase is the mean surface height as a fraction of grid height,
	// measured from the top.
	SurfaceBase float64
	// SurfaceAmplitude is the noise swing in rows.
	SurfaceAmplitude float64
	// SurfaceFrequency scales column position into noise space.
	SurfaceFrequency float64

	SandDepth int
	DirtDepth int

	// WaterLevel is the pool line as a fraction of grid height; valleys
	// dipping below it fill with water.
	WaterLevel float64
}

// DefaultGenParams returns the standard generator tuning.
func DefaultGenParams() GenParams {
	return GenParams{
		SurfaceBase:      0.55,
		SurfaceAmplitude: 14,
		SurfaceFrequency: 0.02,
		SandDepth:        5,
		DirtDepth:        10,
		WaterLevel:       0.68,
	}
}

// Generate builds a playable level from 1D perlin noise: a rolling surface
// with a sand blanket over dirt over stone, water pooling in the deepest
// valleys, the tee near the left edge and the hole near the right.
func Generate(width, height int, seed int64, p GenParams) *Level {
	l := &Level{
		Width:  width,
		Height: height,
		Cells:  make([]uint8, width*height),
	}

	noise := perlin.NewPerlin(2, 2, 3, seed)
	surface := make([]int, width)
	for x := 0; x < width; x++ {
		n := noise.Noise1D(float64(x) * p.SurfaceFrequency)
		y := int(p.SurfaceBase*float64(height) + n*p.SurfaceAmplitude)
		if y < 2 {
			y = 2
		}
		if y > height-3 {
			y = height - 3
		}
		surface[x] = y
	}

	for x := 0; x < width; x++ {
		top := surface[x]
		for y := top; y < height; y++ {
			m := terrain.Stone
			switch {
			case y < top+p.SandDepth:
				m = terrain.Sand
			case y < top+p.SandDepth+p.DirtDepth:
				m = terrain.Dirt
			}
			l.Cells[y*width+x] = uint8(m)
		}
		// Stone floor so nothing falls out of the world.
		l.Cells[(height-1)*width+x] = uint8(terrain.Stone)
	}

	waterY := int(p.WaterLevel * float64(height))
	for x := 0; x < width; x++ {
		for y := waterY; y < surface[x]; y++ {
			l.Cells[y*width+x] = uint8(terrain.Water)
		}
	}

	holeX := width * 9 / 10
	holeY := surface[holeX]
	l.Cells[holeY*width+holeX] = uint8(terrain.WinHole)
	if holeX+1 < width {
		l.Cells[holeY*width+holeX+1] = uint8(terrain.WinHole)
	}

	l.BallX = width / 10
	l.BallY = surface[l.BallX] - 3
	if l.BallY < 0 {
		l.BallY = 0
	}
	return l
}
