package terrain

import "image/color"

var terrainPalette = buildPalette()

// Palette exposes the color palette used for rendering, indexed by material
// code.
func (g *Grid) Palette() []color.RGBA {
	return terrainPalette
}

func buildPalette() []color.RGBA {
	palette := make([]color.RGBA, materialCount)
	for m := Material(0); m < materialCount; m++ {
		palette[m] = materialColor(m)
	}
	return palette
}

func materialColor(m Material) color.RGBA {
	switch m {
	case Dirt:
		return color.RGBA{R: 110, G: 72, B: 42, A: 255}
	case Sand:
		return color.RGBA{R: 214, G: 184, B: 118, A: 255}
	case Stone:
		return color.RGBA{R: 128, G: 128, B: 136, A: 255}
	case TempStone:
		// Stands in for sand; drawn a shade darker so craters read.
		return color.RGBA{R: 196, G: 168, B: 104, A: 255}
	case Water:
		return color.RGBA{R: 52, G: 110, B: 196, A: 255}
	case Fire:
		return color.RGBA{R: 240, G: 120, B: 36, A: 255}
	case Smoke:
		return color.RGBA{R: 96, G: 96, B: 100, A: 255}
	case VisualSand:
		return color.RGBA{R: 226, G: 198, B: 134, A: 255}
	case VisualDirt:
		return color.RGBA{R: 130, G: 88, B: 54, A: 255}
	case WinHole:
		return color.RGBA{R: 30, G: 160, B: 70, A: 255}
	default:
		return color.RGBA{R: 24, G: 26, B: 34, A: 255}
	}
}
