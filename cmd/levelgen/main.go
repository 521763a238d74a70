// Command levelgen generates playable levels headlessly: perlin terrain,
// an optional settle pre-roll so loose material comes to rest, then a
// msgpack level file.
package main

import (
	"flag"

	"github.com/charmbracelet/log"

	"sandtrap/internal/core"
	"sandtrap/internal/level"
	"sandtrap/internal/terrain"
)

func main() {
	width := flag.Int("w", 240, "level width in cells")
	height := flag.Int("h", 135, "level height in cells")
	seed := flag.Int64("seed", 1337, "generator seed")
	settle := flag.Int("settle", 120, "settle frames before snapshot (0 disables)")
	out := flag.String("out", "level.stl", "output path")
	flag.Parse()

	lvl := level.Generate(*width, *height, *seed, level.DefaultGenParams())

	if *settle > 0 {
		cfg := terrain.DefaultConfig()
		cfg.Width = *width
		cfg.Height = *height
		cfg.Seed = *seed
		grid := terrain.New(cfg, nil)
		lvl.Apply(grid)

		// Hint far outside the grid; only material motion drives activity.
		away := core.Vec2{X: -1e6, Y: -1e6}
		for i := 0; i < *settle; i++ {
			grid.Update(1.0/60.0, away)
		}
		settled := level.Snapshot(grid, lvl.BallX, lvl.BallY)
		lvl = settled
	}

	if err := lvl.WriteFile(*out); err != nil {
		log.Fatal("writing level", "path", *out, "err", err)
	}

	counts := map[string]int{}
	for _, code := range lvl.Cells {
		m, _ := terrain.MaterialFromCode(code)
		counts[m.String()]++
	}
	log.Info("level written", "path", *out, "w", lvl.Width, "h", lvl.Height,
		"ball_x", lvl.BallX, "ball_y", lvl.BallY)
	for name, n := range counts {
		log.Info("material", "name", name, "cells", n)
	}
}
