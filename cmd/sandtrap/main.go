//go:build ebiten

package main

import (
	"errors"
	"flag"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"sandtrap/internal/app"
	"sandtrap/internal/game"
	"sandtrap/internal/level"
	"sandtrap/internal/physics"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	var lvl *level.Level
	var err error
	if cfg.Level != "" {
		lvl, err = level.ReadFile(cfg.Level)
		if err != nil {
			log.Fatal("loading level", "path", cfg.Level, "err", err)
		}
		log.Info("loaded level", "path", cfg.Level, "size", lvl.Width*lvl.Height)
	} else {
		lvl = level.Generate(cfg.Width, cfg.Height, cfg.Seed, level.DefaultGenParams())
		log.Info("generated level", "w", cfg.Width, "h", cfg.Height, "seed", cfg.Seed)
	}

	roundCfg := game.DefaultConfig()
	roundCfg.Terrain.Seed = cfg.Seed
	phys := physics.NewChipmunk(roundCfg.Gravity)
	round := game.NewRound(roundCfg, lvl, phys)

	g := app.New(round, cfg.Scale, cfg.Seed)
	size := round.Size()

	ebiten.SetWindowTitle("sandtrap")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale, size.H*cfg.Scale)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal("game loop", "err", err)
	}
}
