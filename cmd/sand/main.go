//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"sandgrid/internal/app"
	"sandgrid/internal/core"
	"sandgrid/internal/sims/sand"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	var sim core.Sim
	if cfg.Scenario != "" {
		worldCfg, err := sand.LoadScenario(cfg.Scenario)
		if err != nil {
			log.Fatalf("load scenario: %v", err)
		}
		sim = sand.NewWithConfig(worldCfg)
	} else {
		factory, ok := core.Sims()[cfg.Sim]
		if !ok {
			log.Fatalf("unknown sim %q", cfg.Sim)
		}
		sim = factory(nil)
	}
	sim.Reset(cfg.Seed)

	game := app.New(sim, cfg)
	size := sim.Size()

	ebiten.SetWindowTitle("sandgrid: " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.HUDWidth, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
