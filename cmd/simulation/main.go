package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/lao-tseu-is-alive/go-robot-arena/internal/scenario"
	"github.com/lao-tseu-is-alive/go-robot-arena/pkg/visualization"
)

func main() {
	scenarioFile := flag.String("scenario", "", "path to a scenario json file (empty: built-in demo)")
	schemaFile := flag.String("schema", "configs/scenario.schema.json", "path to the scenario json schema")
	flag.Parse()

	s := scenario.Default()
	if *scenarioFile != "" {
		loaded, err := scenario.Load(*scenarioFile, *schemaFile)
		if err != nil {
			log.Fatalf("loading scenario: %v", err)
		}
		s = loaded
	}

	world, err := s.Build()
	if err != nil {
		log.Fatalf("building arena: %v", err)
	}

	ebiten.SetWindowSize(int(world.Width()), int(world.Height()))
	ebiten.SetWindowTitle("Robot Arena")

	if err := ebiten.RunGame(visualization.NewGame(world)); err != nil {
		log.Fatal(err)
	}
}
