package main

import (
	"flag"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/evermaze/prefabs"
	"github.com/milk9111/evermaze/scene"
)

func main() {
	sceneName := flag.String("scene", "", "scene prefab to start (defaults to the start mode of game.yaml)")
	reverse := flag.Bool("reverse", false, "reverse swipe directions")
	zoom := flag.Float64("zoom", 0.5, "camera zoom")
	watch := flag.Bool("watch", true, "hot reload prefabs from the prefabs directory")
	flag.Parse()

	spec, err := prefabs.LoadGameSpec()
	if err != nil {
		log.Fatalf("load game spec: %v", err)
	}

	name := *sceneName
	if name == "" {
		var ok bool
		name, ok = scene.ForMode(spec.StartMode)
		if !ok {
			log.Fatalf("no scene for start mode %s", spec.StartMode)
		}
	}

	var watcher *prefabs.Watcher
	if *watch {
		watcher, err = prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
		if err != nil {
			log.Printf("prefabs: hot reload disabled: %v", err)
			watcher = nil
		} else {
			defer watcher.Close()
		}
	}

	game, err := NewGame(spec, name, *reverse || spec.ReverseSwipe, *zoom, watcher)
	if err != nil {
		log.Fatalf("start %s: %v", name, err)
	}

	ebiten.SetWindowSize(spec.Width, spec.Height)
	ebiten.SetWindowTitle(spec.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
