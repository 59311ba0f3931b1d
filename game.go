package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/evermaze/common"
	"github.com/milk9111/evermaze/ecs"
	"github.com/milk9111/evermaze/ecs/component"
	"github.com/milk9111/evermaze/ecs/render"
	"github.com/milk9111/evermaze/prefabs"
	"github.com/milk9111/evermaze/scene"
	"github.com/milk9111/evermaze/tmx"
)

const cameraSmoothness = 0.15

type Game struct {
	frames int

	spec      *prefabs.GameSpec
	reverse   bool
	zoom      float64
	cache     *tmx.Cache
	input     *Input
	watcher   *prefabs.Watcher
	renderer  *render.Renderer
	start     string
	sceneName string
	scene     *scene.Scene
	camera    common.Vec2
}

func NewGame(spec *prefabs.GameSpec, sceneName string, reverse bool, zoom float64, watcher *prefabs.Watcher) (*Game, error) {
	opts := render.Options{
		Grid:        spec.Debug.Grid,
		Paths:       spec.Debug.Paths,
		Checkpoints: spec.Debug.Checkpoints,
	}
	g := &Game{
		spec:      spec,
		reverse:   reverse,
		zoom:      zoom,
		cache:     newCache(spec),
		input:     NewInput(),
		watcher:   watcher,
		start:     sceneName,
		sceneName: sceneName,
	}
	if spec.Background != nil {
		g.renderer = render.NewRenderer(spec.Background.Color, opts)
	} else {
		g.renderer = render.NewRenderer(nil, opts)
	}
	preload(g.cache)
	if err := g.load(sceneName); err != nil {
		return nil, err
	}
	return g, nil
}

// preload builds the maps of every playable scene, grouped by mode.
func preload(cache *tmx.Cache) {
	maps := map[common.Mode][]string{}
	for _, name := range scene.Names() {
		spec, err := prefabs.LoadSceneSpec(name)
		if err != nil {
			log.Printf("game: preload %s: %v", name, err)
			continue
		}
		maps[spec.Mode] = append(maps[spec.Mode], spec.Map)
	}
	for mode, names := range maps {
		if err := cache.Preload(context.Background(), names, mode); err != nil {
			log.Printf("game: preload %s maps: %v", mode, err)
		}
	}
}

func newCache(spec *prefabs.GameSpec) *tmx.Cache {
	return scene.NewCache(tmx.WithOrigin(common.Vec2{X: spec.OriginX, Y: spec.OriginY}))
}

func (g *Game) load(name string) error {
	spec, err := prefabs.LoadSceneSpec(name)
	if err != nil {
		return err
	}
	s, err := scene.New(scene.Config{
		Spec:    spec,
		Cache:   g.cache,
		Input:   g.input,
		Reverse: g.reverse,
	})
	if err != nil {
		return err
	}
	g.scene = s
	g.sceneName = name
	if tr, ok := ecs.Get(s.World(), s.Player(), component.TransformComponent.Kind()); ok {
		g.camera = tr.Vec()
	}
	return nil
}

func (g *Game) Update() error {
	g.frames++
	g.pollReload()

	g.scene.Update()

	if g.scene.RestartRequested() {
		log.Printf("game: restarting %s", g.sceneName)
		return g.load(g.sceneName)
	}
	if mode, done := g.scene.Finished(); done {
		next := scene.Next(mode, g.start)
		log.Printf("game: %s finished into %s, loading %s", g.sceneName, mode, next)
		if err := g.load(next); err != nil {
			return err
		}
	}

	g.camera = render.Follow(g.camera, g.cameraTarget(), cameraSmoothness)
	return nil
}

func (g *Game) cameraTarget() common.Vec2 {
	if p, ok := g.scene.Focus(); ok {
		return render.GridPosition(g.scene.Index(), p)
	}
	if tr, ok := ecs.Get(g.scene.World(), g.scene.Player(), component.TransformComponent.Kind()); ok {
		return tr.Vec()
	}
	return g.camera
}

// pollReload applies prefab edits without blocking the frame.
func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(change)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("prefabs: watch error: %v", err)
		default:
			return
		}
	}
}

func (g *Game) reload(change prefabs.Change) {
	name := strings.TrimSuffix(change.Name, filepath.Ext(change.Name))
	switch {
	case name == "game":
		log.Printf("prefabs: %s changed, restart the game to apply it", change.Name)
		return
	case change.Script || name == g.sceneName:
		log.Printf("prefabs: %s changed, restarting %s", change.Name, g.sceneName)
	case strings.HasPrefix(name, "tmx_"):
		log.Printf("prefabs: %s changed, rebuilding maps", change.Name)
		g.cache = newCache(g.spec)
	default:
		agent, err := prefabs.LoadAgentSpec(name)
		if err != nil {
			log.Printf("prefabs: reload %s: %v", change.Name, err)
			return
		}
		n := g.scene.SetAgentSpeed(agent.Name, agent.Speed)
		log.Printf("prefabs: %s speed %.1f queued on %d agents", agent.Name, agent.Speed, n)
		return
	}
	if err := g.load(g.sceneName); err != nil {
		log.Printf("prefabs: reload %s: %v", g.sceneName, err)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	frame := render.Frame{
		World:       g.scene.World(),
		Index:       g.scene.Index(),
		Layer:       g.scene.PlayerLayer(),
		Camera:      g.camera,
		Zoom:        g.zoom,
		Checkpoints: g.scene.Checkpoints(),
	}
	if exit := g.scene.Spec().Exit; exit != nil {
		p := exit.Point()
		frame.Exit = &p
	}
	if ev, ok := g.scene.Event(); ok {
		frame.Message = ev.Title + "\n" + ev.Description
	}
	g.renderer.Draw(screen, frame)

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  FPS: %.2f", g.sceneName, ebiten.ActualFPS()), 10, g.spec.Height-20)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return float64(g.spec.Width), float64(g.spec.Height)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
