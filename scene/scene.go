package scene

import (
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/milk9111/evermaze/common"
	"github.com/milk9111/evermaze/ecs"
	"github.com/milk9111/evermaze/ecs/component"
	"github.com/milk9111/evermaze/ecs/entity"
	"github.com/milk9111/evermaze/ecs/system"
	"github.com/milk9111/evermaze/prefabs"
	"github.com/milk9111/evermaze/tmx"
)

// DefaultStopFrames is how long a stopping event holds the player when its
// spec gives no length.
const DefaultStopFrames = 90

// AgentSource loads the spec of an agent kind.
type AgentSource func(name string) (*prefabs.AgentSpec, error)

type Config struct {
	Spec   *prefabs.SceneSpec
	Cache  *tmx.Cache
	Agents AgentSource
	Input  system.InputSource
	// Script replaces the script named by the spec.
	Script  *Script
	Reverse bool
	Rand    *rand.Rand
}

// Scene runs one maze: the world, its systems and the checkpoint rules.
type Scene struct {
	spec   *prefabs.SceneSpec
	index  *tmx.Object
	world  *ecs.World
	agents AgentSource
	specs  map[string]*prefabs.AgentSpec
	script *Script

	player      ecs.Entity
	checkpoints map[common.Point]string
	fired       map[string]bool

	hold     int
	focus    common.Point
	focusing bool
	event    *prefabs.EventSpec

	finished bool
	next     common.Mode
	restart  bool
}

func New(cfg Config) (*Scene, error) {
	if cfg.Spec == nil {
		return nil, fmt.Errorf("scene: nil spec")
	}
	if cfg.Cache == nil {
		return nil, fmt.Errorf("scene: nil tmx cache")
	}
	agents := cfg.Agents
	if agents == nil {
		agents = prefabs.LoadAgentSpec
	}

	index, err := cfg.Cache.Load(cfg.Spec.Map, cfg.Spec.Mode)
	if err != nil {
		return nil, fmt.Errorf("scene: %s: %w", cfg.Spec.Name, err)
	}

	s := &Scene{
		spec:        cfg.Spec,
		index:       index,
		world:       ecs.NewWorld(),
		agents:      agents,
		specs:       make(map[string]*prefabs.AgentSpec),
		script:      cfg.Script,
		checkpoints: make(map[common.Point]string, len(cfg.Spec.Checkpoints)),
		fired:       make(map[string]bool),
		next:        cfg.Spec.Finish,
	}
	for _, cp := range cfg.Spec.Checkpoints {
		s.checkpoints[cp.At.Point()] = cp.Event
	}

	if s.script == nil && cfg.Spec.Script != "" {
		script, err := LoadScript(cfg.Spec.Script)
		if err != nil {
			return nil, err
		}
		s.script = script
	}

	if _, err := entity.NewMaze(s.world, cfg.Spec.Map, cfg.Spec.Mode, index); err != nil {
		return nil, fmt.Errorf("scene: %s: %w", cfg.Spec.Name, err)
	}

	playerSpec, err := s.agent(cfg.Spec.Player.Agent)
	if err != nil {
		return nil, err
	}
	s.player, err = entity.NewPlayer(s.world, index, playerSpec, cfg.Spec.Player.At.Point(), entity.PlayerOptions{
		Layer:   cfg.Spec.Player.Layer,
		Reverse: cfg.Reverse,
	})
	if err != nil {
		return nil, fmt.Errorf("scene: %s: %w", cfg.Spec.Name, err)
	}

	var navOpts []system.NavigationOption
	if cfg.Rand != nil {
		navOpts = append(navOpts, system.WithNavigationRand(cfg.Rand))
	}
	s.world.AddSystem(system.NewInputSystem(cfg.Input))
	s.world.AddSystem(system.NewNavigationSystem(s, navOpts...))
	s.world.AddSystem(system.NewCollisionSystem())
	s.world.AddSystem(eventSystem{scene: s})

	log.Printf("scene: %s: started on %s (%s)", cfg.Spec.Name, cfg.Spec.Map, cfg.Spec.Mode)
	return s, nil
}

func (s *Scene) agent(name string) (*prefabs.AgentSpec, error) {
	if spec, ok := s.specs[name]; ok {
		return spec, nil
	}
	spec, err := s.agents(name)
	if err != nil {
		return nil, fmt.Errorf("scene: agent %q: %w", name, err)
	}
	s.specs[name] = spec
	return spec, nil
}

// Update runs one tick. A finished scene no longer updates.
func (s *Scene) Update() {
	if s.finished || s.restart {
		return
	}
	if s.hold > 0 {
		s.hold--
		if s.hold == 0 {
			s.release()
		}
	}
	s.world.Update()
}

func (s *Scene) Index() *tmx.Object {
	return s.index
}

// Target is the tile of the player. It only counts as moving while the
// player is free to move.
func (s *Scene) Target() (common.Point, bool) {
	nav, ok := ecs.Get(s.world, s.player, component.NavigatorComponent.Kind())
	if !ok {
		return common.NoPoint, false
	}
	return nav.Point, nav.CanMove && s.hold == 0 && !s.finished
}

// Logic runs the tile rules for the tile the player just reached.
func (s *Scene) Logic() bool {
	if s.finished || s.hold > 0 {
		return false
	}
	nav, ok := ecs.Get(s.world, s.player, component.NavigatorComponent.Kind())
	if !ok {
		return false
	}

	if s.spec.Exit != nil && nav.Point == s.spec.Exit.Point() {
		s.Finish(s.spec.Finish)
		return false
	}

	name, ok := s.checkpoints[nav.Point]
	if !ok || s.fired[name] {
		return true
	}
	s.fired[name] = true
	s.fire(name, nav.Point)
	return !s.finished && s.hold == 0
}

func (s *Scene) fire(name string, at common.Point) {
	ev := s.spec.Events[name]
	log.Printf("scene: %s: event %q at %v", s.spec.Name, name, at)
	s.event = &ev

	if s.script != nil {
		if err := s.script.OnEvent(s, name); err != nil {
			log.Printf("scene: %s: script %s: %v", s.spec.Name, s.script.Name(), err)
		}
	}
	if ev.StopPlayer {
		s.StopPlayer(ev.Frames)
		s.focus = common.Point{X: ev.PosX, Y: ev.PosY}
		s.focusing = true
	}
}

// SwitchLayer moves the player onto another indexed layer.
func (s *Scene) SwitchLayer(layer string) error {
	if !s.index.HasLayer(layer) {
		return fmt.Errorf("scene: unknown layer %q", layer)
	}
	nav, ok := ecs.Get(s.world, s.player, component.NavigatorComponent.Kind())
	if !ok {
		return fmt.Errorf("scene: no player")
	}
	system.SetLayer(nav, s.index, layer)
	log.Printf("scene: %s: player now on %s", s.spec.Name, layer)
	return nil
}

// Spawn creates a pursuer of kind at a tile of layer.
func (s *Scene) Spawn(kind string, at common.Point, layer string) error {
	spec, err := s.agent(kind)
	if err != nil {
		return err
	}
	e, err := entity.NewPursuer(s.world, s.index, spec, at, entity.PursuerOptions{
		Layer:         layer,
		GenerateIndex: s.spec.GenerateIndex,
	})
	if err != nil {
		return fmt.Errorf("scene: spawn %s: %w", kind, err)
	}
	log.Printf("scene: %s: spawned %s entity=%v at %v", s.spec.Name, kind, e, at)
	return nil
}

// StopPlayer holds the player and drops its gesture for frames ticks.
func (s *Scene) StopPlayer(frames int) {
	if frames <= 0 {
		frames = DefaultStopFrames
	}
	if frames > s.hold {
		s.hold = frames
	}
	if swipe, ok := ecs.Get(s.world, s.player, component.SwipeComponent.Kind()); ok {
		swipe.Reset()
		swipe.Enabled = false
	}
}

func (s *Scene) release() {
	s.focusing = false
	s.event = nil
	if swipe, ok := ecs.Get(s.world, s.player, component.SwipeComponent.Kind()); ok {
		swipe.Reset()
		swipe.Enabled = true
	}
}

// Finish stops every agent and records the mode to continue with.
func (s *Scene) Finish(mode common.Mode) {
	if s.finished {
		return
	}
	s.finished = true
	s.next = mode
	s.stopAll()
	if swipe, ok := ecs.Get(s.world, s.player, component.SwipeComponent.Kind()); ok {
		swipe.Reset()
	}
	log.Printf("scene: %s: finished, next %s", s.spec.Name, mode)
}

func (s *Scene) stopAll() {
	ecs.ForEach(s.world, component.NavigatorComponent.Kind(), func(_ ecs.Entity, nav *component.Navigator) {
		nav.CanMove = false
	})
}

func (s *Scene) onCollision(ev ecs.CollisionEvent) {
	if s.restart {
		return
	}
	log.Printf("scene: %s: player %v caught by %v, restarting", s.spec.Name, ev.Player, ev.Pursuer)
	s.stopAll()
	s.restart = true
}

// SetAgentSpeed queues a new speed on every agent built from spec name.
func (s *Scene) SetAgentSpeed(name string, speed float64) int {
	if spec, ok := s.specs[name]; ok {
		spec.Speed = speed
	}
	n := 0
	ecs.ForEach2(s.world, component.NavigatorComponent.Kind(), component.AppearanceComponent.Kind(),
		func(_ ecs.Entity, nav *component.Navigator, look *component.Appearance) {
			if look.Name != name {
				return
			}
			system.QueueSpeed(nav, speed)
			n++
		})
	return n
}

func (s *Scene) World() *ecs.World {
	return s.world
}

func (s *Scene) Spec() *prefabs.SceneSpec {
	return s.spec
}

func (s *Scene) Player() ecs.Entity {
	return s.player
}

// PlayerLayer returns the layer the player walks on.
func (s *Scene) PlayerLayer() string {
	nav, ok := ecs.Get(s.world, s.player, component.NavigatorComponent.Kind())
	if !ok {
		return s.spec.Player.Layer
	}
	return nav.Layer
}

// Focus returns the tile the camera pans to during a stopping event.
func (s *Scene) Focus() (common.Point, bool) {
	return s.focus, s.focusing
}

// Event returns the event currently shown, if any.
func (s *Scene) Event() (prefabs.EventSpec, bool) {
	if s.event == nil {
		return prefabs.EventSpec{}, false
	}
	return *s.event, true
}

func (s *Scene) Held() bool {
	return s.hold > 0
}

// Checkpoints returns the tiles of events that have not fired yet.
func (s *Scene) Checkpoints() []common.Point {
	var out []common.Point
	for _, cp := range s.spec.Checkpoints {
		if !s.fired[cp.Event] {
			out = append(out, cp.At.Point())
		}
	}
	return out
}

// Finished reports whether the scene ended and the mode that follows.
func (s *Scene) Finished() (common.Mode, bool) {
	return s.next, s.finished
}

// RestartRequested reports whether the player was caught.
func (s *Scene) RestartRequested() bool {
	return s.restart
}

// eventSystem runs last and reacts to the events of the tick.
type eventSystem struct {
	scene *Scene
}

func (es eventSystem) Update(w *ecs.World) {
	for _, ev := range w.Events().Drain() {
		if ev.Type != ecs.EventCollision {
			continue
		}
		if data, ok := ev.Data.(ecs.CollisionEvent); ok {
			es.scene.onCollision(data)
		}
	}
}
