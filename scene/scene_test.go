package scene

import (
	"math/rand/v2"
	"testing"

	"github.com/milk9111/evermaze/common"
	"github.com/milk9111/evermaze/ecs"
	"github.com/milk9111/evermaze/ecs/component"
	"github.com/milk9111/evermaze/prefabs"
	"github.com/milk9111/evermaze/tmx"
)

func newControls(t *testing.T, input *followInput, script *Script) *Scene {
	t.Helper()
	spec, err := prefabs.LoadSceneSpec("controls")
	if err != nil {
		t.Fatalf("load scene spec: %v", err)
	}
	cfg := Config{
		Spec:   spec,
		Cache:  NewCache(tmx.WithOrigin(common.Vec2{X: 540, Y: 960}), tmx.WithRand(rand.New(rand.NewPCG(3, 4)))),
		Script: script,
		Rand:   rand.New(rand.NewPCG(1, 2)),
	}
	if input != nil {
		cfg.Input = input
	}
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("new scene: %v", err)
	}
	if input != nil {
		input.scene = s
	}
	return s
}

// followInput swipes right along the bottom row, then up.
type followInput struct {
	scene *Scene
}

func (f *followInput) Poll() (common.Direction, bool) {
	if f.scene == nil {
		return common.None, false
	}
	nav := playerNav(f.scene)
	if nav.Point.X < 12 {
		return common.Right, false
	}
	return common.Up, false
}

func playerNav(s *Scene) *component.Navigator {
	nav, _ := ecs.Get(s.World(), s.Player(), component.NavigatorComponent.Kind())
	return nav
}

func pursuers(s *Scene) []*component.Navigator {
	var out []*component.Navigator
	ecs.ForEach(s.World(), component.NavigatorComponent.Kind(), func(_ ecs.Entity, nav *component.Navigator) {
		if nav.Variant == component.VariantPursuer {
			out = append(out, nav)
		}
	})
	return out
}

func TestNewControlsScene(t *testing.T) {
	s := newControls(t, nil, nil)

	target, moving := s.Target()
	if target != (common.Point{X: 0, Y: 24}) || !moving {
		t.Fatalf("target = %v moving=%v", target, moving)
	}
	if s.PlayerLayer() != "controls_one" {
		t.Fatalf("layer = %q", s.PlayerLayer())
	}
	tr, _ := ecs.Get(s.World(), s.Player(), component.TransformComponent.Kind())
	if tr.Vec() != s.Index().Position(common.Point{X: 0, Y: 24}, "controls_one") {
		t.Fatalf("player at %+v", tr)
	}
	if len(s.Checkpoints()) != 2 {
		t.Fatalf("checkpoints = %v", s.Checkpoints())
	}
	if _, _, ok := ecs.First(s.World(), component.MazeComponent.Kind()); !ok {
		t.Fatalf("missing maze entity")
	}
}

func TestCheckpointFiresOnce(t *testing.T) {
	s := newControls(t, nil, nil)
	nav := playerNav(s)
	nav.Point = common.Point{X: 12, Y: 20}

	if s.Logic() {
		t.Fatalf("stopping event let the player through")
	}
	if nav.Layer != "controls_two" {
		t.Fatalf("layer = %q, want controls_two", nav.Layer)
	}
	if focus, ok := s.Focus(); !ok || focus != (common.Point{X: 24, Y: 6}) {
		t.Fatalf("focus = %v %v", focus, ok)
	}
	if ev, ok := s.Event(); !ok || ev.Title != "Exit" {
		t.Fatalf("event = %+v", ev)
	}
	swipe, _ := ecs.Get(s.World(), s.Player(), component.SwipeComponent.Kind())
	if swipe.Enabled {
		t.Fatalf("swipe still enabled while held")
	}
	if _, moving := s.Target(); moving {
		t.Fatalf("held player counts as moving")
	}

	for i := 0; i < 89; i++ {
		s.Update()
	}
	if !s.Held() || s.Logic() {
		t.Fatalf("released early")
	}
	s.Update()
	if s.Held() || !swipe.Enabled {
		t.Fatalf("not released after the stop frames")
	}
	if _, ok := s.Focus(); ok {
		t.Fatalf("camera still panned")
	}
	if !s.Logic() {
		t.Fatalf("checkpoint fired twice")
	}
	if len(s.Checkpoints()) != 1 {
		t.Fatalf("checkpoints = %v", s.Checkpoints())
	}
}

func TestBewareSpawnsPursuers(t *testing.T) {
	s := newControls(t, nil, nil)
	playerNav(s).Point = common.Point{X: 3, Y: 7}

	s.Logic()

	got := pursuers(s)
	if len(got) != 2 {
		t.Fatalf("%d pursuers spawned", len(got))
	}
	want := map[common.Point]bool{{X: 21, Y: 18}: true, {X: 23, Y: 18}: true}
	for _, nav := range got {
		if !want[nav.Point] || nav.Layer != "controls_two" {
			t.Fatalf("pursuer at %v on %q", nav.Point, nav.Layer)
		}
		if nav.GenerateIndex != 999 || nav.Intensity != 50 {
			t.Fatalf("pursuer = %+v", nav)
		}
	}
	if state := s.script.State(); state["beware"] != true {
		t.Fatalf("script state = %v", state)
	}
}

func TestExitFinishes(t *testing.T) {
	s := newControls(t, nil, nil)
	if err := s.Spawn("ximois", common.Point{X: 21, Y: 18}, "controls_two"); err != nil {
		t.Fatalf("spawn: %v", err)
	}
	playerNav(s).Point = common.Point{X: 24, Y: 6}

	if s.Logic() {
		t.Fatalf("exit let the player through")
	}
	mode, done := s.Finished()
	if !done || mode != common.Modes {
		t.Fatalf("finished = %v %v", mode, done)
	}
	ecs.ForEach(s.World(), component.NavigatorComponent.Kind(), func(_ ecs.Entity, nav *component.Navigator) {
		if nav.CanMove {
			t.Fatalf("%v still moves", nav.Variant)
		}
	})
}

func TestCollisionRestarts(t *testing.T) {
	s := newControls(t, nil, nil)
	if err := s.Spawn("ximois", common.Point{X: 0, Y: 24}, "controls_one"); err != nil {
		t.Fatalf("spawn: %v", err)
	}

	s.Update()

	if !s.RestartRequested() {
		t.Fatalf("no restart after the player was caught")
	}
	if nav := playerNav(s); nav.CanMove || nav.Speed != 1000 {
		t.Fatalf("player = %+v", nav)
	}
}

func TestWalkToFirstCheckpoint(t *testing.T) {
	input := &followInput{}
	s := newControls(t, input, nil)

	for i := 0; i < 1000 && !s.Held(); i++ {
		s.Update()
	}
	if !s.Held() {
		t.Fatalf("player never reached the checkpoint, at %v", playerNav(s).Point)
	}
	nav := playerNav(s)
	if nav.Point != (common.Point{X: 12, Y: 20}) || nav.Layer != "controls_two" {
		t.Fatalf("player at %v on %q", nav.Point, nav.Layer)
	}
}

func TestSetAgentSpeed(t *testing.T) {
	s := newControls(t, nil, nil)
	if n := s.SetAgentSpeed("ivory", 12); n != 1 {
		t.Fatalf("updated %d agents", n)
	}
	if nav := playerNav(s); nav.SpeedOverride != 12 {
		t.Fatalf("override = %v", nav.SpeedOverride)
	}
	if n := s.SetAgentSpeed("ximois", 8); n != 0 {
		t.Fatalf("updated %d pursuers before any spawned", n)
	}
}

func TestCustomScript(t *testing.T) {
	script, err := CompileScript("custom", []byte(`
on_event := func(engine, event, state) {
	engine.finish("escape")
}
`))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	s := newControls(t, nil, script)
	playerNav(s).Point = common.Point{X: 3, Y: 7}

	s.Logic()

	if mode, done := s.Finished(); !done || mode != common.Escape {
		t.Fatalf("finished = %v %v", mode, done)
	}
}

func TestScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"no handler", `x := 1`},
		{"syntax", `on_event := func(engine, event, state) {`},
		{"runtime", "on_event := func(engine, event, state) {}\ny := 1 / 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := CompileScript(tt.name, []byte(tt.src)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestScriptRuntimePanicIsLogged(t *testing.T) {
	script, err := CompileScript("divide", []byte(`
on_event := func(engine, event, state) {
	z := 0
	state.x = 1 / z
}
`))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	s := newControls(t, nil, script)
	playerNav(s).Point = common.Point{X: 3, Y: 7}

	if s.Logic() {
		t.Fatalf("logic kept the player moving through a stopping event")
	}
	if !s.Held() {
		t.Fatalf("beware event did not hold the player")
	}
	if _, ok := script.State()["x"]; ok {
		t.Fatalf("state = %v", script.State())
	}
	if err := script.OnEvent(s, "beware"); err == nil {
		t.Fatalf("expected error from a dividing handler")
	}
}

func TestScriptSpawnErrorIsRecovered(t *testing.T) {
	script, err := CompileScript("bad_spawn", []byte(`
on_event := func(engine, event, state) {
	state.ok = engine.spawn("ximois", 0, 0, "controls_two")
}
`))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	s := newControls(t, nil, script)
	playerNav(s).Point = common.Point{X: 3, Y: 7}

	s.Logic()

	if len(pursuers(s)) != 0 {
		t.Fatalf("spawned on a wall")
	}
	if state := script.State(); state["ok"] != false {
		t.Fatalf("state = %v", state)
	}
}
