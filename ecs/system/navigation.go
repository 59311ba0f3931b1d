package system

import (
	"math/rand/v2"

	"github.com/milk9111/evermaze/common"
	"github.com/milk9111/evermaze/ecs"
	"github.com/milk9111/evermaze/ecs/component"
	"github.com/milk9111/evermaze/tmx"
)

// Scene is what navigating agents may ask of the scene they live in.
type Scene interface {
	// Index returns the coordinate index of the loaded map.
	Index() *tmx.Object
	// Target returns the point pursuers steer to and whether its owner
	// may currently move.
	Target() (common.Point, bool)
	// Logic runs the scene rules when the player starts a new tile. A
	// false result holds the player at the tile center.
	Logic() bool
}

// NavigationSystem drives every navigator one tick: the players first,
// then the pursuers.
type NavigationSystem struct {
	scene    Scene
	rng      *rand.Rand
	planners map[string]TargetPlanner
}

type NavigationOption func(*NavigationSystem)

// WithNavigationRand replaces the randomly seeded PRNG used by planners.
func WithNavigationRand(rng *rand.Rand) NavigationOption {
	return func(s *NavigationSystem) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithPlanner registers a target planner under name.
func WithPlanner(name string, planner TargetPlanner) NavigationOption {
	return func(s *NavigationSystem) {
		s.planners[name] = planner
	}
}

func NewNavigationSystem(scene Scene, opts ...NavigationOption) *NavigationSystem {
	s := &NavigationSystem{
		scene:    scene,
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		planners: defaultPlanners(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *NavigationSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.scene == nil || s.scene.Index() == nil {
		return
	}

	ecs.ForEach3(w, component.NavigatorComponent.Kind(), component.TransformComponent.Kind(), component.SwipeComponent.Kind(),
		func(_ ecs.Entity, nav *component.Navigator, tr *component.Transform, swipe *component.Swipe) {
			if nav.Variant == component.VariantPlayer {
				s.updatePlayer(nav, tr, swipe)
			}
		})

	ecs.ForEach2(w, component.NavigatorComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, nav *component.Navigator, tr *component.Transform) {
			if nav.Variant == component.VariantPursuer {
				s.updatePursuer(e, nav, tr)
			}
		})
}

// advance runs one tick of a transit. At the start of a transit the
// queued speed override is applied, after the scene rules when consult
// is set. A navigator without a facing becomes idle without moving.
func (s *NavigationSystem) advance(nav *component.Navigator, tr *component.Transform, consult bool) {
	if nav.Movement == common.TileSize {
		if consult && !s.scene.Logic() {
			return
		}
		if nav.SpeedOverride != 0 {
			nav.Speed = nav.SpeedOverride
			nav.SpeedOverride = 0
		}
	}

	if nav.Direction == common.None {
		nav.Movement = 0
		return
	}
	nav.Movement -= nav.Speed
	tr.SetVec(tr.Vec().Move(nav.Direction, nav.Speed))
}

// SetLayer moves a navigator onto layer and swaps its wall set to the
// blocked cells of that layer.
func SetLayer(nav *component.Navigator, index *tmx.Object, layer string) {
	nav.Layer = layer
	if nav.Pathfinder != nil {
		nav.Pathfinder.SetCollisions(index.Collisions(layer))
	}
}

// QueueSpeed changes the speed of a navigator from its next transit on.
func QueueSpeed(nav *component.Navigator, speed float64) {
	if speed <= 0 || speed == nav.Speed {
		return
	}
	nav.SpeedOverride = speed
}
