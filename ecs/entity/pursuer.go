package entity

import (
	"fmt"

	"github.com/milk9111/evermaze/astar"
	"github.com/milk9111/evermaze/common"
	"github.com/milk9111/evermaze/ecs"
	"github.com/milk9111/evermaze/ecs/component"
	"github.com/milk9111/evermaze/ecs/system"
	"github.com/milk9111/evermaze/prefabs"
	"github.com/milk9111/evermaze/tmx"
)

// PursuerOptions are the scene settings a pursuer is spawned with.
type PursuerOptions struct {
	Layer string
	// GenerateIndex replaces the spec value when positive.
	GenerateIndex int
}

// NewPursuer spawns a path planning agent at a tile center. Its path
// finder is sized to the map and walled with the blocked cells of its
// layer.
func NewPursuer(w *ecs.World, index *tmx.Object, spec *prefabs.AgentSpec, at common.Point, opts PursuerOptions) (ecs.Entity, error) {
	if spec == nil || spec.IsPlayer() {
		return 0, fmt.Errorf("pursuer: spec is not a pursuer")
	}
	pos, err := placement(index, at, opts.Layer)
	if err != nil {
		return 0, fmt.Errorf("pursuer: %w", err)
	}

	width, height := index.Size()
	gen := astar.NewGenerator(width, height)
	gen.SetDiagonalMovement(spec.Diagonal)
	if spec.Heuristic != "" {
		h, ok := astar.HeuristicByName(spec.Heuristic)
		if !ok {
			return 0, fmt.Errorf("pursuer: unknown heuristic %q", spec.Heuristic)
		}
		gen.SetHeuristic(h)
	}

	generate := spec.GenerateIndex
	if opts.GenerateIndex > 0 {
		generate = opts.GenerateIndex
	}

	nav := &component.Navigator{
		Variant: component.VariantPursuer,
		Caps: component.Capabilities{
			Speed:         spec.Speed,
			ChaseDistance: spec.ChaseDistance,
			ChaseLimit:    spec.ChaseLimit,
			WanderLimit:   spec.WanderLimit,
			GenerateIndex: spec.GenerateIndex,
			GenerateStep:  spec.GenerateStep,
			Planner:       spec.Planner,
		},
		Point:         at,
		Direction:     common.None,
		Speed:         spec.Speed,
		CanMove:       true,
		GenerateIndex: generate,
		Pathfinder:    gen,
	}
	// a pursuer that always heads for the target glows from the start
	if generate >= 100 {
		nav.Intensity = system.ChaseIntensity
	}
	system.SetLayer(nav, index, opts.Layer)

	return buildEntity(w, spec.Name,
		add(component.PursuerTagComponent.Kind(), &component.PursuerTag{}),
		add(component.NavigatorComponent.Kind(), nav),
		add(component.TransformComponent.Kind(), &component.Transform{X: pos.X, Y: pos.Y}),
		add(component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Radius: spec.Radius}),
		add(component.AppearanceComponent.Kind(), appearance(spec.Name, spec.Color, spec.Radius)),
	)
}
