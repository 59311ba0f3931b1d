package entity

import (
	"fmt"

	"github.com/milk9111/evermaze/common"
	"github.com/milk9111/evermaze/ecs"
	"github.com/milk9111/evermaze/ecs/component"
	"github.com/milk9111/evermaze/ecs/system"
	"github.com/milk9111/evermaze/prefabs"
	"github.com/milk9111/evermaze/tmx"
)

// PlayerOptions are the scene settings a player is created with.
type PlayerOptions struct {
	Layer   string
	Reverse bool
}

// NewPlayer creates the swipe driven agent at a tile center.
func NewPlayer(w *ecs.World, index *tmx.Object, spec *prefabs.AgentSpec, at common.Point, opts PlayerOptions) (ecs.Entity, error) {
	if spec == nil || !spec.IsPlayer() {
		return 0, fmt.Errorf("player: spec is not a player")
	}
	pos, err := placement(index, at, opts.Layer)
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}

	nav := &component.Navigator{
		Variant: component.VariantPlayer,
		Caps: component.Capabilities{
			Speed:       spec.Speed,
			InputDriven: true,
		},
		Layer:     opts.Layer,
		Point:     at,
		Direction: common.None,
		Speed:     spec.Speed,
		CanMove:   true,
		Precision: system.FrameSkipping,
	}

	return buildEntity(w, spec.Name,
		add(component.PlayerTagComponent.Kind(), &component.PlayerTag{}),
		add(component.NavigatorComponent.Kind(), nav),
		add(component.TransformComponent.Kind(), &component.Transform{X: pos.X, Y: pos.Y}),
		add(component.SwipeComponent.Kind(), &component.Swipe{Enabled: true, Reverse: opts.Reverse}),
		add(component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Radius: spec.Radius}),
		add(component.AppearanceComponent.Kind(), appearance(spec.Name, spec.Color, spec.Radius)),
	)
}
