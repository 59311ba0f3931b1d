package entity

import (
	"fmt"

	"github.com/milk9111/evermaze/common"
	"github.com/milk9111/evermaze/ecs"
	"github.com/milk9111/evermaze/ecs/component"
	"github.com/milk9111/evermaze/tmx"
)

type componentAdder func(w *ecs.World, e ecs.Entity) error

func add[T any](kind component.ComponentKind[T], value *T) componentAdder {
	return func(w *ecs.World, e ecs.Entity) error {
		return ecs.Add(w, e, kind, value)
	}
}

// buildEntity creates an entity from adders run in order. A failing adder
// destroys the half built entity.
func buildEntity(w *ecs.World, name string, adders ...componentAdder) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	e := ecs.CreateEntity(w)
	for i, adder := range adders {
		if err := adder(w, e); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: component %d: %w", name, i, err)
		}
	}
	return e, nil
}

// placement resolves the pixel position of a point on an indexed layer.
func placement(index *tmx.Object, at common.Point, layer string) (common.Vec2, error) {
	if index == nil {
		return common.NoVec, fmt.Errorf("entity: nil index")
	}
	if !index.HasLayer(layer) {
		return common.NoVec, fmt.Errorf("entity: unknown layer %q", layer)
	}
	if !index.ContainsPoint(at, layer) {
		return common.NoVec, fmt.Errorf("entity: %v is not walkable on %q", at, layer)
	}
	return index.Position(at, layer), nil
}

func appearance(name, colorName string, radius float64) *component.Appearance {
	return &component.Appearance{Name: name, Color: colorName, Radius: radius}
}
