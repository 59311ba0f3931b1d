package system

import (
	"github.com/milk9111/evermaze/common"
	"github.com/milk9111/evermaze/ecs"
	"github.com/milk9111/evermaze/ecs/component"
)

// InputSource yields gestures already classified into directions.
type InputSource interface {
	// Poll returns the direction swiped this frame, common.None if there
	// was no new swipe, and whether a touch is currently held.
	Poll() (common.Direction, bool)
}

type InputSystem struct {
	source InputSource
}

func NewInputSystem(source InputSource) *InputSystem {
	return &InputSystem{source: source}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || i.source == nil || w == nil {
		return
	}

	dir, down := i.source.Poll()
	ecs.ForEach(w, component.SwipeComponent.Kind(), func(_ ecs.Entity, swipe *component.Swipe) {
		// a disabled gesture drops touches until the player re-enables it
		if !swipe.Enabled {
			return
		}
		swipe.TouchDown = down
		if dir == common.None {
			return
		}
		d := dir
		if swipe.Reverse {
			d = d.Opposite()
		}
		swipe.Direction = d
	})
}
