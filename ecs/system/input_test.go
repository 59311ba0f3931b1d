package system

import (
	"testing"

	"github.com/milk9111/evermaze/common"
	"github.com/milk9111/evermaze/ecs"
	"github.com/milk9111/evermaze/ecs/component"
)

type scriptedSource struct {
	dir  common.Direction
	down bool
}

func (s *scriptedSource) Poll() (common.Direction, bool) {
	return s.dir, s.down
}

func TestInputSystem(t *testing.T) {
	tests := []struct {
		name     string
		swipe    component.Swipe
		poll     scriptedSource
		wantDir  common.Direction
		wantDown bool
	}{
		{"swipe", component.Swipe{Enabled: true}, scriptedSource{common.Up, true}, common.Up, true},
		{"reverse", component.Swipe{Enabled: true, Reverse: true}, scriptedSource{common.Left, false}, common.Right, false},
		{"keeps last swipe", component.Swipe{Enabled: true, Direction: common.Down}, scriptedSource{common.None, true}, common.Down, true},
		{"disabled", component.Swipe{Direction: common.Down}, scriptedSource{common.Up, true}, common.Down, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e := ecs.CreateEntity(w)
			swipe := tt.swipe
			if err := ecs.Add(w, e, component.SwipeComponent.Kind(), &swipe); err != nil {
				t.Fatalf("add swipe: %v", err)
			}
			src := tt.poll

			NewInputSystem(&src).Update(w)

			if swipe.Direction != tt.wantDir || swipe.TouchDown != tt.wantDown {
				t.Fatalf("swipe = %+v", swipe)
			}
		})
	}
}

func TestInputSystemReversesEachSwipe(t *testing.T) {
	w := ecs.NewWorld()
	swipes := []*component.Swipe{
		{Enabled: true, Reverse: true},
		{Enabled: true, Reverse: true},
		{Enabled: true},
	}
	for i, swipe := range swipes {
		if err := ecs.Add(w, ecs.CreateEntity(w), component.SwipeComponent.Kind(), swipe); err != nil {
			t.Fatalf("add swipe %d: %v", i, err)
		}
	}

	NewInputSystem(&scriptedSource{dir: common.Left}).Update(w)

	want := []common.Direction{common.Right, common.Right, common.Left}
	for i, swipe := range swipes {
		if swipe.Direction != want[i] {
			t.Fatalf("swipe %d direction = %v, want %v", i, swipe.Direction, want[i])
		}
	}
}
