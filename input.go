package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/evermaze/common"
)

// swipeThreshold is how far a drag must travel, in screen pixels, to
// count as a swipe.
const swipeThreshold = 24

// Input classifies keys, gamepad d-pads and mouse or touch drags into
// swipe directions. It implements system.InputSource.
type Input struct {
	dragging bool
	startX   int
	startY   int
	mouse    bool
	touch    ebiten.TouchID
	touches  []ebiten.TouchID
}

func NewInput() *Input {
	return &Input{}
}

func (i *Input) Poll() (common.Direction, bool) {
	dir := keyDirection()
	held := keyHeld()

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		if d := padDirection(id); d != common.None {
			dir = d
		}
		held = held || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftTop) ||
			ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftBottom) ||
			ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftLeft) ||
			ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftRight)
	}

	if d, down := i.drag(); d != common.None || down {
		if d != common.None {
			dir = d
		}
		held = held || down
	}
	return dir, held
}

// drag follows the first touch, or the left mouse button, and reports a
// swipe once it has moved far enough. A drag swipes at most once.
func (i *Input) drag() (common.Direction, bool) {
	x, y, down := 0, 0, false

	i.touches = inpututil.AppendJustPressedTouchIDs(i.touches[:0])
	switch {
	case len(i.touches) > 0 && !i.dragging:
		i.touch = i.touches[0]
		i.mouse = false
		x, y = ebiten.TouchPosition(i.touch)
		i.begin(x, y)
		return common.None, true
	case i.dragging && !i.mouse && !inpututil.IsTouchJustReleased(i.touch):
		x, y = ebiten.TouchPosition(i.touch)
		down = true
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		x, y = ebiten.CursorPosition()
		i.mouse = true
		i.begin(x, y)
		return common.None, true
	case i.dragging && i.mouse && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		x, y = ebiten.CursorPosition()
		down = true
	default:
		i.dragging = false
		return common.None, false
	}

	d := classify(x-i.startX, y-i.startY)
	if d != common.None {
		i.begin(x, y)
	}
	return d, down
}

func (i *Input) begin(x, y int) {
	i.dragging = true
	i.startX = x
	i.startY = y
}

// classify turns a screen space drag into a direction along its dominant
// axis. Screen y grows downwards.
func classify(dx, dy int) common.Direction {
	if math.Hypot(float64(dx), float64(dy)) < swipeThreshold {
		return common.None
	}
	if common.Abs(dx) >= common.Abs(dy) {
		if dx > 0 {
			return common.Right
		}
		return common.Left
	}
	if dy > 0 {
		return common.Down
	}
	return common.Up
}

var directionKeys = []struct {
	dir  common.Direction
	keys []ebiten.Key
}{
	{common.Up, []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}},
	{common.Down, []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}},
	{common.Left, []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}},
	{common.Right, []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}},
}

func keyDirection() common.Direction {
	for _, dk := range directionKeys {
		for _, k := range dk.keys {
			if inpututil.IsKeyJustPressed(k) {
				return dk.dir
			}
		}
	}
	return common.None
}

func keyHeld() bool {
	for _, dk := range directionKeys {
		for _, k := range dk.keys {
			if ebiten.IsKeyPressed(k) {
				return true
			}
		}
	}
	return false
}

func padDirection(id ebiten.GamepadID) common.Direction {
	switch {
	case inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonLeftTop):
		return common.Up
	case inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonLeftBottom):
		return common.Down
	case inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonLeftLeft):
		return common.Left
	case inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonLeftRight):
		return common.Right
	}
	return common.None
}
