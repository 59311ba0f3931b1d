package system

import (
	"github.com/milk9111/evermaze/common"
	"github.com/milk9111/evermaze/ecs/component"
)

// FrameSkipping is how many frames a player waits at a junction while
// the input is held in the direction it already faces.
const FrameSkipping = 10

// toleranceTicks is the length of the early-turn window at the start of
// a transit, in ticks.
const toleranceTicks = 6

func (s *NavigationSystem) updatePlayer(nav *component.Navigator, tr *component.Transform, swipe *component.Swipe) {
	if !nav.CanMove {
		return
	}
	dir := swipe.Direction
	if dir == common.None {
		return
	}
	override := nav.Direction != dir

	switch {
	case override && nav.Movement != 0 && !nav.OverrideSwipe && nav.Direction != common.None && dir == nav.Direction.Opposite():
		// turn around mid tile
		nav.OverrideSwipe = true
		nav.Movement = common.TileSize - nav.Movement
		nav.Direction = dir
	case override && nav.Movement != 0 && !nav.OverrideSwipe && s.withinTolerance(nav, dir):
		// go back to the tile just left and take the turn from there
		nav.OverrideSwipe = true
		nav.Movement = common.TileSize - nav.Movement
		nav.Direction = nav.Direction.Opposite()
		swipe.TouchDown = false
		swipe.Enabled = false
	case nav.Movement <= 0:
		nav.OverrideSwipe = false
		tr.SetVec(common.Round(tr.Vec()))
		if nav.Precision == FrameSkipping {
			swipe.Enabled = true
		}
		s.updateNeighbours(nav, tr)
		if s.updateDirection(nav, swipe, dir) {
			nav.Movement += common.TileSize
		}
	}

	if nav.Movement != 0 {
		s.advance(nav, tr, true)
	}
}

// withinTolerance reports whether a turn into dir may still be taken from
// the tile the player is leaving.
func (s *NavigationSystem) withinTolerance(nav *component.Navigator, dir common.Direction) bool {
	if nav.Movement < common.TileSize-nav.Speed*toleranceTicks {
		return false
	}
	return s.scene.Index().ContainsPoint(nav.Point.Step(dir), nav.Layer)
}

func (s *NavigationSystem) updateNeighbours(nav *component.Navigator, tr *component.Transform) {
	index := s.scene.Index()
	nav.Point = index.Point(tr.Vec(), nav.Layer)
	for i, d := range common.Directions {
		entry, _ := index.Entry(nav.Point.Step(d), nav.Layer)
		nav.Neighbours[i] = entry
	}
}

// updateDirection picks the facing for the next transit. It returns false
// while the player is held at a junction.
func (s *NavigationSystem) updateDirection(nav *component.Navigator, swipe *component.Swipe, dir common.Direction) bool {
	exits := 0
	for _, n := range nav.Neighbours {
		if n.Point != common.NoPoint {
			exits++
		}
	}
	if exits >= 3 && swipe.TouchDown && swipe.Direction == nav.Direction && nav.Precision > 0 {
		nav.Precision--
		return false
	}
	nav.Precision = FrameSkipping
	turn(nav, dir)
	return true
}

// turn faces dir if it is open, otherwise keeps going the current way, or
// stops when that is blocked too.
func turn(nav *component.Navigator, dir common.Direction) {
	if dir == common.None {
		nav.Direction = common.None
		return
	}
	if nav.Neighbours[int(dir)-1].Point != common.NoPoint {
		nav.Direction = dir
		return
	}
	if nav.Direction == dir {
		nav.Direction = common.None
		return
	}
	turn(nav, nav.Direction)
}
