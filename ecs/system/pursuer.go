package system

import (
	"log"

	"github.com/milk9111/evermaze/astar"
	"github.com/milk9111/evermaze/common"
	"github.com/milk9111/evermaze/ecs"
	"github.com/milk9111/evermaze/ecs/component"
)

// ChaseIntensity is the glow of a chasing pursuer.
const ChaseIntensity = 50

func (s *NavigationSystem) updatePursuer(e ecs.Entity, nav *component.Navigator, tr *component.Transform) {
	target, targetMoving := s.scene.Target()
	if !nav.CanMove || !targetMoving || nav.Point == common.NoPoint {
		return
	}

	if nav.Movement == 0 {
		tr.SetVec(common.Round(tr.Vec()))
		nav.Point = s.scene.Index().Point(tr.Vec(), nav.Layer)
		if nav.Point == common.NoPoint {
			return
		}

		s.updateChase(e, nav, target)
		if len(nav.Queue) == 0 {
			s.replan(nav, target)
		}
		if len(nav.Queue) > 0 {
			next := nav.Queue[0]
			nav.Queue = nav.Queue[1:]
			nav.Direction = nav.Point.DirectionTo(next)
			nav.Movement = common.TileSize
		}
	}

	if nav.Movement != 0 {
		s.advance(nav, tr, false)
	}
}

// updateChase switches between chasing and wandering when the target
// crosses the chase radius. Each switch replans.
func (s *NavigationSystem) updateChase(e ecs.Entity, nav *component.Navigator, target common.Point) {
	distance := astar.Manhattan(nav.Point, target)
	radius := nav.Caps.ChaseDistance

	if distance <= radius && !nav.Chase {
		log.Printf("navigation: entity=%v chase on at distance %d", e, distance)
		nav.Chase = true
		s.replan(nav, target)
		nav.Intensity = ChaseIntensity
		return
	}
	if distance > radius && nav.Chase {
		log.Printf("navigation: entity=%v chase off at distance %d", e, distance)
		nav.Chase = false
		s.replan(nav, target)
		if nav.GenerateIndex < 100 {
			nav.Intensity = 0
		}
	}
}

// replan refills the queue with a fresh path. The first point of a path
// is the one the pursuer stands on and is dropped.
func (s *NavigationSystem) replan(nav *component.Navigator, target common.Point) {
	nav.Queue = nav.Queue[:0]
	if nav.Pathfinder == nil {
		return
	}

	dst := target
	if planner, ok := s.planners[nav.Caps.Planner]; ok && planner != nil {
		dst = planner(PlanContext{
			Navigator: nav,
			From:      nav.Point,
			To:        target,
			Index:     s.scene.Index(),
			Rand:      s.rng,
		})
	}

	limit := nav.Caps.WanderLimit
	if nav.Chase {
		limit = nav.Caps.ChaseLimit
	}
	path := nav.Pathfinder.FindPath(nav.Point, dst, limit)
	if len(path) > 0 {
		nav.Queue = append(nav.Queue, path[1:]...)
	}
}
