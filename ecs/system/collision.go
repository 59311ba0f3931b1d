package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/evermaze/common"
	"github.com/milk9111/evermaze/ecs"
	"github.com/milk9111/evermaze/ecs/component"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypePursuer
)

// DefaultBodyRadius is the sensor radius of an agent.
const DefaultBodyRadius = common.TileSize / 5.0

// CollisionReaction runs on a navigator that touched another agent.
type CollisionReaction func(nav *component.Navigator)

var collisionReactions = map[component.Variant]CollisionReaction{
	component.VariantPlayer: StopOnCollision,
}

// StopOnCollision freezes a caught player. The speed jump makes any
// remaining transit finish at once.
func StopOnCollision(nav *component.Navigator) {
	nav.CanMove = false
	nav.Speed = 1000
}

type shapeOwner struct {
	entity ecs.Entity
	player bool
}

type contact struct {
	player  ecs.Entity
	pursuer ecs.Entity
}

// CollisionSystem mirrors every agent into a Chipmunk2D space as a sensor
// circle and reports player to pursuer contacts. Pursuers never react to
// each other.
type CollisionSystem struct {
	space    *cp.Space
	shapes   map[*cp.Shape]shapeOwner
	bodies   map[ecs.Entity]*cp.Body
	contacts []contact
}

func NewCollisionSystem() *CollisionSystem {
	cs := &CollisionSystem{
		space:  cp.NewSpace(),
		shapes: make(map[*cp.Shape]shapeOwner),
		bodies: make(map[ecs.Entity]*cp.Body),
	}

	handler := cs.space.NewCollisionHandler(collisionTypePlayer, collisionTypePursuer)
	handler.UserData = cs
	handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*CollisionSystem)
		if !ok || sys == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		a, okA := sys.shapes[shapeA]
		b, okB := sys.shapes[shapeB]
		if !okA || !okB {
			return true
		}
		if !a.player {
			a, b = b, a
		}
		sys.contacts = append(sys.contacts, contact{player: a.entity, pursuer: b.entity})
		return true
	}
	return cs
}

func (cs *CollisionSystem) Space() *cp.Space {
	return cs.space
}

func (cs *CollisionSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}
	cs.sync(w)

	cs.contacts = cs.contacts[:0]
	cs.space.Step(1.0 / 60.0)

	for _, c := range cs.contacts {
		for _, e := range []ecs.Entity{c.player, c.pursuer} {
			nav, ok := ecs.Get(w, e, component.NavigatorComponent.Kind())
			if !ok {
				continue
			}
			if react := collisionReactions[nav.Variant]; react != nil {
				react(nav)
			}
		}
		w.Events().Push(ecs.Event{
			Type: ecs.EventCollision,
			Data: ecs.CollisionEvent{Player: c.player, Pursuer: c.pursuer},
		})
	}
}

func (cs *CollisionSystem) sync(w *ecs.World) {
	for e, body := range cs.bodies {
		if ecs.IsAlive(w, e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		cs.removeBody(e, body)
	}

	ecs.ForEach3(w, component.NavigatorComponent.Kind(), component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(),
		func(e ecs.Entity, nav *component.Navigator, tr *component.Transform, pb *component.PhysicsBody) {
			if pb.Body == nil {
				cs.createBody(e, nav, tr, pb)
			}
			pb.Body.SetPosition(cp.Vector{X: tr.X, Y: tr.Y})
			pb.Body.SetVelocity(0, 0)
		})
}

func (cs *CollisionSystem) createBody(e ecs.Entity, nav *component.Navigator, tr *component.Transform, pb *component.PhysicsBody) {
	radius := pb.Radius
	if radius <= 0 {
		radius = DefaultBodyRadius
		pb.Radius = radius
	}

	const mass = 1.0
	body := cp.NewBody(mass, cp.MomentForCircle(mass, 0, radius, cp.Vector{}))
	body.SetPosition(cp.Vector{X: tr.X, Y: tr.Y})

	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetSensor(true)
	if nav.Variant == component.VariantPlayer {
		shape.SetCollisionType(collisionTypePlayer)
	} else {
		shape.SetCollisionType(collisionTypePursuer)
	}

	cs.space.AddBody(body)
	cs.space.AddShape(shape)

	pb.Body = body
	pb.Shape = shape
	cs.shapes[shape] = shapeOwner{entity: e, player: nav.Variant == component.VariantPlayer}
	cs.bodies[e] = body
}

func (cs *CollisionSystem) removeBody(e ecs.Entity, body *cp.Body) {
	for shape, owner := range cs.shapes {
		if owner.entity != e {
			continue
		}
		cs.space.RemoveShape(shape)
		delete(cs.shapes, shape)
	}
	cs.space.RemoveBody(body)
	delete(cs.bodies, e)
}
