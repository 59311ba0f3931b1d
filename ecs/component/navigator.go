package component

import (
	"github.com/milk9111/evermaze/astar"
	"github.com/milk9111/evermaze/common"
	"github.com/milk9111/evermaze/tmx"
)

// Variant selects the movement behavior of a navigator.
type Variant int

const (
	VariantPlayer Variant = iota
	VariantPursuer
)

func (v Variant) String() string {
	switch v {
	case VariantPlayer:
		return "player"
	case VariantPursuer:
		return "pursuer"
	default:
		return "unknown"
	}
}

// Capabilities are the per-kind tunables of a navigator, loaded from the
// agent prefab.
type Capabilities struct {
	Speed float64
	// ChaseDistance is the manhattan radius that switches a pursuer into
	// chase mode.
	ChaseDistance int
	// ChaseLimit and WanderLimit cap the planned path length per mode.
	ChaseLimit  int
	WanderLimit int
	// GenerateIndex is the starting percent chance of wandering straight
	// at the target. GenerateStep is added on every wander plan.
	GenerateIndex int
	GenerateStep  int
	InputDriven   bool
	// Planner names the target planner of a pursuer.
	Planner string
}

// Navigator is the tile-by-tile movement state of an agent.
type Navigator struct {
	Variant Variant
	Caps    Capabilities

	Layer string
	Point common.Point
	// Movement counts down from common.TileSize to 0 across a transit.
	Movement  float64
	Direction common.Direction
	Speed     float64
	// SpeedOverride is applied at the start of the next transit. Zero
	// means none queued.
	SpeedOverride float64
	CanMove       bool

	// Queue holds the upcoming points of a pursuer.
	Queue         []common.Point
	Chase         bool
	GenerateIndex int
	// Intensity drives the glow of a pursuer, raised while chasing.
	Intensity float64

	// Neighbours caches the walkable neighbour entries of a player, in
	// common.Directions order.
	Neighbours [4]tmx.Entry
	// Precision counts the frames a player waits at a junction while the
	// input is held in the current direction.
	Precision     int
	OverrideSwipe bool

	Pathfinder *astar.Generator
}

var NavigatorComponent = NewComponent[Navigator]()
