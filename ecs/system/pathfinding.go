package system

import (
	"math/rand/v2"

	"github.com/milk9111/evermaze/common"
	"github.com/milk9111/evermaze/ecs/component"
	"github.com/milk9111/evermaze/tmx"
)

// SpawnLayer is the indexed layer wandering pursuers pick targets from.
const SpawnLayer = "spawn"

// PlanContext is handed to a TargetPlanner when a pursuer replans.
type PlanContext struct {
	Navigator *component.Navigator
	From      common.Point
	To        common.Point
	Index     *tmx.Object
	Rand      *rand.Rand
}

// TargetPlanner picks the point a pursuer searches a path to.
type TargetPlanner func(ctx PlanContext) common.Point

func defaultPlanners() map[string]TargetPlanner {
	return map[string]TargetPlanner{
		"direct": PlanDirect,
		"ximois": PlanWander,
	}
}

// PlanDirect always heads for the target.
func PlanDirect(ctx PlanContext) common.Point {
	return ctx.To
}

// PlanWander heads for the target while chasing. Otherwise it heads for
// the target with a GenerateIndex percent chance, else for a random spawn
// point, and raises the chance for the next plan.
func PlanWander(ctx PlanContext) common.Point {
	nav := ctx.Navigator
	if nav.Chase {
		return ctx.To
	}

	target := ctx.To
	roll := 1
	if ctx.Rand != nil {
		roll = ctx.Rand.IntN(100) + 1
	}
	if roll >= nav.GenerateIndex && ctx.Index != nil && ctx.Index.HasLayer(SpawnLayer) {
		if entry, ok := ctx.Index.RandomEntry(SpawnLayer); ok {
			target = entry.Point
		}
	}
	nav.GenerateIndex += nav.Caps.GenerateStep
	return target
}
