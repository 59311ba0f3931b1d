package astar

import (
	"math"

	"github.com/milk9111/evermaze/common"
)

// Heuristic estimates the remaining cost between two grid points.
type Heuristic func(a, b common.Point) int

func delta(a, b common.Point) (int, int) {
	return common.Abs(a.X - b.X), common.Abs(a.Y - b.Y)
}

// Manhattan is |dx|+|dy|. It is the default and never overestimates the
// 4-way step cost.
func Manhattan(a, b common.Point) int {
	dx, dy := delta(a, b)
	return dx + dy
}

func Euclidean(a, b common.Point) int {
	dx, dy := delta(a, b)
	return int(10 * math.Sqrt(float64(dx*dx+dy*dy)))
}

// Octagonal matches the 10/14 costs of 8-way movement.
func Octagonal(a, b common.Point) int {
	dx, dy := delta(a, b)
	return 10*(dx+dy) - 6*min(dx, dy)
}

// HeuristicByName resolves the names used by tools and prefab specs.
func HeuristicByName(name string) (Heuristic, bool) {
	switch name {
	case "", "manhattan":
		return Manhattan, true
	case "euclidean":
		return Euclidean, true
	case "octagonal":
		return Octagonal, true
	default:
		return nil, false
	}
}
