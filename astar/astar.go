package astar

import "github.com/milk9111/evermaze/common"

const (
	straightCost = 10
	diagonalCost = 14
)

var directions = [8]common.Point{
	{X: 0, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: -1}, {X: -1, Y: 0},
	{X: -1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}, {X: 1, Y: -1},
}

// PathNode is the search record of one visited grid point. Parent is an
// index into the arena of the search that created it, -1 for the root.
type PathNode struct {
	Point  common.Point
	G      int
	H      int
	Parent int
	closed bool
}

func (n *PathNode) Score() int {
	return n.G + n.H
}

// Generator runs A* searches over a bounded grid with a wall set. A
// Generator is owned by a single agent and is not safe for concurrent use.
type Generator struct {
	width      int
	height     int
	heuristic  Heuristic
	directions int
	walls      map[common.Point]struct{}
}

func NewGenerator(width, height int) *Generator {
	return &Generator{
		width:      width,
		height:     height,
		heuristic:  Manhattan,
		directions: 4,
		walls:      make(map[common.Point]struct{}),
	}
}

func (g *Generator) SetWorldSize(width, height int) {
	g.width = width
	g.height = height
}

func (g *Generator) WorldSize() (int, int) {
	return g.width, g.height
}

// SetDiagonalMovement enables the four diagonal offsets.
func (g *Generator) SetDiagonalMovement(enable bool) {
	if enable {
		g.directions = 8
		return
	}
	g.directions = 4
}

func (g *Generator) SetHeuristic(h Heuristic) {
	if h == nil {
		h = Manhattan
	}
	g.heuristic = h
}

// SetCollisions replaces the wall set.
func (g *Generator) SetCollisions(points []common.Point) {
	g.walls = make(map[common.Point]struct{}, len(points))
	for _, p := range points {
		g.walls[p] = struct{}{}
	}
}

func (g *Generator) AddCollision(p common.Point) {
	g.walls[p] = struct{}{}
}

func (g *Generator) RemoveCollision(p common.Point) {
	delete(g.walls, p)
}

func (g *Generator) ClearCollisions() {
	clear(g.walls)
}

// DetectCollision reports whether p is outside the world or a wall.
func (g *Generator) DetectCollision(p common.Point) bool {
	if p.X < 0 || p.X >= g.width || p.Y < 0 || p.Y >= g.height {
		return true
	}
	_, ok := g.walls[p]
	return ok
}

// FindPath searches from src to dst and returns the visited points in
// order, src first. When dst is unreachable the path ends at the last
// node the search expanded. Paths longer than limit are cut down to
// their first limit points; limit <= 0 disables the cap.
//
// The open list keeps insertion order and the lowest G+H is picked by a
// linear scan where the first node found wins ties. Path choices on
// equal scores depend on this order.
func (g *Generator) FindPath(src, dst common.Point, limit int) []common.Point {
	arena := make([]PathNode, 0, 64)
	byPoint := make(map[common.Point]int, 64)
	open := make([]int, 0, 32)

	arena = append(arena, PathNode{Point: src, H: g.heuristic(src, dst), Parent: -1})
	byPoint[src] = 0
	open = append(open, 0)

	current := 0
	for len(open) > 0 {
		best := 0
		for i := 1; i < len(open); i++ {
			if arena[open[i]].Score() < arena[open[best]].Score() {
				best = i
			}
		}
		current = open[best]
		if arena[current].Point == dst {
			break
		}

		open = append(open[:best], open[best+1:]...)
		arena[current].closed = true

		for i := 0; i < g.directions; i++ {
			next := arena[current].Point.Add(directions[i])
			if g.DetectCollision(next) {
				continue
			}
			idx, seen := byPoint[next]
			if seen && arena[idx].closed {
				continue
			}

			cost := straightCost
			if i >= 4 {
				cost = diagonalCost
			}
			total := arena[current].G + cost

			if !seen {
				arena = append(arena, PathNode{
					Point:  next,
					G:      total,
					H:      g.heuristic(next, dst),
					Parent: current,
				})
				byPoint[next] = len(arena) - 1
				open = append(open, len(arena)-1)
			} else if total < arena[idx].G {
				arena[idx].Parent = current
				arena[idx].G = total
			}
		}
	}

	var path []common.Point
	for i := current; i != -1; i = arena[i].Parent {
		path = append(path, arena[i].Point)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	if limit > 0 && len(path) > limit {
		path = path[:limit:limit]
	}
	return path
}
