package common

import "fmt"

// TileSize is the width and height of a single tile in pixel units.
const TileSize = 108

// Point is an integer tile address on the maze grid.
type Point struct {
	X int
	Y int
}

// NoPoint is returned whenever a point could not be found.
var NoPoint = Point{X: -1, Y: -1}

func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Step returns the neighbour of p in direction d. Rows grow downwards,
// so Up decrements y.
func (p Point) Step(d Direction) Point {
	switch d {
	case Up:
		return Point{X: p.X, Y: p.Y - 1}
	case Down:
		return Point{X: p.X, Y: p.Y + 1}
	case Left:
		return Point{X: p.X - 1, Y: p.Y}
	case Right:
		return Point{X: p.X + 1, Y: p.Y}
	default:
		return p
	}
}

// DirectionTo reports which direction leads from p to an adjacent q.
// It returns None when q is not one of the four neighbours.
func (p Point) DirectionTo(q Point) Direction {
	for _, d := range Directions {
		if p.Step(d) == q {
			return d
		}
	}
	return None
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Vec2 is a pixel position. The y axis points up.
type Vec2 struct {
	X float64
	Y float64
}

var NoVec = Vec2{X: -1, Y: -1}

// Move translates v by dist along d. Up increases y.
func (v Vec2) Move(d Direction, dist float64) Vec2 {
	switch d {
	case Up:
		v.Y += dist
	case Down:
		v.Y -= dist
	case Left:
		v.X -= dist
	case Right:
		v.X += dist
	}
	return v
}

type Direction int

const (
	None Direction = iota
	Up
	Down
	Left
	Right
)

// Directions lists the four movement directions in lookup order.
var Directions = [4]Direction{Up, Down, Left, Right}

func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	default:
		return None
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// ParseDirection is the inverse of Direction.String. Unknown names map
// to None.
func ParseDirection(s string) Direction {
	switch s {
	case "up":
		return Up
	case "down":
		return Down
	case "left":
		return Left
	case "right":
		return Right
	default:
		return None
	}
}
