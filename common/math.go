package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Round snaps a position to the nearest whole unit. Repeated float
// steps of a non-integral speed drift off the tile centers otherwise.
func Round(v Vec2) Vec2 {
	return Vec2{X: math.Round(v.X), Y: math.Round(v.Y)}
}
