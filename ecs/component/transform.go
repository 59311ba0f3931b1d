package component

import "github.com/milk9111/evermaze/common"

// Transform is the pixel position of an entity, y up.
type Transform struct {
	X float64
	Y float64
}

func (t *Transform) Vec() common.Vec2 {
	return common.Vec2{X: t.X, Y: t.Y}
}

func (t *Transform) SetVec(v common.Vec2) {
	t.X = v.X
	t.Y = v.Y
}

var TransformComponent = NewComponent[Transform]()
