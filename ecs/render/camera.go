package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/evermaze/common"
)

// camera maps world pixels, y up, onto the screen, y down.
type camera struct {
	center common.Vec2
	zoom   float64
	halfW  float64
	halfH  float64
}

func newCamera(screen *ebiten.Image, center common.Vec2, zoom float64) camera {
	b := screen.Bounds()
	return camera{
		center: center,
		zoom:   zoom,
		halfW:  float64(b.Dx()) / 2,
		halfH:  float64(b.Dy()) / 2,
	}
}

func (c camera) toScreen(v common.Vec2) (float64, float64) {
	return (v.X-c.center.X)*c.zoom + c.halfW, -(v.Y-c.center.Y)*c.zoom + c.halfH
}

// Follow eases the camera from its current center toward target.
func Follow(current, target common.Vec2, smoothness float64) common.Vec2 {
	if smoothness <= 0 || smoothness >= 1 {
		return target
	}
	return common.Vec2{
		X: common.Lerp(current.X, target.X, smoothness),
		Y: common.Lerp(current.Y, target.Y, smoothness),
	}
}
