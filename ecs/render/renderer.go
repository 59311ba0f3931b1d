package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/evermaze/common"
	"github.com/milk9111/evermaze/ecs"
	"github.com/milk9111/evermaze/ecs/component"
	"github.com/milk9111/evermaze/tmx"
	"golang.org/x/image/colornames"
)

const (
	tilePixels    = common.TileSize
	tileGap       = 6
	defaultRadius = common.TileSize / 5.0
)

type Options struct {
	Grid        bool
	Paths       bool
	Checkpoints bool
	Bodies      bool
}

// Frame is everything drawn in one frame. Camera is the world position
// shown at the screen center.
type Frame struct {
	World       *ecs.World
	Index       *tmx.Object
	Layer       string
	Camera      common.Vec2
	Zoom        float64
	Checkpoints []common.Point
	Exit        *common.Point
	Space       *cp.Space
	Message     string
}

type Renderer struct {
	Background color.Color
	Options    Options
}

func NewRenderer(background color.Color, opts Options) *Renderer {
	if background == nil {
		background = colornames.Black
	}
	return &Renderer{Background: background, Options: opts}
}

func (r *Renderer) Draw(screen *ebiten.Image, f Frame) {
	if screen == nil {
		return
	}
	screen.Fill(r.Background)
	if f.World == nil || f.Index == nil {
		return
	}
	if f.Zoom <= 0 {
		f.Zoom = 1
	}
	view := newCamera(screen, f.Camera, f.Zoom)

	r.drawTiles(screen, view, f)
	if r.Options.Checkpoints {
		r.drawMarkers(screen, view, f)
	}
	if r.Options.Paths {
		r.drawPaths(screen, view, f)
	}
	r.drawAgents(screen, view, f)
	if r.Options.Bodies && f.Space != nil {
		cp.DrawSpace(f.Space, &bodyDrawer{screen: screen, view: view})
	}
	if f.Message != "" {
		ebitenutil.DebugPrintAt(screen, f.Message, 10, 10)
	}
}

func (r *Renderer) drawTiles(screen *ebiten.Image, view camera, f Frame) {
	if !f.Index.HasLayer(f.Layer) {
		return
	}
	img := tileImage(f.Layer, colornames.Ivory)
	scale := float64(tilePixels-tileGap) / tilePixels * view.zoom
	half := float64(tilePixels-tileGap) / 2 * view.zoom
	for _, entry := range f.Index.Entries(f.Layer) {
		x, y := view.toScreen(entry.Position)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(x-half, y-half)
		op.ColorScale.ScaleAlpha(0.35)
		screen.DrawImage(img, op)
	}
	if r.Options.Grid {
		width, height := f.Index.Size()
		for gx := 0; gx < width; gx++ {
			for gy := 0; gy < height; gy++ {
				r.strokeTile(screen, view, f.Index, common.Point{X: gx, Y: gy}, colornames.Dimgray)
			}
		}
	}
}

func (r *Renderer) strokeTile(screen *ebiten.Image, view camera, index *tmx.Object, p common.Point, clr color.Color) {
	x, y := view.toScreen(GridPosition(index, p))
	size := float32(tilePixels * view.zoom)
	vector.StrokeRect(screen, float32(x)-size/2, float32(y)-size/2, size, size, 1, clr, false)
}

func (r *Renderer) drawMarkers(screen *ebiten.Image, view camera, f Frame) {
	for _, p := range f.Checkpoints {
		r.marker(screen, view, f.Index, p, colornames.Gold)
	}
	if f.Exit != nil {
		r.marker(screen, view, f.Index, *f.Exit, colornames.Limegreen)
	}
}

func (r *Renderer) marker(screen *ebiten.Image, view camera, index *tmx.Object, p common.Point, clr color.Color) {
	x, y := view.toScreen(GridPosition(index, p))
	size := float32(tilePixels * view.zoom * 0.6)
	vector.StrokeRect(screen, float32(x)-size/2, float32(y)-size/2, size, size, 3, clr, true)
}

func (r *Renderer) drawPaths(screen *ebiten.Image, view camera, f Frame) {
	ecs.ForEach2(f.World, component.NavigatorComponent.Kind(), component.TransformComponent.Kind(),
		func(_ ecs.Entity, nav *component.Navigator, tr *component.Transform) {
			if nav.Variant != component.VariantPursuer || len(nav.Queue) == 0 {
				return
			}
			clr := colornames.Lightskyblue
			if nav.Chase {
				clr = colornames.Orangered
			}
			px, py := view.toScreen(tr.Vec())
			for _, p := range nav.Queue {
				x, y := view.toScreen(GridPosition(f.Index, p))
				vector.StrokeLine(screen, float32(px), float32(py), float32(x), float32(y), 2, clr, true)
				px, py = x, y
			}
		})
}

func (r *Renderer) drawAgents(screen *ebiten.Image, view camera, f Frame) {
	ecs.ForEach3(f.World, component.NavigatorComponent.Kind(), component.TransformComponent.Kind(), component.AppearanceComponent.Kind(),
		func(_ ecs.Entity, nav *component.Navigator, tr *component.Transform, look *component.Appearance) {
			radius := look.Radius
			if radius <= 0 {
				radius = defaultRadius
			}
			x, y := view.toScreen(tr.Vec())
			clr := Color(look.Color, colornames.White)
			if nav.Intensity > 0 {
				glow := color.NRGBA{R: 255, G: 80, B: 80, A: uint8(nav.Intensity * 2)}
				vector.DrawFilledCircle(screen, float32(x), float32(y), float32(radius*1.8*view.zoom), glow, true)
			}
			vector.DrawFilledCircle(screen, float32(x), float32(y), float32(radius*view.zoom), clr, true)
		})
}

// GridPosition is the pixel center of any grid point, indexed or not.
func GridPosition(index *tmx.Object, p common.Point) common.Vec2 {
	width, height := index.Size()
	origin := index.Origin()
	cx := float64(width-1) / 2
	cy := float64(height-1) / 2
	return common.Vec2{
		X: origin.X - (cx-float64(p.X))*common.TileSize,
		Y: origin.Y + (cy-float64(p.Y))*common.TileSize,
	}
}
