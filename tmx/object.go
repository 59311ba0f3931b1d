package tmx

import (
	"fmt"
	"math/rand/v2"

	"github.com/milk9111/evermaze/common"
)

// Map is the tile map an Object is built from.
type Map interface {
	// Size returns the map size in tiles.
	Size() (width, height int)
	// LayerGIDs returns the row-major tile ids of a layer, 0 meaning no tile.
	LayerGIDs(name string) ([]int, bool)
}

// Entry pairs a grid point with its pixel position.
type Entry struct {
	Point    common.Point
	Position common.Vec2
}

type layerIndex struct {
	positions  map[common.Point]common.Vec2
	points     map[common.Vec2]common.Point
	entries    []Entry
	collisions []common.Point
}

// Object is the coordinate index of a single map. It is immutable once
// built and may be shared by every agent on the map. RandomEntry draws
// from the object's own PRNG and is not safe for concurrent use.
type Object struct {
	width  int
	height int
	origin common.Vec2
	layers map[string]*layerIndex
	names  []string
	rng    *rand.Rand
}

type Option func(*Object)

// WithOrigin sets the pixel position of the map center.
func WithOrigin(origin common.Vec2) Option {
	return func(o *Object) {
		o.origin = origin
	}
}

// WithRand replaces the randomly seeded PRNG, mostly for tests.
func WithRand(rng *rand.Rand) Option {
	return func(o *Object) {
		if rng != nil {
			o.rng = rng
		}
	}
}

// New indexes every layer spec of m.
func New(m Map, specs []LayerSpec, opts ...Option) (*Object, error) {
	if m == nil {
		return nil, fmt.Errorf("tmx: nil map")
	}
	w, h := m.Size()
	o := &Object{
		width:  w,
		height: h,
		layers: make(map[string]*layerIndex, len(specs)),
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(o)
	}

	for _, spec := range specs {
		if err := spec.validate(); err != nil {
			return nil, err
		}
		if _, dup := o.layers[spec.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate name %q", ErrInvalidLayerSpec, spec.Name)
		}
		gids, ok := m.LayerGIDs(spec.Layer)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingLayer, spec.Layer)
		}
		if len(gids) < w*h {
			return nil, fmt.Errorf("tmx: layer %q: %d tiles for a %dx%d map", spec.Layer, len(gids), w, h)
		}
		o.layers[spec.Name] = o.index(gids, spec)
		o.names = append(o.names, spec.Name)
	}
	return o, nil
}

func (o *Object) index(gids []int, spec LayerSpec) *layerIndex {
	var allowed map[int]struct{}
	if len(spec.GIDs) > 0 {
		allowed = make(map[int]struct{}, len(spec.GIDs))
		for _, gid := range spec.GIDs {
			allowed[gid] = struct{}{}
		}
	}

	idx := &layerIndex{positions: make(map[common.Point]common.Vec2)}
	if spec.Inverse {
		idx.points = make(map[common.Vec2]common.Point)
	}

	for y := 0; y < o.height; y++ {
		for x := 0; x < o.width; x++ {
			p := common.Point{X: x, Y: y}
			gid := gids[y*o.width+x]
			if gid == 0 {
				if spec.Collisions {
					idx.collisions = append(idx.collisions, p)
				}
				continue
			}
			if allowed != nil {
				if _, ok := allowed[gid]; !ok {
					continue
				}
			}

			pos := o.pixelOf(p)
			idx.positions[p] = pos
			idx.entries = append(idx.entries, Entry{Point: p, Position: pos})
			if idx.points != nil {
				idx.points[pos] = p
			}
		}
	}
	return idx
}

// pixelOf maps a grid point to the center of its tile. Row 0 is the top
// of the map, so y decreases with the row index.
func (o *Object) pixelOf(p common.Point) common.Vec2 {
	cx := float64(o.width-1) / 2
	cy := float64(o.height-1) / 2
	return common.Vec2{
		X: o.origin.X - (cx-float64(p.X))*common.TileSize,
		Y: o.origin.Y + (cy-float64(p.Y))*common.TileSize,
	}
}

func (o *Object) layer(name string) *layerIndex {
	idx, ok := o.layers[name]
	if !ok {
		panic(fmt.Sprintf("tmx: unknown layer %q", name))
	}
	return idx
}

// Size returns the map size in tiles.
func (o *Object) Size() (int, int) {
	return o.width, o.height
}

func (o *Object) Origin() common.Vec2 {
	return o.origin
}

// Layers returns the indexed layer names in build order.
func (o *Object) Layers() []string {
	return append([]string(nil), o.names...)
}

func (o *Object) HasLayer(name string) bool {
	_, ok := o.layers[name]
	return ok
}

// Position returns the pixel position of p, or common.NoVec.
func (o *Object) Position(p common.Point, layer string) common.Vec2 {
	if pos, ok := o.layer(layer).positions[p]; ok {
		return pos
	}
	return common.NoVec
}

// Point returns the grid point at pos, or common.NoPoint. The layer must
// have been built with Inverse set.
func (o *Object) Point(pos common.Vec2, layer string) common.Point {
	idx := o.layer(layer)
	if idx.points == nil {
		panic(fmt.Sprintf("tmx: layer %q has no inverse index", layer))
	}
	if p, ok := idx.points[pos]; ok {
		return p
	}
	return common.NoPoint
}

func (o *Object) ContainsPoint(p common.Point, layer string) bool {
	_, ok := o.layer(layer).positions[p]
	return ok
}

func (o *Object) ContainsPosition(pos common.Vec2, layer string) bool {
	idx := o.layer(layer)
	if idx.points == nil {
		panic(fmt.Sprintf("tmx: layer %q has no inverse index", layer))
	}
	_, ok := idx.points[pos]
	return ok
}

// Entry returns the forward entry of p if p is walkable on layer.
func (o *Object) Entry(p common.Point, layer string) (Entry, bool) {
	pos, ok := o.layer(layer).positions[p]
	if !ok {
		return Entry{Point: common.NoPoint, Position: common.NoVec}, false
	}
	return Entry{Point: p, Position: pos}, true
}

// RandomEntry picks a walkable entry of layer uniformly at random.
func (o *Object) RandomEntry(layer string) (Entry, bool) {
	idx := o.layer(layer)
	if len(idx.entries) == 0 {
		return Entry{Point: common.NoPoint, Position: common.NoVec}, false
	}
	return idx.entries[o.rng.IntN(len(idx.entries))], true
}

// Collisions returns the blocked points of layer in row-major order.
func (o *Object) Collisions(layer string) []common.Point {
	return append([]common.Point(nil), o.layer(layer).collisions...)
}

// Len returns the number of walkable points on layer.
func (o *Object) Len(layer string) int {
	return len(o.layer(layer).entries)
}

// Entries returns the walkable entries of layer in row-major order.
func (o *Object) Entries(layer string) []Entry {
	return append([]Entry(nil), o.layer(layer).entries...)
}
