package obj

// Layer owns the tile data of a single named layer.
type Layer struct {
	Index int
	Level *Level
	Tiles []int
	Meta  *LayerMeta
}

// NewLayer constructs a Layer from a Level and layer index.
func NewLayer(l *Level, idx int) *Layer {
	var tiles []int
	if l.Layers != nil && idx < len(l.Layers) {
		tiles = l.Layers[idx]
	}
	var meta *LayerMeta
	if l.LayerMeta != nil && idx < len(l.LayerMeta) {
		meta = &l.LayerMeta[idx]
	}
	return &Layer{
		Index: idx,
		Level: l,
		Tiles: tiles,
		Meta:  meta,
	}
}

// GID returns the tile id at (x, y), or 0 when the cell is empty or
// outside the layer.
func (ly *Layer) GID(x, y int) int {
	if ly == nil || ly.Level == nil {
		return 0
	}
	if x < 0 || y < 0 || x >= ly.Level.Width || y >= ly.Level.Height {
		return 0
	}
	idx := y*ly.Level.Width + x
	if idx >= len(ly.Tiles) {
		return 0
	}
	return ly.Tiles[idx]
}

func (ly *Layer) Name() string {
	if ly == nil || ly.Meta == nil {
		return ""
	}
	return ly.Meta.Name
}
