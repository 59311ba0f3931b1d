package obj

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var ErrInvalidLevel = errors.New("obj: invalid level")

// Level represents a tile map stored as JSON.
type Level struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	// Layers is a slice of layers. Each layer is a flat array of gids of
	// length Width*Height (row-major, row 0 on top). A gid of 0 is an
	// empty cell.
	Layers [][]int `json:"layers"`

	// LayerMeta names each layer and carries its display color.
	LayerMeta []LayerMeta `json:"layer_meta"`

	name   string
	layers map[string]*Layer
}

type LayerMeta struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// LoadLevel loads a level from a JSON file at path.
func LoadLevel(path string) (*Level, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return loadLevelFromBytes(levelName(path), b)
}

// LoadLevelFromFS loads a level JSON from an fs.FS (e.g. embedded levels).
// The .json extension is optional.
func LoadLevelFromFS(fsys fs.FS, path string) (*Level, error) {
	clean := strings.TrimPrefix(filepath.ToSlash(path), "levels/")
	if filepath.Ext(clean) == "" {
		clean += ".json"
	}
	b, err := fs.ReadFile(fsys, clean)
	if err != nil {
		return nil, err
	}
	return loadLevelFromBytes(levelName(clean), b)
}

func loadLevelFromBytes(name string, b []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(b, &lvl); err != nil {
		return nil, fmt.Errorf("obj: unmarshal level %s: %w", name, err)
	}
	lvl.name = name
	if err := lvl.index(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

func (l *Level) index() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidLevel, l.Width, l.Height)
	}
	if len(l.LayerMeta) != len(l.Layers) {
		return fmt.Errorf("%w: %d layers but %d layer_meta entries", ErrInvalidLevel, len(l.Layers), len(l.LayerMeta))
	}

	l.layers = make(map[string]*Layer, len(l.Layers))
	for i, tiles := range l.Layers {
		meta := l.LayerMeta[i]
		if meta.Name == "" {
			return fmt.Errorf("%w: layer %d has no name", ErrInvalidLevel, i)
		}
		if len(tiles) != l.Width*l.Height {
			return fmt.Errorf("%w: layer %q has %d tiles, want %d", ErrInvalidLevel, meta.Name, len(tiles), l.Width*l.Height)
		}
		if _, dup := l.layers[meta.Name]; dup {
			return fmt.Errorf("%w: duplicate layer %q", ErrInvalidLevel, meta.Name)
		}
		l.layers[meta.Name] = NewLayer(l, i)
	}
	return nil
}

// LayerData is one named layer of an in-memory level.
type LayerData struct {
	Name  string
	Tiles []int
}

// NewLevel builds a level in memory. Used by tools and tests.
func NewLevel(name string, width, height int, layers ...LayerData) (*Level, error) {
	lvl := &Level{Width: width, Height: height, name: name}
	for _, data := range layers {
		lvl.Layers = append(lvl.Layers, data.Tiles)
		lvl.LayerMeta = append(lvl.LayerMeta, LayerMeta{Name: data.Name})
	}
	if err := lvl.index(); err != nil {
		return nil, err
	}
	return lvl, nil
}

func (l *Level) Name() string {
	return l.name
}

// Size returns the map size in tiles.
func (l *Level) Size() (int, int) {
	return l.Width, l.Height
}

// Layer returns the named layer.
func (l *Level) Layer(name string) (*Layer, bool) {
	ly, ok := l.layers[name]
	return ly, ok
}

// LayerNames returns the layer names in draw order.
func (l *Level) LayerNames() []string {
	names := make([]string, len(l.LayerMeta))
	for i, meta := range l.LayerMeta {
		names[i] = meta.Name
	}
	return names
}

func levelName(path string) string {
	base := filepath.Base(filepath.ToSlash(path))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// LayerGIDs returns the row-major gid grid of the named layer.
func (l *Level) LayerGIDs(name string) ([]int, bool) {
	ly, ok := l.layers[name]
	if !ok {
		return nil, false
	}
	return ly.Tiles, true
}
