package tmx

import (
	"errors"
	"fmt"

	"github.com/milk9111/evermaze/common"
)

var (
	ErrInvalidLayerSpec = errors.New("tmx: invalid layer spec")
	ErrMissingLayer     = errors.New("tmx: missing layer")
)

// LayerSpec describes how one indexed layer is built from a map layer.
type LayerSpec struct {
	// Name is the key the indexed layer is queried by.
	Name string `yaml:"name"`
	// Layer is the source tile layer in the map.
	Layer string `yaml:"layer"`
	// Inverse builds the position to point map as well.
	Inverse bool `yaml:"inverse"`
	// Collisions records every empty cell as blocked.
	Collisions bool `yaml:"collisions"`
	// GIDs restricts walkable cells to these tile ids. Empty allows all.
	GIDs []int `yaml:"gids"`
}

func (s LayerSpec) validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidLayerSpec)
	}
	if s.Layer == "" {
		return fmt.Errorf("%w: %q missing layer", ErrInvalidLayerSpec, s.Name)
	}
	return nil
}

// Config is a named list of layer specs, loaded from a tmx prefab.
type Config struct {
	Name   string      `yaml:"name"`
	Layers []LayerSpec `yaml:"layers"`
}

// ConfigName returns the tmx config used by a game mode.
func ConfigName(mode common.Mode) string {
	if mode == common.Controls {
		return "tmx_controls"
	}
	return "tmx_tutorial"
}
