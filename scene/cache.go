package scene

import (
	"github.com/milk9111/evermaze/levels"
	"github.com/milk9111/evermaze/obj"
	"github.com/milk9111/evermaze/prefabs"
	"github.com/milk9111/evermaze/tmx"
)

// LoadLevel reads an embedded level. It matches tmx.MapSource.
func LoadLevel(name string) (tmx.Map, error) {
	lvl, err := obj.LoadLevelFromFS(levels.LevelsFS, name)
	if err != nil {
		return nil, err
	}
	return lvl, nil
}

// NewCache returns a tmx cache over the embedded levels and the tmx
// prefabs.
func NewCache(opts ...tmx.Option) *tmx.Cache {
	return tmx.NewCache(LoadLevel, prefabs.LoadTmxConfig, opts...)
}
