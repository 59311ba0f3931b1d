package entity

import (
	"github.com/milk9111/evermaze/common"
	"github.com/milk9111/evermaze/ecs"
	"github.com/milk9111/evermaze/ecs/component"
	"github.com/milk9111/evermaze/tmx"
)

// NewMaze creates the singleton entity carrying the loaded map.
func NewMaze(w *ecs.World, name string, mode common.Mode, index *tmx.Object) (ecs.Entity, error) {
	return buildEntity(w, name,
		add(component.MazeComponent.Kind(), &component.Maze{Name: name, Mode: mode, Object: index}),
	)
}
