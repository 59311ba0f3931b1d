package component

import (
	"github.com/milk9111/evermaze/common"
	"github.com/milk9111/evermaze/tmx"
)

// Maze is the singleton describing the loaded map.
type Maze struct {
	Name   string
	Mode   common.Mode
	Object *tmx.Object
}

var MazeComponent = NewComponent[Maze]()
