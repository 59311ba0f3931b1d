package scene

import (
	"sort"

	"github.com/milk9111/evermaze/common"
)

// modeScenes maps the modes that have a playable scene to its prefab.
var modeScenes = map[common.Mode]string{
	common.Controls: "controls",
	common.Escape:   "tutorial",
}

// ForMode returns the scene prefab played in mode.
func ForMode(mode common.Mode) (string, bool) {
	name, ok := modeScenes[mode]
	return name, ok
}

// Names returns every playable scene prefab, sorted.
func Names() []string {
	out := make([]string, 0, len(modeScenes))
	for _, name := range modeScenes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Next picks the scene loaded after a scene finishes into mode. Modes
// without a scene of their own go back to start.
func Next(mode common.Mode, start string) string {
	if name, ok := modeScenes[mode]; ok {
		return name
	}
	return start
}
