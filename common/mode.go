package common

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Mode selects the game mode a scene runs in.
type Mode int

const (
	Modes Mode = iota
	Escape
	Energy
	Search
	Survive
	Portals
	Tiles
	Controls
)

var modeNames = map[Mode]string{
	Modes:    "modes",
	Escape:   "escape",
	Energy:   "energy",
	Search:   "search",
	Survive:  "survive",
	Portals:  "portals",
	Tiles:    "tiles",
	Controls: "controls",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return Modes, fmt.Errorf("common: unknown mode %q", s)
}

// UnmarshalYAML lets modes be written by name in prefab specs.
func (m *Mode) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
