package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/evermaze/common"
	"github.com/milk9111/evermaze/tmx"
	"gopkg.in/yaml.v3"
)

var ErrMissingField = errors.New("prefabs: missing field")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type GameSpec struct {
	Title        string      `yaml:"title"`
	Width        int         `yaml:"width"`
	Height       int         `yaml:"height"`
	OriginX      float64     `yaml:"origin_x"`
	OriginY      float64     `yaml:"origin_y"`
	StartMode    common.Mode `yaml:"start_mode"`
	ReverseSwipe bool        `yaml:"reverse_swipe"`
	Background   *YAMLColor  `yaml:"background"`
	Debug        DebugSpec   `yaml:"debug"`
}

type DebugSpec struct {
	Grid        bool `yaml:"grid"`
	Paths       bool `yaml:"paths"`
	Checkpoints bool `yaml:"checkpoints"`
}

func LoadGameSpec() (*GameSpec, error) {
	spec, err := LoadSpec[GameSpec]("game.yaml")
	if err != nil {
		return nil, err
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return nil, fmt.Errorf("%w: game.yaml width/height", ErrMissingField)
	}
	return &spec, nil
}

// LoadTmxConfig loads the layer specs of a tmx config. It matches
// tmx.ConfigSource.
func LoadTmxConfig(name string) (tmx.Config, error) {
	cfg, err := LoadSpec[tmx.Config](name + ".yaml")
	if err != nil {
		return tmx.Config{}, err
	}
	if len(cfg.Layers) == 0 {
		return tmx.Config{}, fmt.Errorf("%w: %s.yaml layers", ErrMissingField, name)
	}
	if cfg.Name == "" {
		cfg.Name = name
	}
	return cfg, nil
}

type AgentSpec struct {
	Name          string  `yaml:"name"`
	Kind          string  `yaml:"kind"`
	Speed         float64 `yaml:"speed"`
	ChaseDistance int     `yaml:"chase_distance"`
	ChaseLimit    int     `yaml:"chase_limit"`
	WanderLimit   int     `yaml:"wander_limit"`
	GenerateIndex int     `yaml:"generate_index"`
	GenerateStep  int     `yaml:"generate_step"`
	Planner       string  `yaml:"planner"`
	Diagonal      bool    `yaml:"diagonal"`
	Heuristic     string  `yaml:"heuristic"`
	Radius        float64 `yaml:"radius"`
	Color         string  `yaml:"color"`
}

func (s AgentSpec) IsPlayer() bool {
	return s.Kind == "player"
}

// LoadAgentSpec loads <name>.yaml.
func LoadAgentSpec(name string) (*AgentSpec, error) {
	filename := strings.TrimSuffix(name, ".yaml") + ".yaml"
	spec, err := LoadSpec[AgentSpec](filename)
	if err != nil {
		return nil, err
	}
	if spec.Speed <= 0 {
		return nil, fmt.Errorf("%w: %s speed", ErrMissingField, filename)
	}
	switch spec.Kind {
	case "player", "pursuer":
	default:
		return nil, fmt.Errorf("prefabs: %s: unknown kind %q", filename, spec.Kind)
	}
	if spec.Name == "" {
		spec.Name = strings.TrimSuffix(filename, ".yaml")
	}
	return &spec, nil
}

type PointSpec struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

func (p PointSpec) Point() common.Point {
	return common.Point{X: p.X, Y: p.Y}
}

type PlayerStartSpec struct {
	Agent string    `yaml:"agent"`
	At    PointSpec `yaml:"at"`
	Layer string    `yaml:"layer"`
}

type CheckpointSpec struct {
	At    PointSpec `yaml:"at"`
	Event string    `yaml:"event"`
}

type EventSpec struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	StopPlayer  bool   `yaml:"stop_player"`
	PosX        int    `yaml:"posx"`
	PosY        int    `yaml:"posy"`
	// Frames is how long a stopping event holds the player.
	Frames int `yaml:"frames"`
}

type SceneSpec struct {
	Name        string               `yaml:"name"`
	Map         string               `yaml:"map"`
	Mode        common.Mode          `yaml:"mode"`
	Player      PlayerStartSpec      `yaml:"player"`
	Exit        *PointSpec           `yaml:"exit"`
	Finish      common.Mode          `yaml:"finish"`
	Checkpoints []CheckpointSpec     `yaml:"checkpoints"`
	Events      map[string]EventSpec `yaml:"events"`
	// GenerateIndex overrides the pursuer value when set.
	GenerateIndex int    `yaml:"generate_index"`
	Script        string `yaml:"script"`
}

// LoadSceneSpec loads <name>.yaml.
func LoadSceneSpec(name string) (*SceneSpec, error) {
	filename := strings.TrimSuffix(name, ".yaml") + ".yaml"
	spec, err := LoadSpec[SceneSpec](filename)
	if err != nil {
		return nil, err
	}
	if spec.Map == "" {
		return nil, fmt.Errorf("%w: %s map", ErrMissingField, filename)
	}
	if spec.Player.Agent == "" || spec.Player.Layer == "" {
		return nil, fmt.Errorf("%w: %s player", ErrMissingField, filename)
	}
	for _, cp := range spec.Checkpoints {
		if _, ok := spec.Events[cp.Event]; !ok {
			return nil, fmt.Errorf("prefabs: %s: checkpoint %v: unknown event %q", filename, cp.At.Point(), cp.Event)
		}
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
