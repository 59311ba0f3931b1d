package scene

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/evermaze/common"
	"github.com/milk9111/evermaze/prefabs"
)

// ScriptAPI is what checkpoint scripts may do to a scene.
type ScriptAPI interface {
	SwitchLayer(layer string) error
	Spawn(kind string, at common.Point, layer string) error
	StopPlayer(frames int)
	Finish(mode common.Mode)
}

const scriptDispatch = `
if __event != "" {
	on_event(__engine, __event, __state)
}
`

// Script runs the on_event handler of a tengo checkpoint script. Its
// state map survives between events.
type Script struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
}

// LoadScript compiles a script from the prefab scripts directory.
func LoadScript(name string) (*Script, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("scene: load script %s: %w", name, err)
	}
	return CompileScript(name, src)
}

func CompileScript(name string, src []byte) (*Script, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + scriptDispatch))
	for key, value := range map[string]any{
		"__engine": map[string]any{},
		"__event":  "",
		"__state":  map[string]any{},
	} {
		if err := script.Add(key, value); err != nil {
			return nil, fmt.Errorf("scene: script %s: add %s: %w", name, key, err)
		}
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("scene: compile script %s: %w", name, err)
	}

	sc := &Script{
		name:     name,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}
	// top level statements run once up front
	noop := &tengo.ImmutableMap{Value: map[string]tengo.Object{}}
	if err := sc.run("", noop); err != nil {
		return nil, fmt.Errorf("scene: script %s: %w", name, err)
	}
	return sc, nil
}

func (sc *Script) Name() string {
	return sc.name
}

// State returns a copy of the script state as plain Go values.
func (sc *Script) State() map[string]any {
	out := make(map[string]any, len(sc.state.Value))
	for k, v := range sc.state.Value {
		out[k] = tengo.ToInterface(v)
	}
	return out
}

// OnEvent calls on_event(engine, event, state).
func (sc *Script) OnEvent(api ScriptAPI, event string) error {
	if sc == nil || sc.compiled == nil {
		return fmt.Errorf("scene: nil script")
	}
	return sc.run(event, sc.engine(api))
}

// run executes the compiled script. VM panics are returned as errors.
func (sc *Script) run(event string, engine *tengo.ImmutableMap) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	if err := sc.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := sc.compiled.Set("__event", event); err != nil {
		return err
	}
	if err := sc.compiled.Set("__state", sc.state); err != nil {
		return err
	}
	return sc.compiled.RunContext(context.Background())
}

func (sc *Script) engine(api ScriptAPI) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["switch_layer"] = &tengo.UserFunction{Name: "switch_layer", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		if err := api.SwitchLayer(objectAsString(args[0])); err != nil {
			log.Printf("scene: script %s: switch_layer: %v", sc.name, err)
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	values["spawn"] = &tengo.UserFunction{Name: "spawn", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 4 {
			return tengo.FalseValue, nil
		}
		x, okX := tengo.ToInt(args[1])
		y, okY := tengo.ToInt(args[2])
		if !okX || !okY {
			return tengo.FalseValue, nil
		}
		if err := api.Spawn(objectAsString(args[0]), common.Point{X: x, Y: y}, objectAsString(args[3])); err != nil {
			log.Printf("scene: script %s: spawn: %v", sc.name, err)
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	values["stop_player"] = &tengo.UserFunction{Name: "stop_player", Value: func(args ...tengo.Object) (tengo.Object, error) {
		frames := 0
		if len(args) > 0 {
			frames, _ = tengo.ToInt(args[0])
		}
		api.StopPlayer(frames)
		return tengo.TrueValue, nil
	}}

	values["finish"] = &tengo.UserFunction{Name: "finish", Value: func(args ...tengo.Object) (tengo.Object, error) {
		mode := common.Modes
		if len(args) > 0 {
			parsed, err := common.ParseMode(objectAsString(args[0]))
			if err != nil {
				log.Printf("scene: script %s: finish: %v", sc.name, err)
				return tengo.FalseValue, nil
			}
			mode = parsed
		}
		api.Finish(mode)
		return tengo.TrueValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, arg := range args {
			parts = append(parts, objectAsString(arg))
		}
		log.Printf("scene: script %s: %s", sc.name, strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
