package lua

import (
	"fmt"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/loom/internal/component"
	"github.com/dshills/loom/internal/event"
	"github.com/dshills/loom/internal/plugin"
)

// Spec describes a script plugin to load.
type Spec struct {
	// ID defaults to the file name without extension.
	ID       string
	Path     string
	Priority int

	// Events restricts on_event to these type names. Empty means all.
	Events []string

	// Source, when set, is used instead of reading Path.
	Source string

	// Components, when set, exposes tab containers to the script.
	Components *component.Registry
}

// Script is a plugin.VTable backed by a Lua script.
type Script struct {
	id    string
	proto *lua.FunctionProto
	opts  []StateOption

	state *State
	ctx   *plugin.Context

	components *component.Registry
	tabs       []component.ID
}

// Load compiles the script described by spec and returns a plugin ready
// for registration. Syntax errors surface here; the script itself runs
// when the plugin is initialized.
func Load(spec Spec, opts ...StateOption) (*plugin.Plugin, error) {
	id := spec.ID
	if id == "" {
		base := filepath.Base(spec.Path)
		id = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if id == "" || id == "." {
		return nil, fmt.Errorf("lua plugin: %w", plugin.ErrInvalidPlugin)
	}

	var (
		proto *lua.FunctionProto
		err   error
	)
	if spec.Source != "" {
		proto, err = Compile(spec.Source, id)
	} else {
		proto, err = CompileFile(spec.Path)
	}
	if err != nil {
		return nil, &ScriptError{Plugin: id, Func: "compile", Err: err}
	}

	types := make([]event.Type, 0, len(spec.Events))
	for _, name := range spec.Events {
		t, ok := event.ParseType(name)
		if !ok {
			return nil, &ScriptError{Plugin: id, Func: "events", Err: fmt.Errorf("unknown event type %q", name)}
		}
		types = append(types, t)
	}

	s := &Script{id: id, proto: proto, opts: opts, components: spec.Components}
	return plugin.New(id, spec.Priority, s, types...), nil
}

// State returns the Lua state, or nil before Init.
func (s *Script) State() *State {
	return s.state
}

// Init runs the script chunk and then its init function, if defined.
func (s *Script) Init(ctx *plugin.Context) bool {
	s.ctx = ctx
	s.state = NewState(s.opts...)
	s.state.SetPrint(func(msg string) { ctx.Log.Info("%s", msg) })
	s.installAPI()

	if err := s.state.Run(s.proto); err != nil {
		ctx.Log.Error("%v", &ScriptError{Plugin: s.id, Func: "chunk", Err: err})
		return false
	}
	if !s.state.HasFunc("init") {
		return true
	}
	results, err := s.state.Call("init")
	if err != nil {
		ctx.Log.Error("%v", &ScriptError{Plugin: s.id, Func: "init", Err: err})
		return false
	}
	return Truthy(results, true)
}

// Update calls update(dt).
func (s *Script) Update(ctx *plugin.Context, dt float64) {
	if s.state == nil || !s.state.HasFunc("update") {
		return
	}
	if _, err := s.state.Call("update", lua.LNumber(dt)); err != nil {
		ctx.Log.Error("%v", &ScriptError{Plugin: s.id, Func: "update", Err: err})
	}
}

// Shutdown calls shutdown and closes the state.
func (s *Script) Shutdown(ctx *plugin.Context) {
	if s.state == nil {
		return
	}
	if s.state.HasFunc("shutdown") {
		if _, err := s.state.Call("shutdown"); err != nil {
			ctx.Log.Error("%v", &ScriptError{Plugin: s.id, Func: "shutdown", Err: err})
		}
	}
	for _, id := range s.tabs {
		if s.components.Get(id) != nil {
			_ = s.components.Destroy(id)
		}
	}
	s.tabs = nil
	s.state.Close()
}

// OnEvent calls on_event(ev). Returning true or setting ev.handled consumes.
func (s *Script) OnEvent(ctx *plugin.Context, ev *event.Event) bool {
	if s.state == nil || !s.state.HasFunc("on_event") {
		return false
	}
	t := EventTable(s.state.L, ev)
	results, err := s.state.Call("on_event", t)
	if err != nil {
		ctx.Log.Error("%v", &ScriptError{Plugin: s.id, Func: "on_event", Err: err})
		return false
	}
	if lua.LVAsBool(t.RawGetString("handled")) {
		ev.Handled = true
	}
	return Truthy(results, false) || ev.Handled
}
