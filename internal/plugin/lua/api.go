package lua

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/loom/internal/event"
	"github.com/dshills/loom/internal/input/key"
	"github.com/dshills/loom/internal/ui"
)

var nodeKinds = map[string]ui.Kind{
	"container": ui.KindContainer,
	"text":      ui.KindText,
	"image":     ui.KindImage,
}

// installAPI registers the loom and ui tables.
func (s *Script) installAPI() {
	s.state.RegisterModule("loom", map[string]lua.LGFunction{
		"emit":               s.luaEmit,
		"request_render":     s.luaRequestRender,
		"request_render_now": s.luaRequestRenderNow,
		"shortcut":           s.luaShortcut,
		"log":                s.luaLog,
		"window_size":        s.luaWindowSize,
		"bounds":             s.luaBounds,
	})
	s.state.RegisterModule("ui", map[string]lua.LGFunction{
		"create":         s.luaCreate,
		"set_text":       s.luaSetText,
		"set_hidden":     s.luaSetHidden,
		"set_color":      s.luaSetColor,
		"set_text_color": s.luaSetTextColor,
		"remove":         s.luaRemove,
		"on_click":       s.luaOnClick,
	})
	if s.components != nil {
		s.installTabs()
	}
}

// node finds id among this plugin's nodes first, then in the whole tree.
func (s *Script) node(id string) *ui.Node {
	if n := s.ctx.Nodes.Get(id); n != nil {
		return n
	}
	if s.ctx.API == nil {
		return nil
	}
	return s.ctx.API.FindNode(id)
}

func (s *Script) luaEmit(L *lua.LState) int {
	name := L.CheckString(1)
	var handled bool
	if L.GetTop() >= 2 && L.Get(2) != lua.LNil {
		_, handled = s.ctx.API.Emit(event.Custom, event.CustomPayload{Name: name, Data: ToGoValue(L.Get(2))})
	} else {
		_, handled = s.ctx.API.Emit(event.Signal, event.SignalPayload{Name: name})
	}
	L.Push(lua.LBool(handled))
	return 1
}

func (s *Script) luaRequestRender(L *lua.LState) int {
	s.ctx.API.RequestRender()
	return 0
}

func (s *Script) luaRequestRenderNow(L *lua.LState) int {
	s.ctx.API.RequestRenderImmediate()
	return 0
}

func (s *Script) luaShortcut(L *lua.LState) int {
	spec := L.CheckString(1)
	signal := L.CheckString(2)
	chord, err := key.ParseChord(spec)
	if err != nil {
		s.ctx.Log.Warn("shortcut %q: %v", spec, err)
		L.Push(lua.LFalse)
		return 1
	}
	L.Push(lua.LBool(s.ctx.API.RegisterShortcut(chord, signal)))
	return 1
}

func (s *Script) luaLog(L *lua.LState) int {
	s.ctx.Log.Info("%s", L.CheckString(1))
	return 0
}

func (s *Script) luaWindowSize(L *lua.LState) int {
	w, h := s.ctx.API.WindowSize()
	L.Push(lua.LNumber(w))
	L.Push(lua.LNumber(h))
	return 2
}

func (s *Script) luaBounds(L *lua.LState) int {
	r, ok := s.ctx.API.ElementBounds(L.CheckString(1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(r.X))
	L.Push(lua.LNumber(r.Y))
	L.Push(lua.LNumber(r.Width))
	L.Push(lua.LNumber(r.Height))
	return 4
}

// ui.create(id|nil, kind, parent_id|nil) -> id | nil
func (s *Script) luaCreate(L *lua.LState) int {
	id := L.OptString(1, "")
	kind, ok := nodeKinds[L.OptString(2, "container")]
	if !ok {
		L.ArgError(2, "kind must be container, text or image")
		return 0
	}

	var parent *ui.Node
	if pid := L.OptString(3, ""); pid != "" {
		if parent = s.node(pid); parent == nil {
			s.ctx.Log.Warn("ui.create: parent %q not found", pid)
			L.Push(lua.LNil)
			return 1
		}
	} else if s.ctx.API != nil {
		parent = s.ctx.API.Root()
	}

	n, err := s.ctx.Nodes.Create(id, kind)
	if err != nil {
		s.ctx.Log.Warn("ui.create %q: %v", id, err)
		L.Push(lua.LNil)
		return 1
	}
	if kind == ui.KindText {
		n.Style.Width, n.Style.Height = ui.Fit(), ui.Fit()
		n.Style.Background = ui.ColorNone
	}
	parent.AddChild(n)
	L.Push(lua.LString(n.ID))
	return 1
}

func (s *Script) luaSetText(L *lua.LState) int {
	n := s.node(L.CheckString(1))
	n.SetText(L.CheckString(2))
	L.Push(lua.LBool(n != nil))
	return 1
}

func (s *Script) luaSetHidden(L *lua.LState) int {
	n := s.node(L.CheckString(1))
	n.SetHidden(L.ToBool(2))
	L.Push(lua.LBool(n != nil))
	return 1
}

func (s *Script) luaSetColor(L *lua.LState) int {
	return s.setColor(L, func(n *ui.Node, c ui.Color) { n.Style.Background = c })
}

func (s *Script) luaSetTextColor(L *lua.LState) int {
	return s.setColor(L, func(n *ui.Node, c ui.Color) { n.Style.TextColor = c })
}

func (s *Script) setColor(L *lua.LState, apply func(*ui.Node, ui.Color)) int {
	n := s.node(L.CheckString(1))
	c, err := ui.ParseColor(L.CheckString(2))
	if err != nil {
		L.ArgError(2, err.Error())
		return 0
	}
	if n == nil {
		L.Push(lua.LFalse)
		return 1
	}
	apply(n, c)
	L.Push(lua.LTrue)
	return 1
}

// ui.remove only releases nodes this plugin created.
func (s *Script) luaRemove(L *lua.LState) int {
	L.Push(lua.LBool(s.ctx.Nodes.Release(L.CheckString(1))))
	return 1
}

func (s *Script) luaOnClick(L *lua.LState) int {
	n := s.node(L.CheckString(1))
	fn := L.OptFunction(2, nil)
	if n == nil {
		L.Push(lua.LFalse)
		return 1
	}
	if fn == nil {
		n.SetOnClick(nil)
	} else {
		n.SetOnClick(func(clicked *ui.Node) {
			if _, err := s.state.CallValue(fn, lua.LString(clicked.ID)); err != nil {
				s.ctx.Log.Error("%v", &ScriptError{Plugin: s.id, Func: "on_click", Err: err})
			}
		})
	}
	L.Push(lua.LTrue)
	return 1
}
