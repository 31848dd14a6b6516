package lua

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/loom/internal/component"
	"github.com/dshills/loom/internal/ui"
)

// installTabs registers the tabs table. Tab indices are zero based, the
// same as in tab_changed events.
func (s *Script) installTabs() {
	s.state.RegisterModule("tabs", map[string]lua.LGFunction{
		"new":       s.luaTabsNew,
		"select":    s.luaTabsSelect,
		"add":       s.luaTabsAdd,
		"remove":    s.luaTabsRemove,
		"active":    s.luaTabsActive,
		"count":     s.luaTabsCount,
		"content":   s.luaTabsContent,
		"set_title": s.luaTabsSetTitle,
		"destroy":   s.luaTabsDestroy,
	})
}

// tabs.new(parent_id|nil, {titles}, root_id|nil) -> component id | nil
func (s *Script) luaTabsNew(L *lua.LState) int {
	var parent *ui.Node
	if pid := L.OptString(1, ""); pid != "" {
		parent = s.node(pid)
	} else if s.ctx.API != nil {
		parent = s.ctx.API.Root()
	}

	var titles []string
	if t := L.OptTable(2, nil); t != nil {
		for i := 1; i <= t.Len(); i++ {
			titles = append(titles, lua.LVAsString(t.RawGetInt(i)))
		}
	}

	var opts []component.TabOption
	if id := L.OptString(3, ""); id != "" {
		opts = append(opts, component.WithRootID(id))
	}

	tc, err := s.components.NewTabContainer(s.ctx, parent, titles, opts...)
	if err != nil {
		s.ctx.Log.Warn("tabs.new: %v", err)
		L.Push(lua.LNil)
		return 1
	}
	s.tabs = append(s.tabs, tc.ID())
	L.Push(lua.LNumber(tc.ID()))
	return 1
}

// container resolves argument 1 to a tab container this script created.
func (s *Script) container(L *lua.LState) *component.TabContainer {
	id := component.ID(L.CheckInt64(1))
	for _, own := range s.tabs {
		if own == id {
			return s.components.Tabs(id)
		}
	}
	return nil
}

func (s *Script) luaTabsSelect(L *lua.LState) int {
	tc := s.container(L)
	L.Push(lua.LBool(tc != nil && tc.Select(L.CheckInt(2))))
	return 1
}

// tabs.add(cid, title, index|nil) -> index | nil
func (s *Script) luaTabsAdd(L *lua.LState) int {
	tc := s.container(L)
	title := L.CheckString(2)
	if tc == nil {
		L.Push(lua.LNil)
		return 1
	}
	i := tc.Len()
	if L.GetTop() >= 3 && L.Get(3) != lua.LNil {
		i = L.CheckInt(3)
	}
	L.Push(lua.LNumber(tc.InsertTab(i, title)))
	return 1
}

func (s *Script) luaTabsRemove(L *lua.LState) int {
	tc := s.container(L)
	L.Push(lua.LBool(tc != nil && tc.RemoveTab(L.CheckInt(2))))
	return 1
}

func (s *Script) luaTabsActive(L *lua.LState) int {
	tc := s.container(L)
	if tc == nil {
		L.Push(lua.LNumber(-1))
		return 1
	}
	L.Push(lua.LNumber(tc.Active()))
	return 1
}

func (s *Script) luaTabsCount(L *lua.LState) int {
	tc := s.container(L)
	if tc == nil {
		L.Push(lua.LNumber(0))
		return 1
	}
	L.Push(lua.LNumber(tc.Len()))
	return 1
}

// tabs.content(cid, index) -> node id | nil
func (s *Script) luaTabsContent(L *lua.LState) int {
	tc := s.container(L)
	if tc == nil {
		L.Push(lua.LNil)
		return 1
	}
	n := tc.Content(L.CheckInt(2))
	if n == nil {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(n.ID))
	return 1
}

func (s *Script) luaTabsSetTitle(L *lua.LState) int {
	tc := s.container(L)
	L.Push(lua.LBool(tc != nil && tc.SetTitle(L.CheckInt(2), L.CheckString(3))))
	return 1
}

func (s *Script) luaTabsDestroy(L *lua.LState) int {
	id := component.ID(L.CheckInt64(1))
	for i, own := range s.tabs {
		if own == id {
			s.tabs = append(s.tabs[:i], s.tabs[i+1:]...)
			L.Push(lua.LBool(s.components.Destroy(id) == nil))
			return 1
		}
	}
	L.Push(lua.LFalse)
	return 1
}
