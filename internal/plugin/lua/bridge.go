package lua

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/loom/internal/event"
)

// EventTable converts an event into a Lua table: the type name under
// "type", the handled flag under "handled", and the payload fields
// flattened alongside.
func EventTable(L *lua.LState, ev *event.Event) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("type", lua.LString(ev.Type.String()))
	t.RawSetString("handled", lua.LBool(ev.Handled))

	switch p := ev.Payload.(type) {
	case event.Mouse:
		t.RawSetString("x", lua.LNumber(p.X))
		t.RawSetString("y", lua.LNumber(p.Y))
		t.RawSetString("button", lua.LString(p.Button.String()))
		t.RawSetString("mods", lua.LString(p.Mods.String()))
	case event.ScrollPayload:
		t.RawSetString("x", lua.LNumber(p.X))
		t.RawSetString("y", lua.LNumber(p.Y))
		t.RawSetString("dx", lua.LNumber(p.DX))
		t.RawSetString("dy", lua.LNumber(p.DY))
	case event.Key:
		t.RawSetString("key", lua.LString(p.Chord().String()))
		if p.Rune != 0 {
			t.RawSetString("rune", lua.LString(string(p.Rune)))
		}
		t.RawSetString("mods", lua.LString(p.Mods.String()))
	case event.Text:
		t.RawSetString("text", lua.LString(p.Text))
	case event.Resize:
		t.RawSetString("width", lua.LNumber(p.Width))
		t.RawSetString("height", lua.LNumber(p.Height))
	case event.Container:
		t.RawSetString("id", lua.LString(p.ID))
	case event.File:
		t.RawSetString("path", lua.LString(p.Path))
		t.RawSetString("is_dir", lua.LBool(p.IsDir))
		t.RawSetString("expanded", lua.LBool(p.Expanded))
	case event.Tab:
		t.RawSetString("component", lua.LNumber(p.ComponentID))
		t.RawSetString("old_index", lua.LNumber(p.OldIndex))
		t.RawSetString("new_index", lua.LNumber(p.NewIndex))
		t.RawSetString("content_id", lua.LString(p.ContentID))
	case event.SignalPayload:
		t.RawSetString("name", lua.LString(p.Name))
	case event.Dialog:
		paths := L.NewTable()
		for i, path := range p.Paths {
			paths.RawSetInt(i+1, lua.LString(path))
		}
		t.RawSetString("paths", paths)
		t.RawSetString("canceled", lua.LBool(p.Canceled))
		if p.Err != "" {
			t.RawSetString("err", lua.LString(p.Err))
		}
	case event.Config:
		t.RawSetString("path", lua.LString(p.Path))
	case event.Plugin:
		t.RawSetString("id", lua.LString(p.ID))
		t.RawSetString("ok", lua.LBool(p.OK))
	case event.CustomPayload:
		t.RawSetString("name", lua.LString(p.Name))
		t.RawSetString("data", ToLuaValue(L, p.Data))
	}
	return t
}

// ToGoValue converts a Lua value to a Go value. Tables with contiguous
// integer keys from 1 become []any, other tables map[string]any.
func ToGoValue(lv lua.LValue) any {
	return toGo(lv, make(map[*lua.LTable]bool))
}

func toGo(lv lua.LValue, visited map[*lua.LTable]bool) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if visited[v] {
			return nil
		}
		visited[v] = true
		return tableToGo(v, visited)
	case *lua.LUserData:
		return v.Value
	default:
		return nil
	}
}

func tableToGo(t *lua.LTable, visited map[*lua.LTable]bool) any {
	n := t.Len()
	count := 0
	t.ForEach(func(_, _ lua.LValue) { count++ })

	if n > 0 && n == count {
		arr := make([]any, n)
		for i := 1; i <= n; i++ {
			arr[i-1] = toGo(t.RawGetInt(i), visited)
		}
		return arr
	}

	m := make(map[string]any, count)
	t.ForEach(func(k, v lua.LValue) {
		var key string
		switch kv := k.(type) {
		case lua.LString:
			key = string(kv)
		case lua.LNumber:
			key = fmt.Sprintf("%v", float64(kv))
		default:
			key = k.String()
		}
		m[key] = toGo(v, visited)
	})
	return m
}

// ToLuaValue converts a Go value to a Lua value. Unsupported types become
// userdata.
func ToLuaValue(L *lua.LState, v any) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(val)
	case int:
		return lua.LNumber(val)
	case int32:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case uint64:
		return lua.LNumber(val)
	case float32:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case string:
		return lua.LString(val)
	case []string:
		t := L.NewTable()
		for i, s := range val {
			t.RawSetInt(i+1, lua.LString(s))
		}
		return t
	case []any:
		t := L.NewTable()
		for i, e := range val {
			t.RawSetInt(i+1, ToLuaValue(L, e))
		}
		return t
	case map[string]any:
		t := L.NewTable()
		for k, e := range val {
			t.RawSetString(k, ToLuaValue(L, e))
		}
		return t
	case lua.LValue:
		return val
	default:
		ud := L.NewUserData()
		ud.Value = v
		return ud
	}
}
