package lua

import (
	"testing"

	"github.com/dshills/loom/internal/component"
	"github.com/dshills/loom/internal/event"
	"github.com/dshills/loom/internal/plugin"
	"github.com/dshills/loom/internal/plugin/plugintest"
)

func loadWithTabs(t *testing.T, source string) (*plugin.Plugin, *plugin.Registry, *plugintest.API, *component.Registry) {
	t.Helper()
	comps := component.NewRegistry(nil)
	p, err := Load(Spec{ID: "tabbed", Source: source, Components: comps})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	api := plugintest.New()
	r := plugin.NewRegistry()
	r.Register(p)
	api.Bus.Subscribe("plugins", 0, r.Dispatch)
	if !r.InitPlugin(p.ID, api) {
		t.Fatal("init failed")
	}
	return p, r, api, comps
}

func TestTabs_Lifecycle(t *testing.T) {
	src := `
function init()
  cid = tabs.new(nil, {"foo", "bar"}, "editor-tabs")
  return cid ~= nil
end
function on_event(ev)
  if ev.type == "tab_changed" then
    first_change = first_change or (ev.old_index .. ">" .. ev.new_index)
  end
  if ev.type == "signal" and ev.name == "go" then
    tabs.select(cid, 1)
    added = tabs.add(cid, "baz", 0)
    removed = tabs.remove(cid, 2)
    count = tabs.count(cid)
    active = tabs.active(cid)
    content = tabs.content(cid, active)
    renamed = tabs.set_title(cid, 0, "first")
  end
end
`
	p, _, api, comps := loadWithTabs(t, src)
	if comps.Len() != 1 {
		t.Fatalf("expected one component, got %d", comps.Len())
	}
	if api.FindNode("editor-tabs") == nil {
		t.Fatal("tab container should be attached to the root")
	}

	api.Emit(event.Signal, event.SignalPayload{Name: "go"})

	L := p.VTable.(*Script).State().L
	if got := L.GetGlobal("added").String(); got != "0" {
		t.Errorf("added = %s", got)
	}
	// foo bar -> baz foo bar with bar active at 2 -> remove 2 -> baz foo.
	if L.GetGlobal("removed").String() != "true" || L.GetGlobal("count").String() != "2" {
		t.Errorf("removed = %s count = %s", L.GetGlobal("removed"), L.GetGlobal("count"))
	}
	if L.GetGlobal("active").String() != "1" {
		t.Errorf("active = %s", L.GetGlobal("active"))
	}
	tc := comps.Tabs(component.ID(1))
	if tc == nil || L.GetGlobal("content").String() != tc.Content(1).ID {
		t.Error("content should name the active tab's content node")
	}
	if tc.Title(0) != "first" {
		t.Errorf("title = %q", tc.Title(0))
	}
	if api.Count(event.TabChanged) < 1 {
		t.Error("select should emit tab_changed")
	}
	if first := L.GetGlobal("first_change").String(); first != "0>1" {
		t.Errorf("first change = %s", first)
	}
}

func TestTabs_ForeignAndShutdown(t *testing.T) {
	src := `
function init()
  mine = tabs.new(nil, {"a"})
  return tabs.select(999, 0) == false and tabs.active(999) == -1 and tabs.destroy(999) == false
end
`
	_, r, api, comps := loadWithTabs(t, src)

	other, err := comps.NewTabContainer(nil, api.Root(), []string{"x", "y"})
	if err != nil {
		t.Fatal(err)
	}
	if comps.Len() != 2 {
		t.Fatalf("len = %d", comps.Len())
	}

	r.ShutdownAll()
	if comps.Len() != 1 || comps.Get(other.ID()) == nil {
		t.Error("shutdown should destroy only the script's own containers")
	}
}
