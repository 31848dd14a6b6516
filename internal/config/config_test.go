package config

import (
	"errors"
	"testing"
	"time"

	"github.com/dshills/loom/internal/schedule"
	"github.com/dshills/loom/internal/ui"
)

func TestDefault_Valid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Render.Schedule() != schedule.DefaultConfig() {
		t.Errorf("schedule = %+v", cfg.Render.Schedule())
	}
	if len(cfg.Shortcuts) != 1 || cfg.Shortcuts[0].Signal != "app.quit" {
		t.Errorf("default shortcuts = %+v", cfg.Shortcuts)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"negative delay", func(c *Config) { c.Render.DelayMS = -1 }, "render.delay_ms"},
		{"huge delay", func(c *Config) { c.Render.DelayMS = MaxDelayMS + 1 }, "render.delay_ms"},
		{"negative animate", func(c *Config) { c.Render.AnimateMS = -5 }, "render.animate_ms"},
		{"zero idle poll", func(c *Config) { c.Render.IdlePollMS = 0 }, "render.idle_poll_ms"},
		{"zero frame", func(c *Config) { c.Render.FrameMS = 0 }, "render.frame_ms"},
		{"tiny arena", func(c *Config) { c.Events.ArenaBytes = 16 }, "events.arena_bytes"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad color", func(c *Config) { c.Theme.Accent = "blue" }, "theme.accent"},
		{"hover out of range", func(c *Config) { c.Theme.HoverLighten = 2 }, "theme.hover_lighten"},
		{"bad chord", func(c *Config) { c.Shortcuts = []ShortcutConfig{{Keys: "ctrl+", Signal: "x"}} }, "shortcuts[0].keys"},
		{"empty signal", func(c *Config) { c.Shortcuts = []ShortcutConfig{{Keys: "ctrl+s"}} }, "shortcuts[0].signal"},
		{"plugin without path", func(c *Config) { c.Plugins = []PluginConfig{{ID: "x"}} }, "plugins[0].path"},
		{"duplicate plugin", func(c *Config) {
			c.Plugins = []PluginConfig{{Path: "a/status.lua"}, {Path: "b/status.lua"}}
		}, "plugins[1].id"},
		{"unknown plugin event", func(c *Config) {
			c.Plugins = []PluginConfig{{Path: "p.lua", Events: []string{"nope"}}}
		}, "plugins[0].events"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrValidationFailed) {
				t.Fatalf("expected validation error, got %v", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Path != tt.path {
				t.Errorf("error path = %v, want %s", err, tt.path)
			}
		})
	}
}

func TestValidate_CollectsAll(t *testing.T) {
	cfg := Default()
	cfg.Render.FrameMS = 0
	cfg.Log.Level = "nope"
	err := cfg.Validate()

	joined, ok := err.(interface{ Unwrap() []error })
	if !ok || len(joined.Unwrap()) != 2 {
		t.Errorf("expected two problems, got %v", err)
	}
}

func TestRenderConfig_Schedule(t *testing.T) {
	r := RenderConfig{DelayMS: 5, AnimateMS: 250, IdlePollMS: 50, FrameMS: 8}
	got := r.Schedule()
	if got.RenderDelay != 5*time.Millisecond || got.AnimateWindow != 250*time.Millisecond ||
		got.IdlePoll != 50*time.Millisecond || got.FramePeriod != 8*time.Millisecond {
		t.Errorf("schedule = %+v", got)
	}
}

func TestThemeConfig_Resolve(t *testing.T) {
	th := ThemeConfig{Background: "#000000", Panel: "garbage", Accent: "#fff", Text: "#10203040", HoverLighten: 0.2}.Resolve()

	if th.Background != ui.ColorBlack || th.Accent != ui.ColorWhite {
		t.Errorf("parsed colors = %+v", th)
	}
	if th.Panel != ui.MustParseColor(Default().Theme.Panel) {
		t.Error("invalid color should fall back to the default")
	}
	if th.Text.A != 0x40 || th.HoverLighten != 0.2 {
		t.Errorf("text = %+v hover = %v", th.Text, th.HoverLighten)
	}
}

func TestPluginConfig(t *testing.T) {
	off := false
	tests := []struct {
		p       PluginConfig
		id      string
		enabled bool
	}{
		{PluginConfig{Path: "plugins/status_bar.lua"}, "status_bar", true},
		{PluginConfig{ID: "custom", Path: "x.lua"}, "custom", true},
		{PluginConfig{Path: "x.lua", Enabled: &off}, "x", false},
	}
	for _, tt := range tests {
		if tt.p.PluginID() != tt.id || tt.p.IsEnabled() != tt.enabled {
			t.Errorf("%+v: id=%q enabled=%v", tt.p, tt.p.PluginID(), tt.p.IsEnabled())
		}
	}
}
