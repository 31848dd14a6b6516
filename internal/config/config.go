package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dshills/loom/internal/event"
	"github.com/dshills/loom/internal/input/key"
	"github.com/dshills/loom/internal/logging"
	"github.com/dshills/loom/internal/schedule"
	"github.com/dshills/loom/internal/ui"
)

// Limits enforced by Validate.
const (
	MinArenaBytes = 4 * 1024
	MaxArenaBytes = 64 * 1024 * 1024
	MaxDelayMS    = 1000
	MaxIdlePollMS = 10000
)

// Config is the complete editor configuration.
type Config struct {
	Render    RenderConfig     `toml:"render" yaml:"render"`
	Events    EventsConfig     `toml:"events" yaml:"events"`
	Log       LogConfig        `toml:"log" yaml:"log"`
	Theme     ThemeConfig      `toml:"theme" yaml:"theme"`
	Shortcuts []ShortcutConfig `toml:"shortcuts" yaml:"shortcuts"`
	Plugins   []PluginConfig   `toml:"plugins" yaml:"plugins"`
}

// RenderConfig holds render scheduler timings in milliseconds.
type RenderConfig struct {
	DelayMS    int `toml:"delay_ms" yaml:"delay_ms"`
	AnimateMS  int `toml:"animate_ms" yaml:"animate_ms"`
	IdlePollMS int `toml:"idle_poll_ms" yaml:"idle_poll_ms"`
	FrameMS    int `toml:"frame_ms" yaml:"frame_ms"`
}

// EventsConfig sizes the event arena.
type EventsConfig struct {
	ArenaBytes int `toml:"arena_bytes" yaml:"arena_bytes"`
}

// LogConfig selects the log level and destination. An empty File means
// the default destination chosen by the binary.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
	File  string `toml:"file" yaml:"file"`
}

// ThemeConfig holds hex colors and the hover highlight amount.
type ThemeConfig struct {
	Background   string  `toml:"background" yaml:"background"`
	Panel        string  `toml:"panel" yaml:"panel"`
	Accent       string  `toml:"accent" yaml:"accent"`
	Text         string  `toml:"text" yaml:"text"`
	HoverLighten float64 `toml:"hover_lighten" yaml:"hover_lighten"`
}

// ShortcutConfig binds a key chord, such as "ctrl+shift+p", to a signal.
type ShortcutConfig struct {
	Keys   string `toml:"keys" yaml:"keys"`
	Signal string `toml:"signal" yaml:"signal"`
}

// PluginConfig describes a script plugin to load.
type PluginConfig struct {
	// ID defaults to the script file name without extension.
	ID       string   `toml:"id" yaml:"id"`
	Path     string   `toml:"path" yaml:"path"`
	Priority int      `toml:"priority" yaml:"priority"`
	Events   []string `toml:"events" yaml:"events"`

	// Enabled defaults to true when omitted.
	Enabled *bool `toml:"enabled,omitempty" yaml:"enabled,omitempty"`
}

// IsEnabled reports whether the plugin should be loaded.
func (p PluginConfig) IsEnabled() bool {
	return p.Enabled == nil || *p.Enabled
}

// PluginID returns the configured id or the script's base name.
func (p PluginConfig) PluginID() string {
	if p.ID != "" {
		return p.ID
	}
	base := filepath.Base(p.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			DelayMS:    int(schedule.DefaultRenderDelay / time.Millisecond),
			AnimateMS:  int(schedule.DefaultAnimateWindow / time.Millisecond),
			IdlePollMS: int(schedule.DefaultIdlePoll / time.Millisecond),
			FrameMS:    int(schedule.DefaultFramePeriod / time.Millisecond),
		},
		Events: EventsConfig{
			ArenaBytes: event.DefaultArenaBytes,
		},
		Log: LogConfig{
			Level: "info",
		},
		Theme: ThemeConfig{
			Background:   ui.DefaultBackground.Hex(),
			Panel:        "#252526",
			Accent:       "#007acc",
			Text:         ui.DefaultText.Hex(),
			HoverLighten: 0.08,
		},
		Shortcuts: []ShortcutConfig{
			{Keys: "ctrl+q", Signal: "app.quit"},
		},
	}
}

// Schedule converts the render timings for the scheduler.
func (r RenderConfig) Schedule() schedule.Config {
	return schedule.Config{
		RenderDelay:   time.Duration(r.DelayMS) * time.Millisecond,
		AnimateWindow: time.Duration(r.AnimateMS) * time.Millisecond,
		IdlePoll:      time.Duration(r.IdlePollMS) * time.Millisecond,
		FramePeriod:   time.Duration(r.FrameMS) * time.Millisecond,
	}
}

// Theme is a resolved ThemeConfig.
type Theme struct {
	Background   ui.Color
	Panel        ui.Color
	Accent       ui.Color
	Text         ui.Color
	HoverLighten float64
}

// Resolve parses the theme colors. Colors that do not parse fall back to
// the defaults; Validate reports them.
func (t ThemeConfig) Resolve() Theme {
	def := Default().Theme
	color := func(s, fallback string) ui.Color {
		if c, err := ui.ParseColor(s); err == nil {
			return c
		}
		return ui.MustParseColor(fallback)
	}
	return Theme{
		Background:   color(t.Background, def.Background),
		Panel:        color(t.Panel, def.Panel),
		Accent:       color(t.Accent, def.Accent),
		Text:         color(t.Text, def.Text),
		HoverLighten: t.HoverLighten,
	}
}

// Validate checks every setting and returns all problems joined. Each
// problem is a *ValidationError matching ErrValidationFailed.
func (c *Config) Validate() error {
	var errs []error
	fail := func(path, msg string, v any) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: v})
	}

	r := c.Render
	if r.DelayMS < 0 || r.DelayMS > MaxDelayMS {
		fail("render.delay_ms", fmt.Sprintf("must be between 0 and %d", MaxDelayMS), r.DelayMS)
	}
	if r.AnimateMS < 0 {
		fail("render.animate_ms", "must not be negative", r.AnimateMS)
	}
	if r.IdlePollMS < 1 || r.IdlePollMS > MaxIdlePollMS {
		fail("render.idle_poll_ms", fmt.Sprintf("must be between 1 and %d", MaxIdlePollMS), r.IdlePollMS)
	}
	if r.FrameMS < 1 || r.FrameMS > MaxDelayMS {
		fail("render.frame_ms", fmt.Sprintf("must be between 1 and %d", MaxDelayMS), r.FrameMS)
	}

	if a := c.Events.ArenaBytes; a < MinArenaBytes || a > MaxArenaBytes {
		fail("events.arena_bytes", fmt.Sprintf("must be between %d and %d", MinArenaBytes, MaxArenaBytes), a)
	}

	if !logging.ValidLevel(c.Log.Level) {
		fail("log.level", "must be debug, info, warn or error", c.Log.Level)
	}

	for _, tc := range []struct{ path, value string }{
		{"theme.background", c.Theme.Background},
		{"theme.panel", c.Theme.Panel},
		{"theme.accent", c.Theme.Accent},
		{"theme.text", c.Theme.Text},
	} {
		if _, err := ui.ParseColor(tc.value); err != nil {
			fail(tc.path, err.Error(), tc.value)
		}
	}
	if h := c.Theme.HoverLighten; h < 0 || h > 1 {
		fail("theme.hover_lighten", "must be between 0 and 1", h)
	}

	for i, s := range c.Shortcuts {
		path := fmt.Sprintf("shortcuts[%d]", i)
		if _, err := key.ParseChord(s.Keys); err != nil {
			fail(path+".keys", err.Error(), s.Keys)
		}
		if s.Signal == "" {
			fail(path+".signal", "must not be empty", s.Signal)
		}
	}

	seen := make(map[string]bool)
	for i, p := range c.Plugins {
		path := fmt.Sprintf("plugins[%d]", i)
		if p.Path == "" {
			fail(path+".path", "must not be empty", p.Path)
			continue
		}
		id := p.PluginID()
		if seen[id] {
			fail(path+".id", "duplicate plugin id", id)
		}
		seen[id] = true
		for _, name := range p.Events {
			if _, ok := event.ParseType(name); !ok {
				fail(path+".events", "unknown event type", name)
			}
		}
	}

	return errors.Join(errs...)
}
