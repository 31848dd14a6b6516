package app

import (
	"path/filepath"

	"github.com/dshills/loom/internal/component"
	"github.com/dshills/loom/internal/compositor"
	"github.com/dshills/loom/internal/config"
	"github.com/dshills/loom/internal/event"
	"github.com/dshills/loom/internal/input/shortcut"
	"github.com/dshills/loom/internal/layout/cell"
	"github.com/dshills/loom/internal/logging"
	"github.com/dshills/loom/internal/plugin"
	"github.com/dshills/loom/internal/plugin/lua"
	"github.com/dshills/loom/internal/schedule"
	"github.com/dshills/loom/internal/ui"
)

// RootID is the id of the UI tree root.
const RootID = "root"

// bootstrap builds the components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Configuration
	cfg := app.opts.Config
	if cfg == nil {
		var err error
		cfg, err = config.Load(app.opts.ConfigPath)
		if err != nil {
			return &InitError{Component: "config", Err: err}
		}
	} else if err := cfg.Validate(); err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.cfg = cfg

	// 2. Logging
	app.log = app.opts.Logger
	if app.log == nil {
		lc := logging.DefaultConfig()
		lc.Level = logging.ParseLevel(cfg.Log.Level)
		app.log = logging.New(lc)
	}
	app.log = app.log.WithComponent("app")

	// 3. Event bus
	app.bus = event.NewBus(
		event.WithArenaBytes(cfg.Events.ArenaBytes),
		event.WithLogger(app.log),
	)

	// 4. Render scheduler
	var schedOpts []schedule.Option
	if app.opts.Clock != nil {
		schedOpts = append(schedOpts, schedule.WithClock(app.opts.Clock))
	}
	app.sched = schedule.New(cfg.Render.Schedule(), schedOpts...)

	// 5. Shortcuts
	app.shortcuts = shortcut.NewRegistry(app.log)
	app.registerShortcuts(cfg.Shortcuts)

	// 6. UI tree, layout engine and compositor
	app.root = ui.NewNode(RootID, ui.KindContainer)
	app.engine = cell.New()
	app.comp = compositor.New(app.engine, nil, compositor.WithLogger(app.log))
	app.components = component.NewRegistry(app.log)
	app.applyTheme(cfg.Theme.Resolve())

	// 7. Plugins
	app.plugins = plugin.NewRegistry(plugin.WithLogger(app.log))
	app.api = &hostAPI{app: app}
	if err := app.subscribe(); err != nil {
		return &InitError{Component: "event bus", Err: err}
	}
	app.loadScripts(cfg.Plugins)

	return nil
}

// registerShortcuts registers the configured shortcuts and then the
// built-in quit binding, which a configured binding for the same chord
// overrides.
func (app *Application) registerShortcuts(list []config.ShortcutConfig) {
	for _, s := range list {
		app.shortcuts.RegisterSpec(s.Keys, s.Signal)
	}
	if _, taken := app.shortcuts.LookupChord(quitChord); !taken {
		app.shortcuts.Register(quitChord, QuitSignal)
	}
}

// loadScripts compiles and registers the enabled script plugins. A script
// that fails to load is logged and skipped.
func (app *Application) loadScripts(list []config.PluginConfig) {
	for _, pc := range list {
		if !pc.IsEnabled() {
			app.log.Debug("plugin %s disabled", pc.PluginID())
			continue
		}
		p, err := lua.Load(lua.Spec{
			ID:         pc.ID,
			Path:       app.resolvePath(pc.Path),
			Priority:   pc.Priority,
			Events:     pc.Events,
			Components: app.components,
		})
		if err != nil {
			app.log.Error("load plugin %s: %v", pc.PluginID(), err)
			continue
		}
		if err := app.RegisterPlugin(p); err != nil {
			app.log.Error("%v", err)
		}
	}
}

// resolvePath makes a relative path relative to the config file.
func (app *Application) resolvePath(path string) string {
	if filepath.IsAbs(path) || app.opts.ConfigPath == "" {
		return path
	}
	return filepath.Join(filepath.Dir(app.opts.ConfigPath), path)
}

// applyTheme colors the root, the hover highlight and new components.
func (app *Application) applyTheme(t config.Theme) {
	app.theme = t
	app.root.Style.Background = t.Background
	app.root.Style.TextColor = t.Text
	app.comp.SetHoverLighten(t.HoverLighten)
	app.components.SetTheme(tabTheme(t))
}

// tabTheme derives tab container colors from the editor theme.
func tabTheme(t config.Theme) component.TabTheme {
	tt := component.DefaultTabTheme()
	tt.Background = t.Background
	tt.Header = t.Panel
	tt.Active = t.Accent
	tt.Inactive = t.Panel.Lighten(0.05)
	tt.Text = t.Text
	return tt
}
