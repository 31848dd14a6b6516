package app

import (
	"github.com/dshills/loom/internal/config"
	"github.com/dshills/loom/internal/event"
	"github.com/dshills/loom/internal/logging"
	"github.com/dshills/loom/internal/plugin"
	"github.com/dshills/loom/internal/renderer/backend"
)

// Run initializes the backend and plugins and runs the main loop until
// quit is signaled, Shutdown is called or the backend closes its input.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	select {
	case <-app.done:
		return ErrClosed
	default:
	}

	b, err := app.attach()
	if err != nil {
		return err
	}
	defer b.Shutdown()

	app.start()
	defer app.stop()

	return app.eventLoop(app.pumpInput(b))
}

// attach initializes the backend and points the compositor at it.
func (app *Application) attach() (backend.Backend, error) {
	app.mu.Lock()
	b := app.backend
	app.mu.Unlock()
	if b == nil {
		return nil, ErrNoBackend
	}

	if err := b.Init(); err != nil {
		return nil, &InitError{Component: "backend", Err: err}
	}
	app.comp.SetRenderer(b)
	app.width, app.height = b.Size()
	return b, nil
}

// start initializes plugins, announces each result and starts the config
// watcher. The first frame is requested immediately.
func (app *Application) start() {
	failed := app.plugins.InitAll(app.api)
	for _, id := range app.plugins.IDs() {
		p := app.plugins.Get(id)
		app.bus.Emit(event.PluginInitialized, event.Plugin{ID: id, OK: p.State() == plugin.StateInitialized})
	}
	if len(failed) > 0 {
		app.log.Warn("plugins failed to initialize: %v", failed)
	}

	if app.opts.Watch && app.opts.ConfigPath != "" {
		w, err := config.NewWatcher(app.opts.ConfigPath, app.onConfigChange, config.WithWatcherLogger(app.log))
		if err != nil {
			app.log.Warn("config watch disabled: %v", err)
		} else {
			app.watcher = w
		}
	}

	app.sched.RequestRenderImmediate()
}

// stop tears down in reverse order of start.
func (app *Application) stop() {
	app.closeDone()
	if app.watcher != nil {
		if err := app.watcher.Close(); err != nil {
			app.log.Warn("close config watcher: %v", err)
		}
		app.watcher = nil
	}
	app.plugins.ShutdownAll()
	if n := app.components.DestroyAll(); n > 0 {
		app.log.Debug("destroyed %d components", n)
	}
	app.logSummary()
}

// Shutdown ends the main loop. It may be called from any goroutine and
// more than once.
func (app *Application) Shutdown() {
	app.closeDone()

	app.mu.Lock()
	b := app.backend
	app.mu.Unlock()
	if b != nil && app.running.Load() {
		b.Interrupt()
	}
}

func (app *Application) closeDone() {
	app.closeOnce.Do(func() { close(app.done) })
}

// Deliver hands a platform result, such as a native file dialog
// completion, to the UI thread. It may be called from any goroutine. The
// loop emits it as FileDialogResult on its next iteration; a result still
// waiting is replaced.
func (app *Application) Deliver(d event.Dialog) {
	replaced := app.results.Post(d)
	app.metrics.RecordDelivery(replaced)
	if replaced {
		app.log.Warn("dialog result replaced before the loop took it")
	}
	app.sched.RequestRenderImmediate()
}

// onConfigChange runs on the watcher goroutine.
func (app *Application) onConfigChange(cfg *config.Config, err error) {
	if err != nil {
		app.log.Warn("config reload rejected: %v", err)
		return
	}
	app.reloads.Post(cfg)
	app.sched.RequestRenderImmediate()
}

// applyConfig switches to a reloaded configuration on the UI thread. The
// arena size and the plugin list take effect on the next start.
func (app *Application) applyConfig(cfg *config.Config) {
	app.cfg = cfg
	app.log.SetLevel(logging.ParseLevel(cfg.Log.Level))
	app.sched.SetConfig(cfg.Render.Schedule())
	app.applyTheme(cfg.Theme.Resolve())

	app.shortcuts.Reset()
	app.registerShortcuts(cfg.Shortcuts)
	for _, b := range app.pluginShortcuts {
		app.shortcuts.Register(b.chord, b.signal)
	}

	app.metrics.RecordReload()
	app.log.Info("configuration reloaded")
	app.bus.Emit(event.ConfigReloaded, event.Config{Path: app.opts.ConfigPath})
	app.sched.RequestRenderImmediate()
}
