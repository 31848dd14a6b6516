package app

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/loom/internal/component"
	"github.com/dshills/loom/internal/compositor"
	"github.com/dshills/loom/internal/config"
	"github.com/dshills/loom/internal/event"
	"github.com/dshills/loom/internal/input/key"
	"github.com/dshills/loom/internal/input/shortcut"
	"github.com/dshills/loom/internal/layout/cell"
	"github.com/dshills/loom/internal/logging"
	"github.com/dshills/loom/internal/mailbox"
	"github.com/dshills/loom/internal/plugin"
	"github.com/dshills/loom/internal/renderer/backend"
	"github.com/dshills/loom/internal/schedule"
	"github.com/dshills/loom/internal/ui"
)

// QuitSignal ends the main loop when no plugin consumes it.
const QuitSignal = "app.quit"

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file. Relative plugin paths are
	// resolved against its directory.
	ConfigPath string

	// Config, when set, is used instead of loading ConfigPath.
	Config *config.Config

	// Watch reloads ConfigPath when it changes.
	Watch bool

	// Logger defaults to a stderr logger at the configured level.
	Logger *logging.Logger

	// Clock drives the render scheduler. Defaults to time.Now.
	Clock func() time.Time
}

// binding is a shortcut a plugin registered.
type binding struct {
	chord  key.Chord
	signal string
}

// pointer is the loop's view of the mouse.
type pointer struct {
	x, y int
	down bool

	// pressed is set by a button press and consumed by the next frame.
	pressed bool
}

// Application owns the kernel components and runs the main loop. Apart
// from Deliver and Shutdown its methods belong to the UI thread.
type Application struct {
	opts  Options
	cfg   *config.Config
	theme config.Theme
	log   *logging.Logger

	bus        *event.Bus
	plugins    *plugin.Registry
	shortcuts  *shortcut.Registry
	sched      *schedule.Scheduler
	components *component.Registry
	engine     *cell.Engine
	comp       *compositor.Compositor
	root       *ui.Node
	api        *hostAPI
	watcher    *config.Watcher

	mu      sync.Mutex
	backend backend.Backend

	// Cross-thread handoff to the UI thread.
	results *mailbox.Mailbox[event.Dialog]
	reloads *mailbox.Mailbox[*config.Config]

	// Shortcuts registered by plugins, replayed after a config reload.
	pluginShortcuts []binding

	metrics *Metrics

	width, height int
	pointer       pointer
	lastUpdate    time.Time
	quit          bool

	running   atomic.Bool
	done      chan struct{}
	closeOnce sync.Once
}

// New creates an Application and builds its components.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:    opts,
		results: mailbox.New[event.Dialog](),
		reloads: mailbox.New[*config.Config](),
		metrics: NewMetrics(),
		done:    make(chan struct{}),
	}
	if err := app.bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// SetBackend sets the platform backend. It must be called before Run.
func (app *Application) SetBackend(b backend.Backend) error {
	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.mu.Lock()
	app.backend = b
	app.mu.Unlock()
	return nil
}

// RegisterPlugin adds a compiled-in plugin. It must be called before Run.
func (app *Application) RegisterPlugin(p *plugin.Plugin) error {
	if app.running.Load() {
		return ErrAlreadyRunning
	}
	if app.plugins.Register(p) == plugin.InvalidHandle {
		if p != nil && app.plugins.Get(p.ID) != nil {
			return fmt.Errorf("register %s: %w", p.ID, plugin.ErrDuplicateID)
		}
		return plugin.ErrInvalidPlugin
	}
	return nil
}

// IsRunning reports whether the main loop is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the active configuration.
func (app *Application) Config() *config.Config {
	return app.cfg
}

// Theme returns the resolved theme.
func (app *Application) Theme() config.Theme {
	return app.theme
}

// Bus returns the event bus.
func (app *Application) Bus() *event.Bus {
	return app.bus
}

// Plugins returns the plugin registry.
func (app *Application) Plugins() *plugin.Registry {
	return app.plugins
}

// Shortcuts returns the shortcut table.
func (app *Application) Shortcuts() *shortcut.Registry {
	return app.shortcuts
}

// Scheduler returns the render scheduler.
func (app *Application) Scheduler() *schedule.Scheduler {
	return app.sched
}

// Components returns the component registry.
func (app *Application) Components() *component.Registry {
	return app.components
}

// Root returns the root of the UI tree.
func (app *Application) Root() *ui.Node {
	return app.root
}

// Metrics returns the loop metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// API returns the host surface handed to plugins.
func (app *Application) API() plugin.API {
	return app.api
}
