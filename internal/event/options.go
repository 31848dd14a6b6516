package event

import "github.com/dshills/loom/internal/logging"

// BusOption configures a Bus.
type BusOption func(*busConfig)

type busConfig struct {
	arenaBytes   int
	logger       *logging.Logger
	panicHandler PanicHandler
}

// PanicHandler is called after a handler panic has been recovered.
type PanicHandler func(err *PanicError)

func defaultBusConfig() busConfig {
	return busConfig{
		arenaBytes: DefaultArenaBytes,
	}
}

// WithArenaBytes sets the size of the per-frame arena.
func WithArenaBytes(n int) BusOption {
	return func(c *busConfig) {
		if n > 0 {
			c.arenaBytes = n
		}
	}
}

// WithLogger sets the logger for dropped emissions and recovered panics.
func WithLogger(l *logging.Logger) BusOption {
	return func(c *busConfig) {
		c.logger = l
	}
}

// WithPanicHandler sets a callback for recovered handler panics.
func WithPanicHandler(h PanicHandler) BusOption {
	return func(c *busConfig) {
		c.panicHandler = h
	}
}
