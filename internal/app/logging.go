package app

import (
	"time"

	"github.com/dshills/loom/internal/logging"
)

// logSummary writes the loop, bus and scheduler counters at shutdown.
func (app *Application) logSummary() {
	if !app.log.Enabled(logging.LevelInfo) {
		return
	}
	m := app.metrics.Snapshot()
	bus := app.bus.Stats()
	sched := app.sched.Stats()

	app.log.WithFields(map[string]any{
		"uptime":     m.Uptime.Round(time.Millisecond).String(),
		"frames":     m.FrameCount,
		"avg_frame":  m.AvgFrameTime().String(),
		"iterations": m.Iterations,
		"idle_ratio": m.IdleRatio(),
		"inputs":     m.InputEvents,
		"emitted":    bus.Emitted,
		"dropped":    bus.Dropped,
		"handled":    bus.Handled,
		"requests":   sched.Requests,
		"immediate":  sched.Immediate,
		"reloads":    m.Reloads,
		"deliveries": m.Delivered,
	}).Info("session summary")
}
