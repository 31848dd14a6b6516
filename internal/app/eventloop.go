package app

import (
	"errors"
	"time"

	"github.com/dshills/loom/internal/compositor"
	"github.com/dshills/loom/internal/event"
	"github.com/dshills/loom/internal/renderer/backend"
)

// inputBuffer bounds the batches waiting between the input goroutine and
// the loop.
const inputBuffer = 64

// pumpInput polls the backend on its own goroutine. The channel closes when
// the backend stops delivering input.
func (app *Application) pumpInput(b backend.Backend) <-chan []backend.Input {
	ch := make(chan []backend.Input, inputBuffer)
	go func() {
		defer close(ch)
		for {
			batch, err := b.PollInput()
			if err != nil {
				if !errors.Is(err, backend.ErrClosed) {
					app.log.Error("poll input: %v", err)
				}
				return
			}
			if len(batch) == 0 {
				continue
			}
			select {
			case ch <- batch:
			case <-app.done:
				return
			}
		}
	}()
	return ch
}

// eventLoop waits for input, a mailbox post or the scheduler's timeout,
// then runs one iteration. The wait is bounded, so cross-thread render
// requests are noticed within the idle poll interval.
func (app *Application) eventLoop(inputs <-chan []backend.Input) error {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		var batch []backend.Input
		select {
		case <-app.done:
			return nil
		case in, ok := <-inputs:
			if !ok {
				app.log.Info("input closed")
				return nil
			}
			batch = in
		case <-app.results.Ready():
		case <-app.reloads.Ready():
		case <-timer.C:
		}

		if app.tick(batch) {
			return nil
		}
		timer.Reset(app.sched.NextTimeout(app.sched.Now()))
	}
}

// tick runs one loop iteration and reports whether the loop should end.
func (app *Application) tick(batch []backend.Input) bool {
	if len(batch) > 0 {
		app.metrics.RecordInput(len(batch))
	}
	app.drainMailboxes()
	for _, in := range batch {
		app.handleInput(in)
	}

	now := app.sched.Now()
	if !app.lastUpdate.IsZero() {
		app.plugins.Update(now.Sub(app.lastUpdate).Seconds())
	}
	app.lastUpdate = now

	rendered := app.sched.ShouldRender(now)
	if rendered {
		app.frame(now)
	}

	app.bus.Reset()
	app.metrics.RecordIteration(rendered)
	return app.quit
}

// drainMailboxes takes what other goroutines posted since the last
// iteration.
func (app *Application) drainMailboxes() {
	if d, ok := app.results.Take(); ok {
		app.bus.Emit(event.FileDialogResult, d)
	}
	if cfg, ok := app.reloads.Take(); ok {
		app.applyConfig(cfg)
	}
}

// frame runs the compositor pass. The one-shot schedule is cleared first
// so render requests made by click handlers during the pass survive.
func (app *Application) frame(now time.Time) {
	app.sched.Rendered(now)

	start := time.Now()
	res := app.comp.Frame(app.root, compositor.Input{
		Width:       app.width,
		Height:      app.height,
		PointerX:    app.pointer.x,
		PointerY:    app.pointer.y,
		PointerDown: app.pointer.down,
		Pressed:     app.pointer.pressed,
	})
	app.pointer.pressed = false
	app.metrics.RecordFrame(time.Since(start))

	if res.Clicked != nil {
		app.bus.Emit(event.ContainerClicked, event.Container{ID: res.Clicked.ID})
	}
}
