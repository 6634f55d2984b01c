package app

import (
	"context"
	"errors"
	"runtime/debug"

	"github.com/dshills/mathkey/internal/input"
	"github.com/dshills/mathkey/internal/input/key"
	"github.com/dshills/mathkey/internal/renderer/backend"
)

// Run initializes the backend, draws the first frame and handles events
// until quit is requested or ctx is cancelled.
func (app *Application) Run(ctx context.Context) error {
	if app.backend == nil {
		return ErrNoBackend
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer app.backend.Shutdown()

	// PollEvent blocks, so cancellation wakes it with an interrupt.
	stop := context.AfterFunc(ctx, func() {
		app.backend.PostEvent(backend.Event{Type: backend.EventInterrupt})
	})
	defer stop()

	app.logger.Info("session %s started", app.engine.ID())
	app.render()

	for {
		ev := app.backend.PollEvent()
		if ctx.Err() != nil {
			return nil
		}

		err := app.HandleEvent(ev)
		if errors.Is(err, ErrQuit) {
			app.logger.Info("session %s ended: %s", app.engine.ID(), app.engine)
			return nil
		}
		if err != nil {
			app.logger.Error("event: %v", err)
		}
	}
}

// HandleEvent processes one backend event and redraws. It returns ErrQuit
// when the session should end. A panic while handling is returned as a
// *RecoveredPanicError.
func (app *Application) HandleEvent(ev backend.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &RecoveredPanicError{Value: r, Stack: string(debug.Stack())}
		}
	}()

	switch ev.Type {
	case backend.EventKey:
		if err := app.handleKey(ev.Key); err != nil {
			return err
		}
	case backend.EventResize:
		app.logger.Debug("resize %dx%d", ev.Width, ev.Height)
	case backend.EventInterrupt:
		app.drainReloads()
	default:
		return nil
	}

	app.render()
	return nil
}

// handleKey decodes k and applies it. Unmapped keys are ignored; rejected
// commands are reported on the status line.
func (app *Application) handleKey(k key.Event) error {
	action, err := app.decoder.Decode(k)
	if errors.Is(err, input.ErrUnmapped) {
		app.logger.Debug("ignored %s", k)
		return nil
	}
	if err != nil {
		return NewOperationError("decode", k.String(), err)
	}
	if action.Quit {
		return ErrQuit
	}

	msg := ""
	if err := app.engine.Apply(action.Command); err != nil {
		msg = err.Error()
	}
	app.setMessage(msg)
	return nil
}

// drainReloads applies every pending reload outcome.
func (app *Application) drainReloads() {
	for {
		select {
		case err := <-app.reloads:
			if err != nil {
				app.logger.WithComponent("config").Warn("reload rejected: %v", err)
				app.setMessage("config: " + err.Error())
				continue
			}
			app.applySettings()
			app.setMessage("")
		default:
			return
		}
	}
}

func (app *Application) setMessage(msg string) {
	app.mu.Lock()
	defer app.mu.Unlock()
	app.message = msg
}

func (app *Application) render() {
	status := "mathkey"
	if msg := app.Message(); msg != "" {
		status += "  " + msg
	}
	app.renderer.SetStatus(status)

	frame := app.renderer.Render(app.engine)

	app.mu.Lock()
	app.frame = frame
	app.mu.Unlock()
}
