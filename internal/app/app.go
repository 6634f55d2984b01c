// Package app wires the formula engine, key decoding, rendering and
// configuration into the interactive editor.
package app

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/dshills/mathkey/internal/config"
	"github.com/dshills/mathkey/internal/config/notify"
	"github.com/dshills/mathkey/internal/engine"
	"github.com/dshills/mathkey/internal/input"
	"github.com/dshills/mathkey/internal/input/keymap"
	"github.com/dshills/mathkey/internal/renderer"
	"github.com/dshills/mathkey/internal/renderer/backend"
)

// Application owns one edit session and the screen it is drawn on.
type Application struct {
	mu sync.Mutex

	config   *config.Config
	engine   *engine.Engine
	decoder  *input.Decoder
	renderer *renderer.Renderer
	backend  backend.Backend
	logger   *Logger

	subs    []*notify.Subscription
	reloads chan error
	message string
	frame   renderer.Frame

	running atomic.Bool
	opts    Options
}

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file. Empty uses defaults
	// and the environment only.
	ConfigPath string

	// Watch reloads the configuration file when it changes.
	Watch bool

	// LogLevel overrides logging.level when set.
	LogLevel string

	// ScriptPath is a Lua script run against the session before the first
	// frame. It overrides script.path when set.
	ScriptPath string

	// Backend is the display. Nil opens the terminal.
	Backend backend.Backend

	// Logger receives application logs. Nil logs to stderr.
	Logger *Logger

	// Environ replaces os.Environ for configuration overrides.
	Environ func() []string
}

// New creates an Application with the given options. Configuration errors
// are logged and the defaults used; a failing startup script is fatal.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:    opts,
		reloads: make(chan error, 8),
	}

	if err := app.bootstrap(); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

// bootstrap initializes components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Logger
	app.logger = app.opts.Logger
	if app.logger == nil {
		app.logger = NewLogger(DefaultLoggerConfig())
	}

	// 2. Config
	app.config = config.New(
		config.WithPath(app.opts.ConfigPath),
		config.WithWatcher(app.opts.Watch),
		config.WithEnviron(app.opts.Environ),
	)
	if err := app.config.Load(context.Background()); err != nil {
		app.logger.WithComponent("config").Warn("using defaults: %v", err)
		app.message = "config: " + err.Error()
	}
	settings := app.config.Settings()
	app.applyLogLevel(settings)

	// 3. Engine
	app.engine = engine.New(
		engine.WithStyle(settings.Style()),
		engine.WithLogger(app.logger.WithComponent("engine")),
	)

	// 4. Input
	app.decoder = app.buildDecoder(settings)

	// 5. Display
	app.backend = app.opts.Backend
	if app.backend == nil {
		term, err := backend.NewTerminal()
		if err != nil {
			return &InitError{Component: "terminal", Err: err}
		}
		app.backend = term
	}
	app.renderer = renderer.New(app.backend, renderer.WithTheme(app.buildTheme(settings)))
	app.renderer.SetStatusVisible(settings.Editor.ShowStatus)

	// 6. Live reload
	app.subs = append(app.subs, app.config.Subscribe("", func(c notify.Change) {
		if c.Type == notify.ChangeReload {
			app.signalReload(nil)
		}
	}))
	app.config.OnError(app.signalReload)

	// 7. Startup script
	script := app.opts.ScriptPath
	if script == "" {
		script = settings.Script.Path
	}
	if script != "" {
		if err := app.RunScript(script); err != nil {
			return &InitError{Component: "script", Err: err}
		}
	}

	return nil
}

// Engine returns the edit session.
func (app *Application) Engine() *engine.Engine { return app.engine }

// Config returns the configuration system.
func (app *Application) Config() *config.Config { return app.config }

// Renderer returns the renderer.
func (app *Application) Renderer() *renderer.Renderer { return app.renderer }

// Logger returns the application logger.
func (app *Application) Logger() *Logger { return app.logger }

// Message returns the text shown after the name on the status line.
func (app *Application) Message() string {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.message
}

// LastFrame returns the most recently rendered frame.
func (app *Application) LastFrame() renderer.Frame {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.frame
}

// IsRunning reports whether Run is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Close stops live reload. It does not touch the backend, which Run
// shuts down itself.
func (app *Application) Close() {
	for _, sub := range app.subs {
		sub.Unsubscribe()
	}
	app.subs = nil
	if app.config != nil {
		if err := app.config.Close(); err != nil && app.logger != nil {
			app.logger.WithComponent("config").Warn("close: %v", err)
		}
	}
}

// signalReload hands a reload outcome to the event loop. It runs on the
// watcher goroutine and never blocks.
func (app *Application) signalReload(err error) {
	select {
	case app.reloads <- err:
	default:
	}
	app.backend.PostEvent(backend.Event{Type: backend.EventInterrupt})
}

// applySettings pushes the current configuration into every component.
func (app *Application) applySettings() {
	settings := app.config.Settings()
	app.applyLogLevel(settings)
	app.engine.SetStyle(settings.Style())
	app.decoder = app.buildDecoder(settings)
	app.renderer.SetTheme(app.buildTheme(settings))
	app.renderer.SetStatusVisible(settings.Editor.ShowStatus)
	app.logger.WithComponent("config").Info("configuration reloaded")
}

func (app *Application) applyLogLevel(settings config.Settings) {
	level := settings.Logging.Level
	if app.opts.LogLevel != "" {
		level = app.opts.LogLevel
	}
	app.logger.SetLevel(ParseLogLevel(level))
}

// buildDecoder compiles the configured keymap, falling back to the
// defaults when an action is unknown.
func (app *Application) buildDecoder(settings config.Settings) *input.Decoder {
	km, err := settings.KeymapWithDefaults()
	if err == nil {
		var d *input.Decoder
		if d, err = input.NewDecoder(km); err == nil {
			return d
		}
	}
	app.logger.WithComponent("input").Warn("using default keymap: %v", err)
	d, _ := input.NewDecoder(keymap.Default())
	return d
}

func (app *Application) buildTheme(settings config.Settings) renderer.Theme {
	theme, err := settings.RendererTheme()
	if err != nil {
		app.logger.WithComponent("renderer").Warn("using default theme: %v", err)
		return renderer.DefaultTheme()
	}
	return theme
}
