package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dshills/mathkey/internal/config/loader"
	"github.com/dshills/mathkey/internal/config/notify"
	"github.com/dshills/mathkey/internal/config/watcher"
)

// EnvPrefix is the prefix of environment variables read by default.
const EnvPrefix = "MATHKEY_"

// Config loads settings, keeps them current while the file changes and
// tells subscribers what changed.
type Config struct {
	mu sync.RWMutex

	path      string
	fs        loader.FileSystem
	envPrefix string
	environ   func() []string

	settings *Settings
	raw      map[string]any

	notifier *notify.Notifier
	watcher  *watcher.Watcher

	enableWatcher bool
	onError       []func(error)
	closed        bool
}

// Option configures a Config instance.
type Option func(*Config)

// WithPath sets the configuration file. The format follows the extension.
// An empty path uses defaults and the environment only.
func WithPath(path string) Option {
	return func(c *Config) {
		c.path = path
	}
}

// WithFileSystem replaces the file system used to read the config file.
func WithFileSystem(fs loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fs
	}
}

// WithEnvPrefix sets the environment variable prefix. An empty prefix
// disables environment overrides.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.envPrefix = prefix
	}
}

// WithEnviron replaces the environment source.
func WithEnviron(environ func() []string) Option {
	return func(c *Config) {
		c.environ = environ
	}
}

// WithWatcher enables file watching for live reload.
func WithWatcher(enable bool) Option {
	return func(c *Config) {
		c.enableWatcher = enable
	}
}

// New creates a Config holding the default settings. Call Load to read the
// file and environment.
func New(opts ...Option) *Config {
	c := &Config{
		fs:        loader.DefaultFS(),
		envPrefix: EnvPrefix,
		settings:  Default(),
		notifier:  notify.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "mathkey", "config.toml")
}

// Path returns the configuration file path.
func (c *Config) Path() string {
	return c.path
}

// Load reads configuration from all sources and starts the watcher if
// enabled. When reading fails the defaults stay in place and the watcher
// still starts, so fixing the file applies it.
func (c *Config) Load(_ context.Context) error {
	raw, settings, err := c.read()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if err == nil {
		c.raw = raw
		c.settings = settings
	}
	startWatcher := c.enableWatcher && c.path != "" && c.watcher == nil
	c.mu.Unlock()

	if startWatcher {
		if werr := c.startWatcher(); werr != nil {
			return errors.Join(err, werr)
		}
	}
	return err
}

// Reload re-reads every source and publishes the differences. An invalid
// configuration is rejected and the current settings are kept.
func (c *Config) Reload() error {
	raw, settings, err := c.read()
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	changes := notify.Diff(c.raw, raw)
	c.raw = raw
	c.settings = settings
	c.mu.Unlock()

	c.notifier.Publish(c.path, changes)
	return nil
}

// Settings returns a copy of the current settings.
func (c *Config) Settings() Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := *c.settings
	s.Keymap = make(map[string]string, len(c.settings.Keymap))
	for k, v := range c.settings.Keymap {
		s.Keymap[k] = v
	}
	return s
}

// Raw returns a copy of the merged configuration map.
func (c *Config) Raw() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return loader.Clone(c.raw)
}

// Subscribe registers an observer for changes at or below prefix. An empty
// prefix observes everything.
func (c *Config) Subscribe(prefix string, observer notify.Observer) *notify.Subscription {
	return c.notifier.SubscribePath(prefix, observer)
}

// OnError registers a callback for reloads triggered by the watcher that
// fail.
func (c *Config) OnError(fn func(error)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onError = append(c.onError, fn)
}

// Close stops the watcher.
func (c *Config) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	w := c.watcher
	c.watcher = nil
	c.mu.Unlock()

	if w != nil {
		return w.Close()
	}
	return nil
}

// read merges defaults, the config file and the environment, in that order.
func (c *Config) read() (map[string]any, *Settings, error) {
	merged, err := Default().toMap()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: defaults: %v", ErrDecode, err)
	}

	if c.path != "" {
		l, err := loader.ForPath(c.fs, c.path)
		if err != nil {
			return nil, nil, err
		}
		file, err := l.Load()
		if err != nil {
			return nil, nil, err
		}
		merged = loader.DeepMerge(merged, file)
	}

	if c.envPrefix != "" {
		env := loader.NewEnvLoader(c.envPrefix)
		env.SetEnviron(c.environ)
		vars, err := env.Load()
		if err != nil {
			return nil, nil, err
		}
		merged = loader.DeepMerge(merged, vars)
	}

	settings, err := decode(merged)
	if err != nil {
		return nil, nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, nil, err
	}
	return merged, settings, nil
}

func (c *Config) startWatcher() error {
	w, err := watcher.New()
	if err != nil {
		return fmt.Errorf("starting config watcher: %w", err)
	}
	if err := w.Watch(c.path); err != nil {
		_ = w.Close()
		return fmt.Errorf("watching %s: %w", c.path, err)
	}
	w.OnChange(c.handleFileChange)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return w.Close()
	}
	c.watcher = w
	c.mu.Unlock()
	return nil
}

func (c *Config) handleFileChange(_ watcher.Event) {
	err := c.Reload()
	if err == nil {
		return
	}

	c.mu.RLock()
	handlers := append(([]func(error))(nil), c.onError...)
	c.mu.RUnlock()
	for _, fn := range handlers {
		fn(err)
	}
}
