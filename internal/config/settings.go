package config

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/mathkey/internal/engine/formula"
	"github.com/dshills/mathkey/internal/input/keymap"
	"github.com/dshills/mathkey/internal/renderer"
)

// Settings is the typed view of the merged configuration.
type Settings struct {
	Editor  EditorSettings    `toml:"editor" yaml:"editor"`
	Layout  LayoutSettings    `toml:"layout" yaml:"layout"`
	Theme   ThemeSettings     `toml:"theme" yaml:"theme"`
	Keymap  map[string]string `toml:"keymap" yaml:"keymap"`
	Logging LoggingSettings   `toml:"logging" yaml:"logging"`
	Script  ScriptSettings    `toml:"script" yaml:"script"`
}

// EditorSettings configures the editing screen.
type EditorSettings struct {
	// ShowStatus enables the status line on the bottom row.
	ShowStatus bool `toml:"showStatus" yaml:"showStatus"`
}

// LayoutSettings mirrors formula.Style.
type LayoutSettings struct {
	Spacing            float64 `toml:"spacing" yaml:"spacing"`
	OperatorSpacing    float64 `toml:"operatorSpacing" yaml:"operatorSpacing"`
	ExponentScale      float64 `toml:"exponentScale" yaml:"exponentScale"`
	FractionSeparation float64 `toml:"fractionSeparation" yaml:"fractionSeparation"`
	BarRatio           float64 `toml:"barRatio" yaml:"barRatio"`
	OverlineSpace      float64 `toml:"overlineSpace" yaml:"overlineSpace"`
}

// ThemeSettings holds hex colours. "default" keeps the terminal colour.
type ThemeSettings struct {
	Foreground string `toml:"foreground" yaml:"foreground"`
	Background string `toml:"background" yaml:"background"`
	Accent     string `toml:"accent" yaml:"accent"`
}

// LoggingSettings configures the application logger.
type LoggingSettings struct {
	Level string `toml:"level" yaml:"level"`
}

// ScriptSettings configures Lua startup scripts.
type ScriptSettings struct {
	// Path is a script run against the session at startup. Optional.
	Path string `toml:"path" yaml:"path"`

	// Timeout bounds a single script run, as a Go duration string.
	Timeout string `toml:"timeout" yaml:"timeout"`
}

var logLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "warning": true, "error": true,
}

// Default returns the built-in settings.
func Default() *Settings {
	style := renderer.CellStyle()
	return &Settings{
		Editor: EditorSettings{ShowStatus: true},
		Layout: LayoutSettings{
			Spacing:            style.Spacing,
			OperatorSpacing:    style.OperatorSpacing,
			ExponentScale:      style.ExponentScale,
			FractionSeparation: style.FractionSeparation,
			BarRatio:           style.BarRatio,
			OverlineSpace:      style.OverlineSpace,
		},
		Theme: ThemeSettings{
			Foreground: "default",
			Background: "default",
			Accent:     "default",
		},
		Keymap:  map[string]string{},
		Logging: LoggingSettings{Level: "info"},
		Script:  ScriptSettings{Timeout: "1s"},
	}
}

// Style returns the layout constants.
func (s *Settings) Style() formula.Style {
	return formula.Style{
		Spacing:            s.Layout.Spacing,
		OperatorSpacing:    s.Layout.OperatorSpacing,
		ExponentScale:      s.Layout.ExponentScale,
		FractionSeparation: s.Layout.FractionSeparation,
		BarRatio:           s.Layout.BarRatio,
		OverlineSpace:      s.Layout.OverlineSpace,
	}
}

// RendererTheme parses the theme colours.
func (s *Settings) RendererTheme() (renderer.Theme, error) {
	return renderer.ParseTheme(s.Theme.Foreground, s.Theme.Background, s.Theme.Accent)
}

// KeymapWithDefaults returns the default keymap with the configured
// overrides merged in.
func (s *Settings) KeymapWithDefaults() (*keymap.Keymap, error) {
	km := keymap.Default()
	if err := km.Merge(s.Keymap); err != nil {
		return nil, err
	}
	return km, nil
}

// ScriptTimeout parses Script.Timeout.
func (s *Settings) ScriptTimeout() (time.Duration, error) {
	return time.ParseDuration(s.Script.Timeout)
}

// Validate checks every setting and reports all problems at once.
func (s *Settings) Validate() error {
	var errs []error
	check := func(ok bool, path string, value any, msg string) {
		if !ok {
			errs = append(errs, &ValidationError{Path: path, Value: value, Message: msg})
		}
	}

	l := s.Layout
	check(l.Spacing >= 0, "layout.spacing", l.Spacing, "must not be negative")
	check(l.OperatorSpacing >= 0, "layout.operatorSpacing", l.OperatorSpacing, "must not be negative")
	check(l.ExponentScale > 0 && l.ExponentScale <= 1, "layout.exponentScale", l.ExponentScale, "must be in (0, 1]")
	check(l.FractionSeparation >= 0, "layout.fractionSeparation", l.FractionSeparation, "must not be negative")
	check(l.BarRatio >= 0 && l.BarRatio <= 1, "layout.barRatio", l.BarRatio, "must be in [0, 1]")
	check(l.OverlineSpace >= 0, "layout.overlineSpace", l.OverlineSpace, "must not be negative")

	if _, err := s.RendererTheme(); err != nil {
		errs = append(errs, &ValidationError{Path: "theme", Value: s.Theme, Message: err.Error()})
	}
	if _, err := s.KeymapWithDefaults(); err != nil {
		errs = append(errs, &ValidationError{Path: "keymap", Value: s.Keymap, Message: err.Error()})
	}

	check(logLevels[s.Logging.Level], "logging.level", s.Logging.Level, "must be debug, info, warn or error")

	d, err := s.ScriptTimeout()
	check(err == nil && d > 0, "script.timeout", s.Script.Timeout, "must be a positive duration")

	return errors.Join(errs...)
}

// MarshalTOML renders the settings as a TOML document.
func (s *Settings) MarshalTOML() ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("encoding settings: %w", err)
	}
	return buf.Bytes(), nil
}

// toMap converts settings into the generic form the loaders produce.
func (s *Settings) toMap() (map[string]any, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// decode converts a merged configuration map into typed settings. Values
// pass through YAML so that integers fill float fields and scalars fill
// string fields.
func decode(m map[string]any) (*Settings, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	s := Default()
	s.Keymap = nil
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if s.Keymap == nil {
		s.Keymap = map[string]string{}
	}
	return s, nil
}
