// Package config loads mathkey settings.
//
// Settings come from three sources, later ones overriding earlier ones:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← MATHKEY_LAYOUT_SPACING=1
//	├─────────────────────────────┤
//	│  2. Config File             │  ← ~/.config/mathkey/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │
//	└─────────────────────────────┘
//
// The file may be TOML or YAML, chosen by extension. Keys are camelCase:
//
//	[layout]
//	operatorSpacing = 1
//
//	[theme]
//	accent = "#5f87ff"
//
//	[keymap]
//	"Ctrl+F" = "fraction"
//	"Escape" = "none"
//
// # Sub-packages
//
//   - loader: file and environment loading, map merging
//   - watcher: file watching for live reload
//   - notify: change notification
//
// # Live Reload
//
// With WithWatcher(true) the file is watched and every change is reloaded.
// Subscribers see one change per setting path followed by a reload event:
//
//	cfg.Subscribe("theme", func(c notify.Change) {
//	    // re-read cfg.Settings().Theme
//	})
//
// An invalid file is rejected and the previous settings stay in effect.
package config
