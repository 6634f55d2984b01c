// Package key defines key events and the key specification syntax used by
// keymaps.
//
// A specification names one key press:
//
//   - Characters: "a", "7", "/", "^"
//   - Named keys: "Enter", "Escape", "Backspace", "Left", "Space"
//   - With modifiers: "Ctrl+R", "Alt+Left"
//   - Vim-style: "<C-r>", "<Esc>", "<BS>", "<CR>"
package key
