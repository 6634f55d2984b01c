package key

import (
	"strings"
	"unicode"
)

// Event is a single key press.
type Event struct {
	Key       Key
	Rune      rune
	Modifiers Modifier
}

// RuneEvent returns the event for typing r.
func RuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// SpecialEvent returns the event for a named key.
func SpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// IsRune reports whether e types a character.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsModified reports whether a modifier other than Shift is held. Shift is
// already part of the typed character.
func (e Event) IsModified() bool {
	if e.IsRune() {
		return e.Modifiers&(ModCtrl|ModAlt|ModMeta) != 0
	}
	return e.Modifiers != ModNone
}

// Normalize returns the form of e used for keymap lookup: Shift is dropped
// from characters and Ctrl combinations use lowercase letters.
func (e Event) Normalize() Event {
	if e.Key != KeyRune {
		return e
	}
	e.Modifiers &^= ModShift
	if e.Modifiers.Has(ModCtrl) {
		e.Rune = unicode.ToLower(e.Rune)
	}
	return e
}

// String returns the Vim-style specification of e, such as "a", "<C-r>" or
// "<BS>". Parse accepts every string String returns.
func (e Event) String() string {
	if e.IsRune() && !e.IsModified() {
		if e.Rune == ' ' {
			return "<Space>"
		}
		return string(e.Rune)
	}

	var parts []string
	for _, n := range modifierOrder {
		if n.mod == ModShift && e.IsRune() {
			continue
		}
		if e.Modifiers.Has(n.mod) {
			parts = append(parts, n.short)
		}
	}
	parts = append(parts, e.keyName())
	return "<" + strings.Join(parts, "-") + ">"
}

func (e Event) keyName() string {
	switch e.Key {
	case KeyRune:
		switch e.Rune {
		case ' ':
			return "Space"
		case '-':
			return "minus"
		case '<':
			return "lt"
		case '>':
			return "gt"
		}
		return string(e.Rune)
	case KeyEscape:
		return "Esc"
	case KeyEnter:
		return "CR"
	case KeyBackspace:
		return "BS"
	case KeyDelete:
		return "Del"
	}
	return e.Key.String()
}
