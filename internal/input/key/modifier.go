package key

import "strings"

// Modifier is a set of modifier keys.
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << (iota - 1)
	ModCtrl
	ModAlt
	ModMeta
)

// Has reports whether m contains mod.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// String returns the modifiers joined with "+", such as "Ctrl+Alt".
func (m Modifier) String() string {
	var parts []string
	for _, n := range modifierOrder {
		if m.Has(n.mod) {
			parts = append(parts, n.long)
		}
	}
	return strings.Join(parts, "+")
}

var modifierOrder = []struct {
	mod   Modifier
	long  string
	short string
}{
	{ModCtrl, "Ctrl", "C"},
	{ModAlt, "Alt", "A"},
	{ModShift, "Shift", "S"},
	{ModMeta, "Meta", "M"},
}

var modifierNames = map[string]Modifier{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"c":       ModCtrl,
	"alt":     ModAlt,
	"option":  ModAlt,
	"a":       ModAlt,
	"shift":   ModShift,
	"s":       ModShift,
	"meta":    ModMeta,
	"cmd":     ModMeta,
	"super":   ModMeta,
	"m":       ModMeta,
	"d":       ModMeta,
}

// ModifierFromName returns the modifier with the given name, or ModNone.
func ModifierFromName(name string) Modifier {
	return modifierNames[strings.ToLower(strings.TrimSpace(name))]
}
