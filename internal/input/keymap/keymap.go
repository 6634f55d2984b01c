// Package keymap maps key presses to editor action names.
package keymap

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dshills/mathkey/internal/input/key"
)

// ErrInvalidBinding indicates a binding whose key specification does not
// parse or whose action is empty.
var ErrInvalidBinding = errors.New("invalid binding")

// Unbind is the action that removes an inherited binding when merged.
const Unbind = "none"

// Binding maps one key press to an action name.
type Binding struct {
	// Keys is the key specification, such as "Ctrl+R" or "<BS>".
	Keys string

	// Action is the action name, such as "fraction" or "quit".
	Action string

	// Description is shown in help output.
	Description string
}

// Keymap is a named set of bindings.
type Keymap struct {
	Name     string
	Bindings []Binding

	index map[key.Event]int
}

// New creates an empty keymap.
func New(name string) *Keymap {
	return &Keymap{Name: name}
}

// Add appends a binding and returns the keymap for chaining.
func (k *Keymap) Add(keys, action, description string) *Keymap {
	k.Bindings = append(k.Bindings, Binding{Keys: keys, Action: action, Description: description})
	k.index = nil
	return k
}

// Merge overrides bindings by key specification. Keys are compared after
// parsing, so "Ctrl+R" replaces "<C-r>". An action of Unbind removes the
// binding.
func (k *Keymap) Merge(overrides map[string]string) error {
	specs := make([]string, 0, len(overrides))
	for spec := range overrides {
		specs = append(specs, spec)
	}
	sort.Strings(specs)

	for _, spec := range specs {
		ev, err := key.Parse(spec)
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrInvalidBinding, spec, err)
		}
		kept := k.Bindings[:0]
		for _, b := range k.Bindings {
			if other, err := key.Parse(b.Keys); err != nil || other != ev {
				kept = append(kept, b)
			}
		}
		k.Bindings = kept
		if action := overrides[spec]; action != Unbind {
			k.Bindings = append(k.Bindings, Binding{Keys: spec, Action: action})
		}
	}
	k.index = nil
	return k.Compile()
}

// Compile parses every key specification and builds the lookup index. Later
// bindings win over earlier ones for the same key.
func (k *Keymap) Compile() error {
	index := make(map[key.Event]int, len(k.Bindings))
	for i, b := range k.Bindings {
		if b.Action == "" {
			return fmt.Errorf("%w: %q has no action", ErrInvalidBinding, b.Keys)
		}
		ev, err := key.Parse(b.Keys)
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrInvalidBinding, b.Keys, err)
		}
		index[ev] = i
	}
	k.index = index
	return nil
}

// Lookup returns the binding for e. The keymap is compiled on first use; a
// keymap that fails to compile has no bindings.
func (k *Keymap) Lookup(e key.Event) (Binding, bool) {
	if k.index == nil && k.Compile() != nil {
		return Binding{}, false
	}
	i, ok := k.index[e.Normalize()]
	if !ok {
		return Binding{}, false
	}
	return k.Bindings[i], true
}

// Actions returns the distinct action names in binding order.
func (k *Keymap) Actions() []string {
	seen := make(map[string]bool)
	var out []string
	for _, b := range k.Bindings {
		if !seen[b.Action] {
			seen[b.Action] = true
			out = append(out, b.Action)
		}
	}
	return out
}
