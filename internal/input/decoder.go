package input

import (
	"errors"
	"fmt"

	"github.com/dshills/mathkey/internal/engine"
	"github.com/dshills/mathkey/internal/input/key"
	"github.com/dshills/mathkey/internal/input/keymap"
)

// ActionQuit is the action name that ends the session.
const ActionQuit = "quit"

// Errors returned by the decoder.
var (
	// ErrUnmapped indicates a key press with no meaning. It is never shown
	// to the user.
	ErrUnmapped = errors.New("unmapped key")

	// ErrInvalidAction indicates a keymap action the engine does not know.
	ErrInvalidAction = errors.New("invalid keymap action")
)

// Action is a decoded key press: either a command for the engine or a
// request to quit.
type Action struct {
	Command engine.Command
	Quit    bool
}

// Decoder maps key events to actions.
type Decoder struct {
	keymap   *keymap.Keymap
	commands map[string]engine.Command
}

// NewDecoder compiles km and checks every bound action.
func NewDecoder(km *keymap.Keymap) (*Decoder, error) {
	if err := km.Compile(); err != nil {
		return nil, err
	}
	d := &Decoder{keymap: km, commands: make(map[string]engine.Command)}
	for _, name := range km.Actions() {
		if name == ActionQuit {
			continue
		}
		cmd, err := engine.ParseCommand(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAction, err)
		}
		d.commands[name] = cmd
	}
	return d, nil
}

// Keymap returns the keymap in use.
func (d *Decoder) Keymap() *keymap.Keymap { return d.keymap }

// Decode returns the action for e.
func (d *Decoder) Decode(e key.Event) (Action, error) {
	if b, ok := d.keymap.Lookup(e); ok {
		if b.Action == ActionQuit {
			return Action{Quit: true}, nil
		}
		return Action{Command: d.commands[b.Action]}, nil
	}
	if e.IsRune() && !e.IsModified() && key.IsPrintable(e.Rune) {
		return Action{Command: engine.Command{Op: engine.OpInsertChar, Text: string(e.Rune)}}, nil
	}
	return Action{}, fmt.Errorf("%w: %s", ErrUnmapped, e)
}
