// Package input turns key presses into editor commands.
//
// A Decoder looks each key event up in a keymap. Bound events produce the
// bound action; unbound printable characters are typed into the formula;
// everything else is reported as ErrUnmapped, which callers ignore.
//
//	dec, err := input.NewDecoder(keymap.Default())
//	act, err := dec.Decode(key.RuneEvent('/', key.ModNone))
//	// act.Command is the greedy fraction command
package input
