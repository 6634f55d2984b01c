package keymap

// Default returns the built-in bindings. Printable characters that are not
// bound are typed into the formula by the decoder.
func Default() *Keymap {
	return New("default").
		Add("/", "fraction", "Fraction over the operand to the left").
		Add("^", "exponent", "Exponent on the operand to the right").
		Add("Ctrl+R", "radical", "Square root").
		Add("Alt+s", "operator:sin", "Sine").
		Add("Alt+c", "operator:cos", "Cosine").
		Add("Alt+l", "operator:log", "Logarithm").
		Add("Backspace", "backspace", "Delete or unwrap").
		Add("Left", "left", "Move left").
		Add("Right", "right", "Move right").
		Add("Up", "up", "Move up").
		Add("Down", "down", "Move down").
		Add("Ctrl+Q", "quit", "Quit").
		Add("Escape", "quit", "Quit")
}
