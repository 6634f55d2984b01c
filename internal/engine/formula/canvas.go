package formula

// Canvas receives the draw pass. Coordinates are local: the origin sits on
// the baseline at the left edge of the element being drawn, and y grows
// downwards.
type Canvas interface {
	Save()
	Restore()
	Translate(dx, dy float64)
	Scale(sx, sy float64)

	// Text paints a run of text with its baseline at the origin.
	Text(s string)

	// Glyph paints a single glyph stretched vertically to span ascent above
	// and descent below the baseline.
	Glyph(s string, ascent, descent float64)

	// Rule paints a horizontal line from the origin to (width, 0).
	Rule(width float64)

	// Caret paints the insertion caret at the origin.
	Caret(ascent, descent float64)
}

// saved runs fn between Save and Restore. Restore runs on every exit path.
func saved(c Canvas, fn func()) {
	c.Save()
	defer c.Restore()
	fn()
}

// Draw runs the draw pass over a laid-out tree. The root is placed with the
// top of its bounding box at the canvas origin.
func Draw(root Element, c Canvas) {
	saved(c, func() {
		c.Translate(0, root.Metrics().Ascent)
		root.draw(c)
	})
}
