package renderer

import (
	"math"

	"github.com/rivo/uniseg"

	"github.com/dshills/mathkey/internal/engine/formula"
	"github.com/dshills/mathkey/internal/renderer/core"
)

const epsilon = 1e-6

// Surface receives painted cells. backend.Backend and backend.ScreenBuffer
// both satisfy it.
type Surface interface {
	SetCell(x, y int, cell core.Cell)
}

// Caret is the caret position in surface cells.
type Caret struct {
	X, Y    int
	Height  int
	Visible bool
}

// CellCanvas is a formula.Canvas for terminal cells. Draw calls are
// recorded, then Paint snaps them to the cell grid.
type CellCanvas struct {
	rec   *formula.Recorder
	theme Theme
}

// NewCellCanvas returns an empty canvas painting with theme.
func NewCellCanvas(theme Theme) *CellCanvas {
	return &CellCanvas{rec: formula.NewRecorder(), theme: theme}
}

// SetTheme changes the styles used by the next Paint.
func (c *CellCanvas) SetTheme(theme Theme) { c.theme = theme }

// Reset discards recorded draw calls.
func (c *CellCanvas) Reset() { c.rec.Reset() }

// Ops returns the recorded draw calls.
func (c *CellCanvas) Ops() []formula.Op { return c.rec.Ops() }

func (c *CellCanvas) Save()                    { c.rec.Save() }
func (c *CellCanvas) Restore()                 { c.rec.Restore() }
func (c *CellCanvas) Translate(dx, dy float64) { c.rec.Translate(dx, dy) }
func (c *CellCanvas) Scale(sx, sy float64)     { c.rec.Scale(sx, sy) }
func (c *CellCanvas) Text(s string)            { c.rec.Text(s) }
func (c *CellCanvas) Rule(width float64)       { c.rec.Rule(width) }

func (c *CellCanvas) Glyph(s string, ascent, descent float64) {
	c.rec.Glyph(s, ascent, descent)
}

func (c *CellCanvas) Caret(ascent, descent float64) {
	c.rec.Caret(ascent, descent)
}

// Paint writes the recorded calls to s with the canvas origin at cell
// (originX, originY) and returns where the caret landed.
func (c *CellCanvas) Paint(s Surface, originX, originY int) Caret {
	var caret Caret
	for _, op := range c.rec.Ops() {
		col := originX + cell(op.X)
		switch op.Kind {
		case formula.OpText:
			c.paintText(s, col, originY+cell(op.Y), op.Text)

		case formula.OpGlyph:
			top, bottom := rows(op)
			c.paintGlyph(s, col, originY+top, originY+bottom, op.Text)

		case formula.OpRule:
			row := originY + cell(op.Y)
			end := originX + cell(op.X+op.Width)
			for x := col; x < end; x++ {
				s.SetCell(x, row, core.NewCell("─", c.theme.Structure))
			}

		case formula.OpCaret:
			top, bottom := rows(op)
			caret = Caret{X: col, Y: originY + cell(op.Y), Height: bottom - top + 1, Visible: true}
		}
	}
	return caret
}

// paintText lays out text one grapheme cluster per cell run.
func (c *CellCanvas) paintText(s Surface, col, row int, text string) {
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cluster := g.Str()
		width := uniseg.StringWidth(cluster)
		if width == 0 {
			continue
		}
		s.SetCell(col, row, core.Cell{Text: cluster, Width: width, Style: c.theme.Text})
		col += width
	}
}

func (c *CellCanvas) paintGlyph(s Surface, col, top, bottom int, glyph string) {
	style := c.theme.Structure
	if glyph == "√" {
		// The overline covers the rows above; only the hook is drawn.
		s.SetCell(col, bottom, core.NewCell(glyph, style))
		return
	}
	for i, piece := range stretch(glyph, bottom-top+1) {
		s.SetCell(col, top+i, core.NewCell(piece, style))
	}
}

// cell snaps a coordinate to the cell containing it.
func cell(v float64) int {
	return int(math.Floor(v + epsilon))
}

// rows returns the first and last rows covered by the vertical extent of
// op. A text box spans [y-0.5, y+0.5] and lands on row floor(y).
func rows(op formula.Op) (top, bottom int) {
	top = cell(op.Y - op.Ascent + halfRow)
	bottom = max(cell(op.Y+op.Descent-halfRow), top)
	return top, bottom
}

// bracketPieces holds top, middle, bottom and extension pieces.
var bracketPieces = map[string][4]string{
	"(": {"⎛", "⎜", "⎝", "⎜"},
	")": {"⎞", "⎟", "⎠", "⎟"},
	"[": {"⎡", "⎢", "⎣", "⎢"},
	"]": {"⎤", "⎥", "⎦", "⎥"},
	"{": {"⎧", "⎨", "⎩", "⎪"},
	"}": {"⎫", "⎬", "⎭", "⎪"},
}

// stretch returns the pieces that draw glyph over n rows.
func stretch(glyph string, n int) []string {
	out := make([]string, n)
	if n == 1 {
		out[0] = glyph
		return out
	}

	p, ok := bracketPieces[glyph]
	if !ok {
		for i := range out {
			out[i] = "│"
		}
		return out
	}

	for i := range out {
		out[i] = p[3]
	}
	out[0], out[n-1] = p[0], p[2]
	if n >= 3 && (glyph == "{" || glyph == "}") {
		out[n/2] = p[1]
	}
	return out
}
