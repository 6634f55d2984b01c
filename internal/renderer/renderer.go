package renderer

import (
	"math"

	"github.com/dshills/mathkey/internal/engine/formula"
	"github.com/dshills/mathkey/internal/renderer/backend"
	"github.com/dshills/mathkey/internal/renderer/core"
)

// Document is the formula being displayed. engine.Engine satisfies it.
type Document interface {
	// Layout runs the metrics pass and returns the root extent.
	Layout(p formula.Provider) formula.Metrics

	// Draw runs the draw pass.
	Draw(c formula.Canvas)
}

// Frame describes the last rendered frame.
type Frame struct {
	// Area is where the formula was painted.
	Area core.ScreenRect

	// Caret is the caret position in screen cells.
	Caret Caret

	// Number counts frames since the renderer was created.
	Number uint64
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTheme sets the initial theme.
func WithTheme(t Theme) Option {
	return func(r *Renderer) {
		r.theme = t
	}
}

// Renderer paints a Document centred on a backend, with a one-row status
// line at the bottom.
type Renderer struct {
	backend backend.Backend
	metrics CellMetrics
	canvas  *CellCanvas
	theme   Theme
	status  string
	hidden  bool
	frames  uint64
}

// New creates a renderer drawing to b.
func New(b backend.Backend, opts ...Option) *Renderer {
	r := &Renderer{
		backend: b,
		theme:   DefaultTheme(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.canvas = NewCellCanvas(r.theme)
	return r
}

// Provider returns the metrics provider documents must be laid out with.
func (r *Renderer) Provider() formula.Provider { return r.metrics }

// Theme returns the current theme.
func (r *Renderer) Theme() Theme { return r.theme }

// SetTheme changes the theme from the next frame on.
func (r *Renderer) SetTheme(t Theme) {
	r.theme = t
	r.canvas.SetTheme(t)
}

// SetStatus sets the status line text.
func (r *Renderer) SetStatus(s string) { r.status = s }

// SetStatusVisible shows or hides the status line. A hidden status line
// gives its row to the formula.
func (r *Renderer) SetStatusVisible(v bool) { r.hidden = !v }

// Render lays out doc, paints it and flushes the backend.
func (r *Renderer) Render(doc Document) Frame {
	width, height := r.backend.Size()
	r.backend.Clear()

	m := doc.Layout(r.metrics)
	r.canvas.Reset()
	doc.Draw(r.canvas)

	w := int(math.Ceil(m.Width - epsilon))
	h := int(math.Ceil(m.Height() - epsilon))
	body := height
	if !r.hidden {
		body = max(height-1, 0)
	}
	area := core.RectFromSize(max((body-h)/2, 0), max((width-w)/2, 0), h, w)

	caret := r.canvas.Paint(r.backend, area.Left, area.Top)
	if !r.hidden {
		r.paintStatus(width, height)
	}

	if caret.Visible && caret.X < width && caret.Y < body {
		r.backend.ShowCursor(caret.X, caret.Y)
	} else {
		r.backend.HideCursor()
	}
	r.backend.Show()

	r.frames++
	return Frame{Area: area, Caret: caret, Number: r.frames}
}

func (r *Renderer) paintStatus(width, height int) {
	if height == 0 {
		return
	}
	row := height - 1
	for x := 0; x < width; x++ {
		r.backend.SetCell(x, row, core.NewCell(" ", r.theme.Status))
	}
	col := 1
	for _, ch := range r.status {
		if col >= width {
			break
		}
		c := core.NewCell(string(ch), r.theme.Status)
		if c.Width == 0 {
			continue
		}
		r.backend.SetCell(col, row, c)
		col += c.Width
	}
}
