package formula

// Exponent raises a scaled-down body above the preceding sibling.
type Exponent struct {
	node
	body *Sequence

	scale float64
	shift float64
}

// NewExponent returns an exponent owning body.
func NewExponent(body []Element) *Exponent {
	x := &Exponent{node: node{index: -1}}
	x.body = NewSequence(body...)
	x.body.setOwner(x, -1)
	return x
}

func (x *Exponent) Kind() Kind { return KindExponent }

func (x *Exponent) WantsCursor() bool { return true }

// Body returns the raised sequence.
func (x *Exponent) Body() *Sequence { return x.body }

func (x *Exponent) String() string { return "^{" + x.body.String() + "}" }

func (x *Exponent) slots() []*Sequence { return []*Sequence{x.body} }

func (x *Exponent) lastSlot() *Sequence { return x.body }

// computeMetrics lifts the body by half the ascent of the previous sibling.
func (x *Exponent) computeMetrics(p Provider, mc *MetricContext) {
	x.body.computeMetrics(p, mc)

	b := x.body.metrics
	x.scale = mc.style.ExponentScale
	x.shift = -b.Descent*x.scale - mc.Prev.Ascent/2
	x.hSpacing = mc.style.Spacing
	x.metrics = Metrics{
		Ascent:  b.Ascent*x.scale - x.shift,
		Descent: max(0, mc.Prev.Descent, b.Descent*x.scale+x.shift),
		Width:   b.Width * x.scale,
	}
	mc.enclose(x.metrics)
}

func (x *Exponent) draw(c Canvas) {
	saved(c, func() {
		c.Translate(0, x.shift)
		c.Scale(x.scale, x.scale)
		x.body.draw(c)
	})
}

func (x *Exponent) handleCursor(cur *Cursor, dir Direction, giver Element) {
	if giver == x.body {
		bubble(x, cur, dir)
		return
	}
	x.body.handleCursor(cur, dir, nil)
}

func (x *Exponent) backspace(cur *Cursor, caller Element) {
	switch {
	case x.owner != nil && caller == x.body:
		unwrap(x, cur, append([]Element(nil), x.body.elements...), 0)
	case caller != nil && caller == x.Owner():
		x.body.backspace(cur, x)
	}
}
