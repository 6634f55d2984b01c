package formula

import "math"

// Fraction sets a numerator over a denominator.
type Fraction struct {
	node
	numerator   *Sequence
	denominator *Sequence

	bar  float64
	half float64
}

// NewFraction returns a fraction owning the given operand runs.
func NewFraction(numerator, denominator []Element) *Fraction {
	f := &Fraction{node: node{index: -1}}
	f.numerator = f.slot(numerator)
	f.denominator = f.slot(denominator)
	return f
}

func (f *Fraction) slot(elements []Element) *Sequence {
	s := NewSequence(elements...)
	s.setOwner(f, -1)
	return s
}

func (f *Fraction) Kind() Kind { return KindFraction }

func (f *Fraction) WantsCursor() bool { return true }

// Numerator returns the upper sequence.
func (f *Fraction) Numerator() *Sequence { return f.numerator }

// Denominator returns the lower sequence.
func (f *Fraction) Denominator() *Sequence { return f.denominator }

func (f *Fraction) String() string {
	return "{" + f.numerator.String() + "}/{" + f.denominator.String() + "}"
}

func (f *Fraction) slots() []*Sequence { return []*Sequence{f.numerator, f.denominator} }

func (f *Fraction) lastSlot() *Sequence { return f.denominator }

func (f *Fraction) computeMetrics(p Provider, mc *MetricContext) {
	f.numerator.computeMetrics(p, mc)
	f.denominator.computeMetrics(p, mc)

	st := mc.style
	n, d := f.numerator.metrics, f.denominator.metrics
	f.bar = p.Font().Ascent * st.BarRatio
	f.half = st.FractionSeparation / 2
	f.hSpacing = st.Spacing
	f.metrics = Metrics{
		Ascent:  n.Height() + f.bar + f.half,
		Descent: d.Height() + f.half - f.bar,
		Width:   max(n.Width, d.Width),
	}
	mc.enclose(f.metrics)
}

func (f *Fraction) draw(c Canvas) {
	saved(c, func() {
		c.Translate(0, -f.bar)
		c.Rule(f.metrics.Width)
		saved(c, func() {
			n := f.numerator.metrics
			c.Translate(center(f.metrics.Width, n.Width), -f.half-n.Descent)
			f.numerator.draw(c)
		})
		saved(c, func() {
			d := f.denominator.metrics
			c.Translate(center(f.metrics.Width, d.Width), f.half+d.Ascent)
			f.denominator.draw(c)
		})
	})
}

func (f *Fraction) handleCursor(cur *Cursor, dir Direction, giver Element) {
	switch {
	case giver == f.numerator && dir == Down:
		f.denominator.handleCursor(cur, dir, nil)
	case giver == f.denominator && dir == Up:
		f.numerator.handleCursor(cur, dir, nil)
	case giver == f.numerator || giver == f.denominator:
		bubble(f, cur, dir)
	case dir == Up:
		f.denominator.handleCursor(cur, dir, nil)
	default:
		f.numerator.handleCursor(cur, dir, nil)
	}
}

func (f *Fraction) backspace(cur *Cursor, caller Element) {
	switch {
	case f.owner != nil && (caller == f.numerator || caller == f.denominator):
		offset := 0
		if caller == f.denominator {
			offset = f.numerator.Len()
		}
		run := append(append([]Element(nil), f.numerator.elements...), f.denominator.elements...)
		unwrap(f, cur, run, offset)
	case caller != nil && caller == f.Owner():
		f.denominator.backspace(cur, f)
	}
}

// center returns the offset that centers inner within outer, snapped down to
// a whole unit.
func center(outer, inner float64) float64 {
	return math.Floor((outer - inner) / 2)
}

// unwrap replaces e in its owning sequence with run and leaves the cursor
// offset elements into the run. The inner sequences of e give up their
// elements.
func unwrap(e structural, cur *Cursor, run []Element, offset int) {
	parent, ok := e.base().owner.(*Sequence)
	if !ok {
		return
	}
	at := e.Index()
	for _, s := range e.slots() {
		s.elements = nil
		s.cursorPos = 0
	}
	parent.replace(e, NewSequence(run...))
	parent.moveCursorTo(cur, at+offset)
}
