package formula

// radicalSign is measured and stretched to draw the root symbol.
const radicalSign = "√"

// Radical is a root: a radicand under an overline with an optional index.
type Radical struct {
	node
	radicand *Sequence
	index    *Sequence

	sign      Metrics
	scale     float64
	lead      float64
	overline  float64
	indexX    float64
	indexLift float64
}

// NewRadical returns a square root owning radicand.
func NewRadical(radicand []Element) *Radical {
	r := &Radical{node: node{index: -1}}
	r.radicand = NewSequence(radicand...)
	r.radicand.setOwner(r, -1)
	return r
}

// NewRootOf returns a radical with an index, such as a cube root.
func NewRootOf(index, radicand []Element) *Radical {
	r := NewRadical(radicand)
	r.index = NewSequence(index...)
	r.index.setOwner(r, -1)
	return r
}

func (r *Radical) Kind() Kind { return KindRadical }

func (r *Radical) WantsCursor() bool { return true }

// Radicand returns the sequence under the root sign.
func (r *Radical) Radicand() *Sequence { return r.radicand }

// RadicalIndex returns the index sequence, or nil for a square root.
func (r *Radical) RadicalIndex() *Sequence { return r.index }

func (r *Radical) String() string {
	if r.index != nil {
		return "√[" + r.index.String() + "]{" + r.radicand.String() + "}"
	}
	return "√{" + r.radicand.String() + "}"
}

func (r *Radical) slots() []*Sequence {
	if r.index != nil {
		return []*Sequence{r.index, r.radicand}
	}
	return []*Sequence{r.radicand}
}

func (r *Radical) lastSlot() *Sequence { return r.radicand }

func (r *Radical) computeMetrics(p Provider, mc *MetricContext) {
	r.radicand.computeMetrics(p, mc)

	st := mc.style
	rad := r.radicand.metrics
	r.sign = p.Measure(radicalSign)
	r.scale = st.ExponentScale
	r.overline = -(rad.Ascent + st.OverlineSpace/2)
	r.hSpacing = st.Spacing

	ascent := max(r.sign.Ascent, rad.Ascent+st.OverlineSpace)
	r.lead = 0
	if r.index != nil {
		r.index.computeMetrics(p, mc)
		im := r.index.metrics
		width := im.Width * r.scale
		r.indexLift = -ascent/2 - im.Descent*r.scale
		r.lead = max(0, width-r.sign.Width/2)
		r.indexX = r.lead + r.sign.Width/2 - width
		ascent = max(ascent, im.Ascent*r.scale-r.indexLift)
	}

	r.metrics = Metrics{
		Ascent:  ascent,
		Descent: rad.Descent,
		Width:   r.lead + r.sign.Width + rad.Width,
	}
	mc.enclose(r.metrics)
}

func (r *Radical) draw(c Canvas) {
	if r.index != nil {
		saved(c, func() {
			c.Translate(r.indexX, r.indexLift)
			c.Scale(r.scale, r.scale)
			r.index.draw(c)
		})
	}
	saved(c, func() {
		c.Translate(r.lead, 0)
		c.Glyph(radicalSign, r.metrics.Ascent, r.metrics.Descent)
		c.Translate(r.sign.Width, 0)
		saved(c, func() {
			c.Translate(0, r.overline)
			c.Rule(r.radicand.metrics.Width)
		})
		r.radicand.draw(c)
	})
}

func (r *Radical) handleCursor(cur *Cursor, dir Direction, giver Element) {
	hasIndex := r.index != nil
	switch {
	case giver == r.radicand && dir == Up && hasIndex:
		r.index.handleCursor(cur, dir, nil)
	case hasIndex && giver == r.index && dir == Down:
		r.radicand.handleCursor(cur, dir, nil)
	case giver == r.radicand || (hasIndex && giver == r.index):
		bubble(r, cur, dir)
	case dir == Up && hasIndex:
		r.index.handleCursor(cur, dir, nil)
	default:
		r.radicand.handleCursor(cur, dir, nil)
	}
}

// backspace at the start of either inner sequence dissolves the root: the
// index and radicand elements take its place.
func (r *Radical) backspace(cur *Cursor, caller Element) {
	hasIndex := r.index != nil
	switch {
	case r.owner != nil && (caller == r.radicand || (hasIndex && caller == r.index)):
		var run []Element
		offset := 0
		if hasIndex {
			run = append(run, r.index.elements...)
			if caller == r.radicand {
				offset = r.index.Len()
			}
		}
		run = append(run, r.radicand.elements...)
		unwrap(r, cur, run, offset)
	case caller != nil && caller == r.Owner():
		r.radicand.backspace(cur, r)
	}
}
