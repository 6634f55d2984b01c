package formula

import "strings"

// Sequence is an ordered, editable list of elements. It is the only element
// that holds the cursor directly; CursorPos is the edit point while the
// sequence has the cursor.
type Sequence struct {
	node
	elements  []Element
	cursorPos int
	hasCursor bool
}

// NewSequence returns a sequence that owns elements.
func NewSequence(elements ...Element) *Sequence {
	s := &Sequence{node: node{index: -1}}
	s.elements = append(s.elements, elements...)
	s.adopt(0)
	return s
}

func (s *Sequence) Kind() Kind { return KindSequence }

func (s *Sequence) WantsCursor() bool { return true }

// Elements returns the children. The slice must not be modified.
func (s *Sequence) Elements() []Element { return s.elements }

// Len returns the number of children.
func (s *Sequence) Len() int { return len(s.elements) }

// At returns the child at index i.
func (s *Sequence) At(i int) Element { return s.elements[i] }

// CursorPos returns the edit position, in [0, Len()].
func (s *Sequence) CursorPos() int { return s.cursorPos }

// HasCursor reports whether the cursor is in this sequence.
func (s *Sequence) HasCursor() bool { return s.hasCursor }

// PlaceCursor moves cur into s at pos, clamped to [0, Len()].
func (s *Sequence) PlaceCursor(cur *Cursor, pos int) {
	s.moveCursorTo(cur, pos)
}

func (s *Sequence) String() string {
	var b strings.Builder
	for _, e := range s.elements {
		b.WriteString(describe(e))
	}
	return b.String()
}

// adopt fixes the owner and index back-references of elements[from:].
func (s *Sequence) adopt(from int) {
	for i := from; i < len(s.elements); i++ {
		s.elements[i].base().setOwner(s, i)
	}
}

func (s *Sequence) moveCursorTo(cur *Cursor, pos int) {
	cur.reparent(s)
	s.cursorPos = min(max(pos, 0), len(s.elements))
}

// splice replaces elements[i:j] with repl and returns the removed run.
func (s *Sequence) splice(i, j int, repl ...Element) []Element {
	removed := make([]Element, j-i)
	copy(removed, s.elements[i:j])
	for _, e := range removed {
		e.base().detach()
	}

	tail := append([]Element(nil), s.elements[j:]...)
	s.elements = append(append(s.elements[:i], repl...), tail...)
	s.adopt(i)

	if s.cursorPos > len(s.elements) {
		s.cursorPos = len(s.elements)
	}
	return removed
}

// insert splices e in at the cursor position and advances past it.
func (s *Sequence) insert(e Element) {
	s.splice(s.cursorPos, s.cursorPos, e)
	s.cursorPos++
}

// replace swaps old for with. A sequence is flattened: its elements take the
// place of old.
func (s *Sequence) replace(old, with Element) {
	i := old.Index()
	if old.base().owner != container(s) || i < 0 || i >= len(s.elements) || s.elements[i] != old {
		return
	}
	if seq, ok := with.(*Sequence); ok {
		run := append([]Element(nil), seq.elements...)
		seq.elements = nil
		s.splice(i, i+1, run...)
		return
	}
	s.splice(i, i+1, with)
}

func (s *Sequence) computeMetrics(p Provider, mc *MetricContext) {
	ctx := newMetricContext(p, mc.style)
	s.metrics = Metrics{}
	s.hSpacing = mc.style.Spacing
	for i, e := range s.elements {
		e.base().index = i
		e.computeMetrics(p, ctx)
		m := e.Metrics()
		s.metrics.Ascent = max(s.metrics.Ascent, m.Ascent)
		s.metrics.Descent = max(s.metrics.Descent, m.Descent)
		s.metrics.Width += m.Width + 2*e.base().hSpacing
		ctx.Prev = m
	}
	if len(s.elements) == 0 {
		s.metrics = p.Font()
	}
}

func (s *Sequence) draw(c Canvas) {
	saved(c, func() {
		for i, e := range s.elements {
			if s.hasCursor && i == s.cursorPos {
				s.drawCaret(c)
			}
			b := e.base()
			c.Translate(b.hSpacing, 0)
			saved(c, func() { e.draw(c) })
			c.Translate(b.metrics.Width+b.hSpacing, 0)
		}
		if s.hasCursor && s.cursorPos == len(s.elements) {
			s.drawCaret(c)
		}
	})
}

// drawCaret sizes the caret to the taller of the elements on either side.
func (s *Sequence) drawCaret(c Canvas) {
	if len(s.elements) == 0 {
		c.Caret(s.metrics.Ascent, s.metrics.Descent)
		return
	}
	var m Metrics
	if s.cursorPos > 0 {
		m = s.elements[s.cursorPos-1].Metrics()
	}
	if s.cursorPos < len(s.elements) {
		next := s.elements[s.cursorPos].Metrics()
		m.Ascent = max(m.Ascent, next.Ascent)
		m.Descent = max(m.Descent, next.Descent)
	}
	c.Caret(m.Ascent, m.Descent)
}

func (s *Sequence) handleCursor(cur *Cursor, dir Direction, giver Element) {
	switch {
	case dir.Vertical() && giver != nil && s.owner != nil:
		s.owner.handleCursor(cur, dir, s)

	case giver != nil:
		switch dir {
		case Left:
			s.moveCursorTo(cur, giver.Index())
		case Right, None:
			s.moveCursorTo(cur, giver.Index()+1)
		}

	case s.hasCursor:
		i := s.cursorPos
		switch {
		case dir == None:
		case dir == Left && i > 0:
			if prev := s.elements[i-1]; prev.WantsCursor() {
				prev.handleCursor(cur, dir, nil)
			} else {
				s.moveCursorTo(cur, i-1)
			}
		case dir == Right && i < len(s.elements):
			if next := s.elements[i]; next.WantsCursor() {
				next.handleCursor(cur, dir, nil)
			} else {
				s.moveCursorTo(cur, i+1)
			}
		default:
			bubble(s, cur, dir)
		}

	case dir == Left:
		s.moveCursorTo(cur, len(s.elements))

	default:
		s.moveCursorTo(cur, 0)
	}
}

func (s *Sequence) backspace(cur *Cursor, _ Element) {
	if s.cursorPos == 0 {
		if s.owner != nil {
			s.owner.backspace(cur, s)
		}
		return
	}

	target := s.elements[s.cursorPos-1]
	if st, ok := target.(structural); ok {
		slot := st.lastSlot()
		slot.moveCursorTo(cur, len(slot.elements))
		st.backspace(cur, s)
		return
	}
	pos := s.cursorPos - 1
	s.splice(pos, pos+1)
	s.cursorPos = pos
}
