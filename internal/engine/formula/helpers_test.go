package formula

import (
	"math"
	"testing"
	"unicode/utf8"
)

// fixedProvider measures every rune as one digit of the font, unless the
// text has an explicit entry in sizes.
type fixedProvider struct {
	font  Metrics
	sizes map[string]Metrics
}

func newFixedProvider() fixedProvider {
	return fixedProvider{font: Metrics{Ascent: 8, Descent: 2, Width: 10}}
}

func (p fixedProvider) Measure(text string) Metrics {
	if m, ok := p.sizes[text]; ok {
		return m
	}
	return Metrics{
		Ascent:  p.font.Ascent,
		Descent: p.font.Descent,
		Width:   float64(utf8.RuneCountInString(text)) * p.font.Width,
	}
}

func (p fixedProvider) Font() Metrics { return p.font }

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func atoms(names ...string) []Element {
	out := make([]Element, len(names))
	for i, n := range names {
		out[i] = NewAtom(n)
	}
	return out
}

// doc returns a root sequence with the cursor placed at pos.
func doc(pos int, elements ...Element) (*Sequence, *Cursor) {
	root := NewSequence(elements...)
	cur := NewCursor()
	root.PlaceCursor(cur, pos)
	return root, cur
}

func mustCheck(t *testing.T, root Element) {
	t.Helper()
	if err := Check(root); err != nil {
		t.Fatalf("invariants violated: %v", err)
	}
}

func expectCursor(t *testing.T, cur *Cursor, owner *Sequence, pos int) {
	t.Helper()
	if cur.Owner() != owner {
		t.Fatalf("cursor owner = %q, want %q", describeOwner(cur.Owner()), describeOwner(owner))
	}
	if cur.Pos() != pos {
		t.Errorf("cursor pos = %d, want %d", cur.Pos(), pos)
	}
	if !owner.HasCursor() {
		t.Error("owner does not report HasCursor")
	}
}

func describeOwner(s *Sequence) string {
	if s == nil {
		return "<nil>"
	}
	return s.String()
}
