package formula

import (
	"strings"
	"unicode"
)

// Atom is an immutable run of text: a variable, a number or an operator.
type Atom struct {
	node
	name string
	text string
	kind Kind
}

// NewAtom returns an atom for a variable or number. Latin letters are set in
// mathematical italic.
func NewAtom(name string) *Atom {
	return &Atom{node: node{index: -1}, name: name, text: italic(name), kind: KindAtom}
}

// NewOperator returns an upright atom with operator spacing, such as "+" or
// "sin".
func NewOperator(name string) *Atom {
	return &Atom{node: node{index: -1}, name: name, text: name, kind: KindOperator}
}

func (a *Atom) Kind() Kind { return a.kind }

func (a *Atom) WantsCursor() bool { return false }

// Name returns the text the atom was created with.
func (a *Atom) Name() string { return a.name }

// Text returns the displayed text.
func (a *Atom) Text() string { return a.text }

func (a *Atom) String() string { return a.name }

func (a *Atom) computeMetrics(p Provider, mc *MetricContext) {
	a.metrics = p.Measure(a.text)
	a.hSpacing = 0
	if a.kind == KindOperator {
		a.hSpacing = mc.style.OperatorSpacing
	}
	mc.enclose(a.metrics)
}

func (a *Atom) draw(c Canvas) {
	c.Text(a.text)
}

func (a *Atom) handleCursor(cur *Cursor, dir Direction, _ Element) {
	bubble(a, cur, dir)
}

// italic maps ASCII letters to the Mathematical Italic block. The italic h
// lives in Letterlike Symbols as PLANCK CONSTANT.
func italic(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == 'h':
			return 'ℎ'
		case r >= 'a' && r <= 'z':
			return 0x1d44e + (r - 'a')
		case r >= 'A' && r <= 'Z':
			return 0x1d434 + (r - 'A')
		}
		return r
	}, s)
}

// IsOperatorRune reports whether r is typed as an operator rather than an
// atom.
func IsOperatorRune(r rune) bool {
	return strings.ContainsRune("-*,:;!", r) || unicode.Is(unicode.Sm, r)
}

// OperatorText returns the display form of a typed operator: ASCII hyphen
// and asterisk become the minus and times signs.
func OperatorText(r rune) string {
	switch r {
	case '-':
		return "−"
	case '*':
		return "×"
	}
	return string(r)
}
