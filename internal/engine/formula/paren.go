package formula

import "fmt"

// Paren is a bracket marker. Closing brackets grow to the height of the
// content enclosed since their opener.
type Paren struct {
	node
	char    rune
	left    bool
	natural Metrics
}

// NewParen returns a bracket marker for one of ( ) [ ] { }.
func NewParen(char rune) (*Paren, error) {
	p := &Paren{node: node{index: -1}, char: char}
	switch char {
	case '(', '[', '{':
		p.left = true
	case ')', ']', '}':
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidParen, char)
	}
	return p, nil
}

// MustParen is like NewParen but panics on an invalid character. Use only
// with literal brackets.
func MustParen(char rune) *Paren {
	p, err := NewParen(char)
	if err != nil {
		panic(err)
	}
	return p
}

// IsParenRune reports whether r is a bracket character.
func IsParenRune(r rune) bool {
	switch r {
	case '(', ')', '[', ']', '{', '}':
		return true
	}
	return false
}

func (p *Paren) Kind() Kind { return KindParen }

func (p *Paren) WantsCursor() bool { return false }

// Char returns the bracket character.
func (p *Paren) Char() rune { return p.char }

// Left reports whether the bracket opens a group.
func (p *Paren) Left() bool { return p.left }

// Natural returns the unscaled glyph extent.
func (p *Paren) Natural() Metrics { return p.natural }

func (p *Paren) String() string { return string(p.char) }

func (p *Paren) computeMetrics(pr Provider, mc *MetricContext) {
	p.natural = pr.Measure(string(p.char))
	p.metrics = p.natural
	p.hSpacing = 0
	if p.left {
		mc.pushParen(p)
		return
	}
	match := mc.Prev
	if open, ok := mc.popParen(); ok {
		match = open.metrics
	}
	p.metrics.Ascent = match.Ascent
	p.metrics.Descent = match.Descent
	mc.enclose(p.metrics)
}

func (p *Paren) draw(c Canvas) {
	c.Glyph(string(p.char), p.metrics.Ascent, p.metrics.Descent)
}

func (p *Paren) handleCursor(cur *Cursor, dir Direction, _ Element) {
	bubble(p, cur, dir)
}
