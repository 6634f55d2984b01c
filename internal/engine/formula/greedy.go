package formula

// greedyRule declares which sides a structural kind absorbs operands from and
// how it is built from them.
type greedyRule struct {
	left, right bool
	build       func(left, right []Element) structural
}

var greedyRules = map[Kind]greedyRule{
	KindFraction: {
		left:  true,
		right: true,
		build: func(left, right []Element) structural { return NewFraction(left, right) },
	},
	KindExponent: {
		right: true,
		build: func(_, right []Element) structural { return NewExponent(right) },
	},
}

// Greedy reports whether elements of kind k can be inserted greedily, and on
// which sides they absorb operands.
func Greedy(k Kind) (left, right, ok bool) {
	r, ok := greedyRules[k]
	return r.left, r.right, ok
}

// scanLeft returns how many elements before pos form the operand to the left
// of pos. Closing brackets open a group in this direction. The scan stops once
// the depth is back to zero or below, so an unmatched opening bracket met
// first is taken on its own.
func scanLeft(elements []Element, pos int) int {
	depth, n := 0, 0
	for i := pos - 1; i >= 0; i-- {
		n++
		if p, ok := elements[i].(*Paren); ok {
			if p.left {
				depth--
			} else {
				depth++
			}
		}
		if depth <= 0 {
			return n
		}
	}
	return n
}

// scanRight mirrors scanLeft for the operand starting at pos.
func scanRight(elements []Element, pos int) int {
	depth, n := 0, 0
	for i := pos; i < len(elements); i++ {
		n++
		if p, ok := elements[i].(*Paren); ok {
			if p.left {
				depth++
			} else {
				depth--
			}
		}
		if depth <= 0 {
			return n
		}
	}
	return n
}

// greedyInsert cuts the operands around the cursor, builds a k from them and
// inserts it. The cursor then moves into the first empty operand slot, or
// stays after the new element when both sides were absorbed.
func (s *Sequence) greedyInsert(cur *Cursor, k Kind) error {
	rule, ok := greedyRules[k]
	if !ok {
		return ErrUnknownKind
	}

	var left, right []Element
	if rule.left && s.cursorPos > 0 {
		n := scanLeft(s.elements, s.cursorPos)
		left = s.splice(s.cursorPos-n, s.cursorPos)
		s.cursorPos -= n
	}
	if rule.right && s.cursorPos < len(s.elements) {
		n := scanRight(s.elements, s.cursorPos)
		right = s.splice(s.cursorPos, s.cursorPos+n)
	}

	e := rule.build(left, right)
	s.insert(e)
	for _, slot := range e.slots() {
		if slot.Len() == 0 {
			slot.moveCursorTo(cur, 0)
			break
		}
	}
	return nil
}
