package formula

import (
	"errors"
	"fmt"
)

// Children returns the elements directly below e: the children of a
// sequence, or the inner sequences of a structural element.
func Children(e Element) []Element {
	switch e := e.(type) {
	case *Sequence:
		return e.elements
	case structural:
		slots := e.slots()
		out := make([]Element, len(slots))
		for i, s := range slots {
			out[i] = s
		}
		return out
	}
	return nil
}

// Walk visits the tree rooted at e in pre-order. Returning false from fn
// skips the children of the visited element.
func Walk(e Element, fn func(e Element, depth int) bool) {
	walk(e, 0, fn)
}

func walk(e Element, depth int, fn func(Element, int) bool) {
	if !fn(e, depth) {
		return
	}
	for _, c := range Children(e) {
		walk(c, depth+1, fn)
	}
}

// describe returns the compact debug form of e.
func describe(e Element) string {
	if s, ok := e.(fmt.Stringer); ok {
		return s.String()
	}
	return e.Kind().String()
}

// Check verifies the structural invariants of the tree rooted at root: every
// back-reference matches the element's position, at most one sequence holds
// the cursor, and every cursor position is in range.
func Check(root Element) error {
	var errs []error
	holders := 0
	Walk(root, func(e Element, _ int) bool {
		if s, ok := e.(*Sequence); ok {
			if s.hasCursor {
				holders++
			}
			if s.cursorPos < 0 || s.cursorPos > len(s.elements) {
				errs = append(errs, fmt.Errorf("cursor position %d out of range [0, %d]", s.cursorPos, len(s.elements)))
			}
		}
		for i, c := range Children(e) {
			b := c.base()
			if b.owner == nil || Element(b.owner) != e {
				errs = append(errs, fmt.Errorf("%s %q: owner mismatch", c.Kind(), describe(c)))
			}
			if _, ok := e.(*Sequence); ok && b.index != i {
				errs = append(errs, fmt.Errorf("%s %q: index %d, want %d", c.Kind(), describe(c), b.index, i))
			}
		}
		return true
	})
	if holders > 1 {
		errs = append(errs, fmt.Errorf("%d sequences hold the cursor", holders))
	}
	return errors.Join(errs...)
}
