package formula

// Cursor is the single edit point of a document. It always belongs to
// exactly one Sequence once placed, and that sequence's CursorPos is where
// edits happen.
type Cursor struct {
	owner *Sequence
}

// NewCursor returns a cursor that has not been placed yet. Place it with
// Sequence.PlaceCursor or Focus.
func NewCursor() *Cursor {
	return &Cursor{}
}

// Owner returns the sequence holding the cursor, or nil.
func (c *Cursor) Owner() *Sequence {
	return c.owner
}

// Pos returns the cursor position within its owner.
func (c *Cursor) Pos() int {
	if c.owner == nil {
		return 0
	}
	return c.owner.cursorPos
}

// reparent moves the cursor to s, keeping the has-cursor flag on exactly one
// sequence.
func (c *Cursor) reparent(s *Sequence) {
	if c.owner != nil {
		c.owner.hasCursor = false
	}
	c.owner = s
	s.hasCursor = true
}

// Focus hands the cursor to e as if the user clicked it. Containers take the
// cursor at their first position; leaves place it just after themselves.
func (c *Cursor) Focus(e Element) {
	e.handleCursor(c, None, nil)
}

// Move moves the cursor one step. Moving past the edge of the document is a
// no-op.
func (c *Cursor) Move(dir Direction) error {
	if c.owner == nil {
		return ErrNoCursor
	}
	c.owner.handleCursor(c, dir, nil)
	return nil
}

// Backspace deletes the element before the cursor, or unwraps the enclosing
// structure when the cursor is at the start of an inner sequence.
func (c *Cursor) Backspace() error {
	if c.owner == nil {
		return ErrNoCursor
	}
	c.owner.backspace(c, nil)
	return nil
}

// Insert inserts e at the cursor and moves the cursor past it.
func (c *Cursor) Insert(e Element) error {
	if c.owner == nil {
		return ErrNoCursor
	}
	if e.base().owner != nil {
		return ErrAttached
	}
	c.owner.insert(e)
	return nil
}

// GreedyInsert builds a structural element of kind k from the operands
// around the cursor and inserts it. The cursor then moves into the first
// empty operand slot, or stays just after the new element when every slot
// received operands.
func (c *Cursor) GreedyInsert(k Kind) error {
	if c.owner == nil {
		return ErrNoCursor
	}
	return c.owner.greedyInsert(c, k)
}
