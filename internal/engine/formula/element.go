package formula

import "fmt"

// Kind identifies the variant of an Element.
type Kind int

const (
	KindAtom Kind = iota
	KindOperator
	KindParen
	KindSequence
	KindFraction
	KindExponent
	KindRadical
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindAtom:
		return "atom"
	case KindOperator:
		return "operator"
	case KindParen:
		return "paren"
	case KindSequence:
		return "sequence"
	case KindFraction:
		return "fraction"
	case KindExponent:
		return "exponent"
	case KindRadical:
		return "radical"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Metrics holds the extent of a laid-out element, in device-independent
// units. Ascent is measured upwards from the baseline and Descent downwards.
type Metrics struct {
	Ascent  float64
	Descent float64
	Width   float64
}

// Height returns Ascent + Descent.
func (m Metrics) Height() float64 {
	return m.Ascent + m.Descent
}

// Element is a node of the formula tree.
//
// The set of implementations is closed: *Atom, *Paren, *Sequence, *Fraction,
// *Exponent and *Radical.
type Element interface {
	// Kind returns the element variant.
	Kind() Kind

	// Metrics returns the extent computed by the last metrics pass.
	Metrics() Metrics

	// Owner returns the element this one belongs to, or nil for the root.
	Owner() Element

	// Index returns the position in the owning sequence, or -1 when the
	// owner is not a sequence.
	Index() int

	// WantsCursor reports whether the element can hold the cursor, either
	// directly or through an inner sequence.
	WantsCursor() bool

	base() *node
	computeMetrics(p Provider, mc *MetricContext)
	draw(c Canvas)
	handleCursor(cur *Cursor, dir Direction, giver Element)
}

// container is an element that can own other elements. Owners receive
// delegated cursor and backspace messages from their children.
type container interface {
	Element
	backspace(cur *Cursor, caller Element)
}

// structural is a container built from inner sequences.
type structural interface {
	container

	// slots returns the inner sequences in visual order.
	slots() []*Sequence

	// lastSlot returns the sequence a backspace from the right lands in.
	lastSlot() *Sequence
}

// node holds the state shared by all variants.
type node struct {
	owner    container
	index    int
	metrics  Metrics
	hSpacing float64
}

func (n *node) base() *node { return n }

func (n *node) Metrics() Metrics { return n.metrics }

func (n *node) Index() int { return n.index }

// Owner returns the owning element, or nil.
func (n *node) Owner() Element {
	if n.owner == nil {
		return nil
	}
	return n.owner
}

func (n *node) setOwner(o container, index int) {
	n.owner = o
	n.index = index
}

func (n *node) detach() {
	n.owner = nil
	n.index = -1
}

// bubble forwards a cursor message from e to its owner, naming e as giver.
// Moving past the root is a no-op.
func bubble(e Element, cur *Cursor, dir Direction) {
	if o := e.base().owner; o != nil {
		o.handleCursor(cur, dir, e)
	}
}
