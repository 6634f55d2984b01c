package formula

import "errors"

// Errors returned by formula operations.
var (
	// ErrInvalidParen indicates a bracket marker was built from a character
	// that is not one of ( ) [ ] { }.
	ErrInvalidParen = errors.New("invalid paren")

	// ErrUnknownKind indicates a greedy insertion of a kind that cannot be
	// built greedily.
	ErrUnknownKind = errors.New("unknown element kind")

	// ErrUnknownDirection indicates a direction name could not be parsed.
	ErrUnknownDirection = errors.New("unknown direction")

	// ErrNoCursor indicates an edit was attempted with a cursor that has not
	// been placed in any sequence.
	ErrNoCursor = errors.New("cursor has no owner")
)

// ErrAttached indicates an element that already belongs to a tree was
// inserted again.
var ErrAttached = errors.New("element already has an owner")
