package engine

import "errors"

// Errors returned by engine operations.
var (
	// ErrInvalidChar indicates text that cannot be inserted as a single
	// atom or operator.
	ErrInvalidChar = errors.New("invalid character")

	// ErrUnknownCommand indicates an action name or Op that does not map to
	// an edit.
	ErrUnknownCommand = errors.New("unknown command")
)
