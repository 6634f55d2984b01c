package formula

import (
	"fmt"
	"strings"
)

// Direction is a cursor movement direction.
type Direction int

const (
	// None is used when the cursor is placed rather than moved.
	None Direction = iota
	Up
	Down
	Left
	Right
)

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case None:
		return "none"
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Vertical reports whether d is Up or Down.
func (d Direction) Vertical() bool {
	return d == Up || d == Down
}

// ParseDirection parses a direction name, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return None, nil
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}
