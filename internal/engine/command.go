package engine

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dshills/mathkey/internal/engine/formula"
)

// Op identifies the edit a Command performs.
type Op int

const (
	OpInsertChar Op = iota
	OpInsertParen
	OpInsertOperator
	OpInsertRadical
	OpBackspace
	OpGreedyInsert
	OpMove
)

// String returns the action name of the op.
func (o Op) String() string {
	switch o {
	case OpInsertChar:
		return "insert"
	case OpInsertParen:
		return "paren"
	case OpInsertOperator:
		return "operator"
	case OpInsertRadical:
		return "radical"
	case OpBackspace:
		return "backspace"
	case OpGreedyInsert:
		return "greedy"
	case OpMove:
		return "move"
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

// Command is a decoded edit. Only the field matching Op is used.
type Command struct {
	Op Op

	// Text is the character for OpInsertChar, the operator name for
	// OpInsertOperator or the root index for OpInsertRadical (empty for a
	// square root).
	Text string

	// Rune is the bracket for OpInsertParen.
	Rune rune

	// Kind is the structure built by OpGreedyInsert.
	Kind formula.Kind

	// Direction is the step taken by OpMove.
	Direction formula.Direction
}

// String returns the command in the form accepted by ParseCommand.
func (c Command) String() string {
	switch c.Op {
	case OpInsertChar, OpInsertOperator:
		return c.Op.String() + ":" + c.Text
	case OpInsertParen:
		return "paren:" + string(c.Rune)
	case OpInsertRadical:
		if c.Text != "" {
			return "root:" + c.Text
		}
		return "radical"
	case OpGreedyInsert:
		return c.Kind.String()
	case OpMove:
		return c.Direction.String()
	default:
		return c.Op.String()
	}
}

// ParseCommand parses an action name as used in keymaps and scripts.
//
// Plain names are "backspace", "radical", "fraction", "exponent" and the
// direction names "left", "right", "up" and "down". Arguments follow a colon:
// "insert:x", "paren:(", "operator:sin" and "root:3".
func ParseCommand(action string) (Command, error) {
	name, arg, hasArg := strings.Cut(action, ":")
	if hasArg && arg == "" {
		return Command{}, fmt.Errorf("%w: %q needs an argument", ErrUnknownCommand, action)
	}

	switch {
	case hasArg && name == "insert":
		return Command{Op: OpInsertChar, Text: arg}, nil
	case hasArg && name == "operator":
		return Command{Op: OpInsertOperator, Text: arg}, nil
	case hasArg && name == "root":
		return Command{Op: OpInsertRadical, Text: arg}, nil
	case hasArg && name == "paren":
		r, size := utf8.DecodeRuneInString(arg)
		if size != len(arg) {
			return Command{}, fmt.Errorf("%w: %q", formula.ErrInvalidParen, arg)
		}
		return Command{Op: OpInsertParen, Rune: r}, nil
	case hasArg:
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, action)
	}

	switch name {
	case "backspace":
		return Command{Op: OpBackspace}, nil
	case "radical":
		return Command{Op: OpInsertRadical}, nil
	case "fraction":
		return Command{Op: OpGreedyInsert, Kind: formula.KindFraction}, nil
	case "exponent":
		return Command{Op: OpGreedyInsert, Kind: formula.KindExponent}, nil
	}
	if d, err := formula.ParseDirection(name); err == nil && d != formula.None {
		return Command{Op: OpMove, Direction: d}, nil
	}
	return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, action)
}
