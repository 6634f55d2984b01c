package engine

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"

	"github.com/dshills/mathkey/internal/engine/formula"
)

// Engine is an edit session: one formula tree and the cursor editing it.
type Engine struct {
	id     uuid.UUID
	root   *formula.Sequence
	cursor *formula.Cursor
	style  formula.Style
	log    Logger
}

// New creates an engine. Without WithRoot it starts on an empty document.
func New(opts ...Option) *Engine {
	e := &Engine{
		id:    uuid.New(),
		style: formula.DefaultStyle(),
		log:   nopLogger{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.root == nil {
		e.root = formula.NewSequence()
	}
	e.cursor = formula.NewCursor()
	e.root.PlaceCursor(e.cursor, e.root.Len())
	return e
}

// ID returns the session identifier.
func (e *Engine) ID() uuid.UUID { return e.id }

// Root returns the root sequence.
func (e *Engine) Root() *formula.Sequence { return e.root }

// Cursor returns the session cursor.
func (e *Engine) Cursor() *formula.Cursor { return e.cursor }

// Style returns the layout constants in use.
func (e *Engine) Style() formula.Style { return e.style }

// SetStyle replaces the layout constants. The next Layout call uses them.
func (e *Engine) SetStyle(s formula.Style) { e.style = s }

// String returns the compact debug form of the document.
func (e *Engine) String() string { return e.root.String() }

// Apply performs cmd.
func (e *Engine) Apply(cmd Command) error {
	var err error
	switch cmd.Op {
	case OpInsertChar:
		err = e.InsertChar(cmd.Text)
	case OpInsertParen:
		err = e.InsertParen(cmd.Rune)
	case OpInsertOperator:
		err = e.InsertOperator(cmd.Text)
	case OpInsertRadical:
		if cmd.Text != "" {
			err = e.InsertRoot(cmd.Text)
		} else {
			err = e.InsertRadical()
		}
	case OpBackspace:
		err = e.Backspace()
	case OpGreedyInsert:
		err = e.GreedyInsert(cmd.Kind)
	case OpMove:
		err = e.Move(cmd.Direction)
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownCommand, cmd.Op)
	}
	return e.done(cmd.String(), err)
}

// done logs the outcome of an edit.
func (e *Engine) done(action string, err error) error {
	if err != nil {
		e.log.Warn("rejected %s: %v", action, err)
		return err
	}
	e.log.Debug("%s -> %s @%d", action, e.root, e.cursor.Pos())
	return nil
}

// InsertChar inserts a single typed character. Letters, digits and the
// decimal point become atoms; operator characters become operators, with
// '-' and '*' shown as the minus and times signs. Brackets are inserted as
// with InsertParen. The text is NFC-normalized first and must be exactly
// one grapheme.
func (e *Engine) InsertChar(text string) error {
	s := norm.NFC.String(text)
	if uniseg.GraphemeClusterCount(s) != 1 {
		return fmt.Errorf("%w: %q", ErrInvalidChar, text)
	}

	el, err := charElement(s)
	if err != nil {
		return err
	}
	return e.cursor.Insert(el)
}

// charElement returns the element typed for the normalized grapheme s.
func charElement(s string) (formula.Element, error) {
	r, size := utf8.DecodeRuneInString(s)
	switch {
	case size == len(s) && formula.IsParenRune(r):
		p, err := formula.NewParen(r)
		if err != nil {
			return nil, err
		}
		return p, nil
	case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.':
		return formula.NewAtom(s), nil
	case size == len(s) && formula.IsOperatorRune(r):
		return formula.NewOperator(formula.OperatorText(r)), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidChar, s)
}

// InsertParen inserts a bracket marker. A rune that is not a bracket is
// rejected with formula.ErrInvalidParen and the tree is left untouched.
func (e *Engine) InsertParen(r rune) error {
	p, err := formula.NewParen(r)
	if err != nil {
		return err
	}
	return e.cursor.Insert(p)
}

// InsertOperator inserts a named operator such as "sin".
func (e *Engine) InsertOperator(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty operator", ErrInvalidChar)
	}
	return e.cursor.Insert(formula.NewOperator(norm.NFC.String(name)))
}

// InsertRadical inserts an empty square root and moves the cursor into it.
func (e *Engine) InsertRadical() error {
	r := formula.NewRadical(nil)
	if err := e.cursor.Insert(r); err != nil {
		return err
	}
	e.cursor.Focus(r)
	return nil
}

// InsertRoot inserts an empty root with the given index, such as "3" for a
// cube root, and moves the cursor into the radicand. The index is typed
// grapheme by grapheme as with InsertChar; on error nothing is inserted.
func (e *Engine) InsertRoot(index string) error {
	s := norm.NFC.String(index)
	if s == "" {
		return fmt.Errorf("%w: empty root index", ErrInvalidChar)
	}

	var elements []formula.Element
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		el, err := charElement(g.Str())
		if err != nil {
			return err
		}
		elements = append(elements, el)
	}

	r := formula.NewRootOf(elements, nil)
	if err := e.cursor.Insert(r); err != nil {
		return err
	}
	e.cursor.Focus(r)
	return nil
}

// Backspace deletes before the cursor. At the start of the document it does
// nothing.
func (e *Engine) Backspace() error {
	return e.cursor.Backspace()
}

// GreedyInsert builds a fraction or exponent from the operands around the
// cursor.
func (e *Engine) GreedyInsert(k formula.Kind) error {
	return e.cursor.GreedyInsert(k)
}

// Move moves the cursor one step. formula.None is ignored.
func (e *Engine) Move(dir formula.Direction) error {
	if dir == formula.None {
		return nil
	}
	return e.cursor.Move(dir)
}

// Layout runs the metrics pass and returns the root extent.
func (e *Engine) Layout(p formula.Provider) formula.Metrics {
	formula.Layout(e.root, p, e.style)
	return e.root.Metrics()
}

// Draw runs the draw pass. Layout must have been called since the last
// edit.
func (e *Engine) Draw(c formula.Canvas) {
	formula.Draw(e.root, c)
}

// Bounds returns the size of the laid-out document.
func (e *Engine) Bounds() (width, height float64) {
	return formula.Bounds(e.root)
}

// Report returns the laid-out tree as JSON.
func (e *Engine) Report() (string, error) {
	return formula.Report(e.root)
}

// Check verifies the tree invariants.
func (e *Engine) Check() error {
	return formula.Check(e.root)
}
