// Package formula implements the document and cursor model of the structural
// math editor.
//
// A document is a tree of elements. Leaves are atoms (letters and digits),
// operators and bracket markers; containers are sequences and the structural
// nodes built from them (fractions, exponents and radicals). A single Cursor
// lives in exactly one Sequence at a time and edits happen at that
// sequence's cursor position.
//
// # Layout
//
// Layout runs in two passes over the whole tree. The metrics pass computes
// ascent, descent and width bottom-up, consulting a Provider for text
// measurements and threading a MetricContext through each sequence so that
// closing brackets can grow to the height of the content they enclose. The
// draw pass then paints top-down onto a Canvas using the stored metrics:
//
//	formula.Layout(root, provider, formula.DefaultStyle())
//	formula.Draw(root, canvas)
//
// # Navigation
//
// Cursor movement is a message passed through the tree. A sequence that
// cannot resolve a move hands it to its owner and names itself as the giver;
// the owner then decides where the cursor goes next. Structural nodes route
// vertical moves between their inner sequences and send horizontal moves back
// out to the surrounding sequence. Backspace follows the same protocol, which
// is how backspacing into a fraction edits it instead of deleting it whole.
//
// # Greedy insertion
//
// Typing a fraction bar or exponent caret in the middle of a sequence absorbs
// the neighbouring operands. The scan is bracket aware: a bare token is taken
// alone, a parenthesized group is taken whole, and the scan never walks past
// an unmatched enclosing bracket.
//
// The package is not safe for concurrent use. A document and its cursor
// belong to one edit session.
package formula
